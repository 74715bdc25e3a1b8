package main

import (
	"time"

	"github.com/azleep/azleep-api/config"
	"github.com/azleep/azleep-api/models"
	"github.com/azleep/azleep-api/routes"
	"github.com/azleep/azleep-api/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.JournalEntry{},
		&models.MoodRecord{},
		&models.SleepRecord{},
		&models.SleepCast{},
		&models.SleepcastPlay{},
		&models.SleepNudge{},
		&models.Activity{},
		&models.VoiceNote{},
		&models.UsageStat{},
	)

	r := routes.SetupRouter(db)

	// Start background cleanup for expired voice notes (best-effort)
	utils.StartVoiceNoteCleaner(5 * time.Minute)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
