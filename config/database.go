package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/azleep/azleep-api/models"
)

var db *gorm.DB

// InitDatabase establishes a connection to MySQL using configuration values and performs automatic migrations.
func InitDatabase(modelDefs ...interface{}) *gorm.DB {
	if db != nil {
		return db
	}

	cfg := Get()
	var dsn string
	if cfg.DatabaseURI != "" {
		dsn = cfg.DatabaseURI
	} else {
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBName,
		)
	}

	// Derive GORM log level from app LogLevel and raise slow-sql threshold to reduce noise
	gLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             2 * time.Second,
			LogLevel:                  toGormLogLevel(cfg.LogLevel),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	gormCfg := &gorm.Config{
		Logger:                                   gLogger,
		DisableForeignKeyConstraintWhenMigrating: true,
	}

	var err error
	db, err = gorm.Open(mysql.Open(dsn), gormCfg)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	// Modest pool with aggressive idle recycling so the server-side wait_timeout
	// does not leave us with bad idle connections.
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	// Ping at boot so network/auth problems surface before the first query.
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("database ping failed: %v", err)
	}

	for _, model := range modelDefs {
		if err := db.AutoMigrate(model); err != nil {
			log.Printf("auto migration failed for %T: %v", model, err)
		}
	}

	seedCatalog(db)

	return db
}

// toGormLogLevel maps application LogLevel to GORM's logger level.
func toGormLogLevel(level string) logger.LogLevel {
	switch level {
	case "debug":
		// GORM 'Info' shows SQL; use with caution
		return logger.Info
	case "info", "", "warn":
		return logger.Warn
	case "error":
		return logger.Error
	case "silent":
		return logger.Silent
	default:
		return logger.Warn
	}
}

// DB provides access to the initialized gorm DB instance, or nil before
// InitDatabase has run.
func DB() *gorm.DB {
	return db
}

// seedCatalog inserts a starter sleepcast catalog and baseline nudges on a
// fresh database so the app has content before an operator curates its own.
func seedCatalog(db *gorm.DB) {
	var castCount int64
	if err := db.Model(&models.SleepCast{}).Count(&castCount).Error; err == nil && castCount == 0 {
		casts := []models.SleepCast{
			{Title: "Urban Rain", Description: "City rain on rooftops and windows.", Category: "rain", AudioURL: "/static/casts/urban-rain.mp3", Duration: 1800},
			{Title: "Night Train", Description: "A slow train rolling through the dark.", Category: "ambient", AudioURL: "/static/casts/night-train.mp3", Duration: 2400},
			{Title: "Ocean Drift", Description: "Waves breaking on an empty shore.", Category: "nature", AudioURL: "/static/casts/ocean-drift.mp3", Duration: 2700},
			{Title: "Body Scan", Description: "A guided relaxation from head to toe.", Category: "guided", AudioURL: "/static/casts/body-scan.mp3", Duration: 1200},
		}
		if err := db.Create(&casts).Error; err != nil {
			log.Printf("sleepcast seed failed: %v", err)
		}
	}

	var nudgeCount int64
	if err := db.Model(&models.SleepNudge{}).Count(&nudgeCount).Error; err == nil && nudgeCount == 0 {
		nudges := []models.SleepNudge{
			{Title: "Wind down", Content: "Dim the lights an hour before your bedtime target.", Category: "routine", Priority: 1},
			{Title: "Park the worries", Content: "Write tomorrow's worries in your journal before bed.", Category: "stress", Priority: 2, TargetSleepIssues: `["stress","racing thoughts"]`},
			{Title: "Screens off", Content: "Late-shift screens push your body clock later. Try audio instead.", Category: "habits", Priority: 2, TargetOccupations: `["student","developer"]`},
		}
		if err := db.Create(&nudges).Error; err != nil {
			log.Printf("nudge seed failed: %v", err)
		}
	}
}
