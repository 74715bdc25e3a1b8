package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/azleep/azleep-api/models"
	"github.com/azleep/azleep-api/utils"
)

// StatsController provides app-wide statistics such as counts and daily usage.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns aggregate statistics for the app.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var userCount int64
	var journalCount int64
	var moodCount int64
	var sleepLogCount int64
	var dailyActive int64

	if err := s.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		// Fallback to 0 instead of failing the whole endpoint
		userCount = 0
	}

	if err := s.db.Model(&models.JournalEntry{}).Count(&journalCount).Error; err != nil {
		journalCount = 0
	}

	if err := s.db.Model(&models.MoodRecord{}).Count(&moodCount).Error; err != nil {
		moodCount = 0
	}

	if err := s.db.Model(&models.SleepRecord{}).Count(&sleepLogCount).Error; err != nil {
		sleepLogCount = 0
	}

	// Daily active (request-based): sum of today's counted requests
	// Use string date equality to avoid timezone/type mismatches with DATE column
	today := time.Now().In(time.Local).Format("2006-01-02")
	if err := s.db.Model(&models.UsageStat{}).
		Where("date = ?", today).
		Select("COALESCE(SUM(count),0)").
		Scan(&dailyActive).Error; err != nil {
		dailyActive = 0
	}

	utils.Success(ctx, gin.H{
		"user_count":         userCount,
		"journal_count":      journalCount,
		"mood_record_count":  moodCount,
		"sleep_log_count":    sleepLogCount,
		"daily_active_count": dailyActive,
	})
}
