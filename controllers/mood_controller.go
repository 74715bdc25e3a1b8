package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/azleep/azleep-api/config"
	"github.com/azleep/azleep-api/models"
	"github.com/azleep/azleep-api/utils"
)

// MoodController handles the daily mood/stress check-in.
type MoodController struct {
	db *gorm.DB
}

// NewMoodController creates a new MoodController instance.
func NewMoodController(db *gorm.DB) *MoodController {
	return &MoodController{db: db}
}

// CheckIn records a mood entry and awards check-in points.
func (m *MoodController) CheckIn(ctx *gin.Context) {
	var req struct {
		Mood        string `json:"mood" binding:"required"`
		StressLevel *int   `json:"stress_level"`
		Notes       string `json:"notes"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}
	if !isValidMood(req.Mood) {
		utils.Error(ctx, http.StatusBadRequest, 40031, "invalid mood")
		return
	}
	if req.StressLevel != nil && (*req.StressLevel < 0 || *req.StressLevel > 10) {
		utils.Error(ctx, http.StatusBadRequest, 40032, "stress level must be between 0 and 10")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	record := models.MoodRecord{
		UserID:      userID,
		Mood:        req.Mood,
		StressLevel: req.StressLevel,
		Notes:       utils.SanitizePlain(strings.TrimSpace(req.Notes)),
		RecordedAt:  time.Now(),
	}

	if err := m.db.Create(&record).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to record check-in")
		return
	}

	awarded := 0
	streak := 0
	if state, err := awardPoints(m.db, userID, models.ActivityCheckIn, config.Get().PointsCheckIn); err != nil {
		utils.Sugar.Warnf("check-in points award failed for user %d: %v", userID, err)
	} else {
		awarded = config.Get().PointsCheckIn
		streak = state.StreakDays
	}

	// High stress triggers a coaching hint the client can act on.
	suggestRelaxation := req.StressLevel != nil && *req.StressLevel >= 7

	utils.Success(ctx, gin.H{
		"record":             record,
		"points_awarded":     awarded,
		"streak_days":        streak,
		"suggest_relaxation": suggestRelaxation,
	})
}

// ListRecent returns the user's most recent mood records.
func (m *MoodController) ListRecent(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	var records []models.MoodRecord
	var total int64
	query := m.db.Model(&models.MoodRecord{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to count mood records")
		return
	}
	if err := query.Order("recorded_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&records).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to load mood records")
		return
	}

	utils.Success(ctx, gin.H{
		"records":   records,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
