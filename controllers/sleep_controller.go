package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/azleep/azleep-api/config"
	"github.com/azleep/azleep-api/models"
	"github.com/azleep/azleep-api/utils"
)

// SleepController manages nightly sleep logs and their weekly summary.
type SleepController struct {
	db *gorm.DB
}

// NewSleepController creates a new SleepController instance.
func NewSleepController(db *gorm.DB) *SleepController {
	return &SleepController{db: db}
}

// LogSleep records one night of sleep. Logging the same date again replaces
// the earlier record; points are only awarded for the first log of a date.
func (s *SleepController) LogSleep(ctx *gin.Context) {
	var req struct {
		SleepDate       string  `json:"sleep_date"` // "2006-01-02", defaults to today
		SleepHours      float64 `json:"sleep_hours" binding:"required"`
		SleepQuality    int     `json:"sleep_quality" binding:"required"`
		MoodBeforeSleep string  `json:"mood_before_sleep"`
		Notes           string  `json:"notes"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return
	}
	if req.SleepHours <= 0 || req.SleepHours > 24 {
		utils.Error(ctx, http.StatusBadRequest, 40041, "sleep hours must be between 0 and 24")
		return
	}
	if req.SleepQuality < 1 || req.SleepQuality > 5 {
		utils.Error(ctx, http.StatusBadRequest, 40042, "sleep quality must be between 1 and 5")
		return
	}
	if req.MoodBeforeSleep != "" && !isValidMood(req.MoodBeforeSleep) {
		utils.Error(ctx, http.StatusBadRequest, 40043, "invalid mood")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	now := time.Now()
	sleepDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if req.SleepDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.SleepDate, time.Local)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40044, "invalid sleep date")
			return
		}
		if parsed.After(sleepDate) {
			utils.Error(ctx, http.StatusBadRequest, 40045, "sleep date cannot be in the future")
			return
		}
		sleepDate = parsed
	}

	record := models.SleepRecord{
		UserID:          userID,
		SleepDate:       sleepDate,
		SleepHours:      req.SleepHours,
		SleepQuality:    req.SleepQuality,
		MoodBeforeSleep: req.MoodBeforeSleep,
		Notes:           utils.SanitizePlain(strings.TrimSpace(req.Notes)),
	}

	// The "first log of this date" decision and the award run in one
	// transaction behind the user row lock, so a rapid double submission
	// cannot both see an empty date and credit the points twice.
	awarded := 0
	streak := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		user, err := lockUserForUpdate(tx, userID)
		if err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.SleepRecord{}).
			Where("user_id = ? AND sleep_date = ?", userID, sleepDate).
			Count(&existing).Error; err != nil {
			return err
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "sleep_date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"sleep_hours":       req.SleepHours,
				"sleep_quality":     req.SleepQuality,
				"mood_before_sleep": req.MoodBeforeSleep,
				"notes":             record.Notes,
				"updated_at":        time.Now(),
			}),
		}).Create(&record).Error; err != nil {
			return err
		}

		if existing == 0 {
			state, err := applyAward(tx, user, models.ActivitySleepLog, config.Get().PointsSleepLog)
			if err != nil {
				return err
			}
			awarded = config.Get().PointsSleepLog
			streak = state.StreakDays
		}
		return nil
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50045, "failed to save sleep record")
		return
	}

	utils.Success(ctx, gin.H{
		"record":         record,
		"points_awarded": awarded,
		"streak_days":    streak,
	})
}

// ListRecords returns the user's sleep logs, newest first.
func (s *SleepController) ListRecords(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	var records []models.SleepRecord
	var total int64
	query := s.db.Model(&models.SleepRecord{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50046, "failed to count sleep records")
		return
	}
	if err := query.Order("sleep_date DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&records).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50043, "failed to load sleep records")
		return
	}

	utils.Success(ctx, gin.H{
		"records":   records,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// Summary aggregates the trailing week: average hours and quality, nights logged.
func (s *SleepController) Summary(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	since := time.Now().AddDate(0, 0, -7)

	var records []models.SleepRecord
	if err := s.db.Where("user_id = ? AND sleep_date >= ?", userID, since).
		Order("sleep_date ASC").Find(&records).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50044, "failed to load sleep records")
		return
	}

	var hours float64
	var quality int
	for _, r := range records {
		hours += r.SleepHours
		quality += r.SleepQuality
	}

	avgHours := 0.0
	avgQuality := 0.0
	if len(records) > 0 {
		avgHours = hours / float64(len(records))
		avgQuality = float64(quality) / float64(len(records))
	}

	utils.Success(ctx, gin.H{
		"nights_logged": len(records),
		"avg_hours":     avgHours,
		"avg_quality":   avgQuality,
		"records":       records,
	})
}
