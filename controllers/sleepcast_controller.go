package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/azleep/azleep-api/config"
	"github.com/azleep/azleep-api/models"
	"github.com/azleep/azleep-api/utils"
)

// SleepcastController serves the sleepcast catalog and tracks playback.
type SleepcastController struct {
	db *gorm.DB
}

// NewSleepcastController creates a new SleepcastController instance.
func NewSleepcastController(db *gorm.DB) *SleepcastController {
	return &SleepcastController{db: db}
}

// ListCasts returns the public catalog, optionally filtered by category.
// The catalog changes rarely, so responses are cached.
func (s *SleepcastController) ListCasts(ctx *gin.Context) {
	category := strings.TrimSpace(ctx.Query("category"))

	cacheKey := fmt.Sprintf("cache:sleepcasts:list:cat=%s", category)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	var casts []models.SleepCast
	query := s.db.Order("created_at ASC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Find(&casts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to load sleepcasts")
		return
	}

	resp := utils.JSONResponse{Code: 0, Message: "success", Data: gin.H{"sleepcasts": casts}}
	utils.CacheSetJSON(cacheKey, resp, time.Hour)
	ctx.JSON(200, resp)
}

// GetCast returns a single catalog entry.
func (s *SleepcastController) GetCast(ctx *gin.Context) {
	var cast models.SleepCast
	if err := s.db.First(&cast, ctx.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40450, "sleepcast not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to load sleepcast")
		return
	}
	utils.Success(ctx, gin.H{"sleepcast": cast})
}

// ReportProgress upserts the caller's playback position for a sleepcast.
// The first transition to completed awards sleepcast points; repeat plays of
// a finished cast do not.
func (s *SleepcastController) ReportProgress(ctx *gin.Context) {
	var req struct {
		ProgressSeconds int  `json:"progress_seconds"`
		Completed       bool `json:"completed"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40050, "invalid request payload")
		return
	}
	if req.ProgressSeconds < 0 {
		utils.Error(ctx, http.StatusBadRequest, 40051, "progress cannot be negative")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var cast models.SleepCast
	if err := s.db.First(&cast, ctx.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40450, "sleepcast not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to load sleepcast")
		return
	}

	completed := playbackCompleted(req.ProgressSeconds, cast.Duration, req.Completed)

	// The completion transition is decided behind the user row lock, in the
	// same transaction as the award. Checked outside it, two concurrent
	// reports could both observe an unfinished play and double-credit.
	var play models.SleepcastPlay
	awarded := 0
	streak := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		user, err := lockUserForUpdate(tx, userID)
		if err != nil {
			return err
		}

		var prev *models.SleepcastPlay
		var found models.SleepcastPlay
		err = tx.Where("user_id = ? AND sleep_cast_id = ?", userID, cast.ID).First(&found).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			// first report for this cast
		case err != nil:
			return err
		default:
			prev = &found
		}

		firstCompletion := completionTransition(prev, completed)

		if prev == nil {
			play = models.SleepcastPlay{
				UserID:          userID,
				SleepCastID:     cast.ID,
				ProgressSeconds: req.ProgressSeconds,
				Completed:       completed,
				PlayedAt:        time.Now(),
			}
			if err := tx.Create(&play).Error; err != nil {
				return err
			}
		} else {
			prev.ProgressSeconds = req.ProgressSeconds
			// Completed never flips back once reached.
			prev.Completed = prev.Completed || completed
			prev.PlayedAt = time.Now()
			if err := tx.Save(prev).Error; err != nil {
				return err
			}
			play = *prev
		}

		if firstCompletion {
			state, err := applyAward(tx, user, models.ActivitySleepcast, config.Get().PointsSleepcast)
			if err != nil {
				return err
			}
			awarded = config.Get().PointsSleepcast
			streak = state.StreakDays
		}
		return nil
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50052, "failed to save playback progress")
		return
	}

	utils.Success(ctx, gin.H{
		"play":           play,
		"points_awarded": awarded,
		"streak_days":    streak,
	})
}

// playbackCompleted treats "within 10 seconds of the end" as completed,
// matching the client's player.
func playbackCompleted(progressSeconds, duration int, reported bool) bool {
	if reported {
		return true
	}
	return duration > 0 && progressSeconds >= duration-10
}

// completionTransition reports whether this update finishes the cast for the
// first time. Repeat plays of an already finished cast never qualify.
func completionTransition(prev *models.SleepcastPlay, completed bool) bool {
	if !completed {
		return false
	}
	return prev == nil || !prev.Completed
}

// History lists the caller's playback history, most recent first.
func (s *SleepcastController) History(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	var plays []models.SleepcastPlay
	var total int64
	query := s.db.Model(&models.SleepcastPlay{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50053, "failed to count playback history")
		return
	}
	if err := s.db.Preload("SleepCast").Where("user_id = ?", userID).
		Order("played_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&plays).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50054, "failed to load playback history")
		return
	}

	utils.Success(ctx, gin.H{
		"history":   plays,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
