package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/azleep/azleep-api/engagement"
	"github.com/azleep/azleep-api/models"
	"github.com/azleep/azleep-api/utils"
)

// EngagementController exposes the relaxation-points state and activity log.
type EngagementController struct {
	db *gorm.DB
}

// NewEngagementController creates a new controller instance.
func NewEngagementController(db *gorm.DB) *EngagementController {
	return &EngagementController{db: db}
}

// Status returns the user's engagement counters. Daily points are evaluated
// against the current day, so yesterday's points read as zero.
func (e *EngagementController) Status(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var user models.User
	if err := e.db.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to load user")
		return
	}

	state := engagementState(&user)
	utils.Success(ctx, gin.H{
		"total_points":     state.TotalPoints,
		"points_today":     engagement.PointsToday(state, time.Now()),
		"streak_days":      engagement.Streak(state),
		"last_activity_at": user.LastActivityAt,
	})
}

// Activities returns the user's recent qualifying activities, newest first.
func (e *EngagementController) Activities(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	var activities []models.Activity
	var total int64
	query := e.db.Model(&models.Activity{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to count activities")
		return
	}
	if err := query.Order("occurred_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&activities).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to load activities")
		return
	}

	utils.Success(ctx, gin.H{
		"activities": activities,
		"total":      total,
		"page":       page,
		"page_size":  pageSize,
	})
}

// awardPoints runs the ledger for one qualifying activity inside a transaction
// holding a row lock on the user, so concurrent submissions for the same user
// serialize instead of clobbering each other's read-modify-write. Returns the
// resulting state for the caller's response payload.
//
// Producers whose award is conditional (first log of a date, first completion)
// must not use this wrapper: they open their own transaction, call
// lockUserForUpdate before evaluating the condition, and then applyAward. An
// eligibility check taken outside the lock can pass on two concurrent
// requests at once.
func awardPoints(db *gorm.DB, userID uint, kind string, amount int) (engagement.State, error) {
	var state engagement.State

	err := db.Transaction(func(tx *gorm.DB) error {
		user, err := lockUserForUpdate(tx, userID)
		if err != nil {
			return err
		}
		state, err = applyAward(tx, user, kind, amount)
		return err
	})

	return state, err
}

// lockUserForUpdate loads the user row under SELECT ... FOR UPDATE, blocking
// until any other award transaction for the same user commits.
func lockUserForUpdate(tx *gorm.DB, userID uint) (*models.User, error) {
	var user models.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// applyAward runs the ledger against a locked user row, appends the Activity
// audit record, and persists the new counters. Must be called inside the
// transaction that locked the row.
func applyAward(tx *gorm.DB, user *models.User, kind string, amount int) (engagement.State, error) {
	now := time.Now()
	next, err := engagement.Record(engagementState(user), amount, now)
	if err != nil {
		return engagement.State{}, err
	}

	record := models.Activity{
		UserID:      user.ID,
		Kind:        kind,
		Points:      amount,
		StreakAfter: next.StreakDays,
		OccurredAt:  now,
	}
	if err := tx.Create(&record).Error; err != nil {
		return engagement.State{}, err
	}

	user.RelaxationPoints = next.TotalPoints
	user.DailyPoints = next.DailyPoints
	user.StreakDays = next.StreakDays
	user.LastActivityAt = next.LastActivity
	if err := tx.Save(user).Error; err != nil {
		return engagement.State{}, err
	}

	return next, nil
}

// engagementState maps the persisted user columns to the ledger's state value.
func engagementState(u *models.User) engagement.State {
	return engagement.State{
		TotalPoints:  u.RelaxationPoints,
		DailyPoints:  u.DailyPoints,
		StreakDays:   u.StreakDays,
		LastActivity: u.LastActivityAt,
	}
}
