package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/azleep/azleep-api/models"
	"github.com/azleep/azleep-api/utils"
)

// NudgeController serves personalized sleep coaching nudges.
type NudgeController struct {
	db *gorm.DB
}

// NewNudgeController creates a new NudgeController instance.
func NewNudgeController(db *gorm.DB) *NudgeController {
	return &NudgeController{db: db}
}

// Personalized returns the nudges whose targeting rules match the caller's
// profile, highest priority first. Nudges with empty target fields match
// everyone, so new users always get at least the generic set.
func (n *NudgeController) Personalized(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var user models.User
	if err := n.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50062, "failed to load profile")
		return
	}

	var nudges []models.SleepNudge
	query := n.db.Order("priority DESC, created_at ASC")
	if category := strings.TrimSpace(ctx.Query("category")); category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Find(&nudges).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50061, "failed to load nudges")
		return
	}

	issues := decodeStringList(user.SleepIssues)
	matched := make([]models.SleepNudge, 0, len(nudges))
	for _, nudge := range nudges {
		if nudgeMatches(nudge, user.Age, user.Occupation, issues) {
			matched = append(matched, nudge)
		}
	}

	utils.Success(ctx, gin.H{"nudges": matched})
}

// nudgeMatches reports whether a nudge's targeting rules accept the given
// profile. Every non-empty rule must match.
func nudgeMatches(nudge models.SleepNudge, age int, occupation string, issues []string) bool {
	if nudge.TargetAgeMin > 0 && (age == 0 || age < nudge.TargetAgeMin) {
		return false
	}
	if nudge.TargetAgeMax > 0 && (age == 0 || age > nudge.TargetAgeMax) {
		return false
	}
	if targets := decodeStringList(nudge.TargetOccupations); len(targets) > 0 {
		if !containsFold(targets, occupation) {
			return false
		}
	}
	if targets := decodeStringList(nudge.TargetSleepIssues); len(targets) > 0 {
		found := false
		for _, issue := range issues {
			if containsFold(targets, issue) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// decodeStringList parses a JSON array column, tolerating empty or malformed
// values.
func decodeStringList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "[]" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), strings.TrimSpace(s)) {
			return true
		}
	}
	return false
}
