package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/azleep/azleep-api/config"
	"github.com/azleep/azleep-api/utils"
)

// ConfigController serves dynamic, environment-driven client configuration.
type ConfigController struct{}

func NewConfigController() *ConfigController { return &ConfigController{} }

// GetNotice returns announcement/notice content configured via config.
func (c *ConfigController) GetNotice(ctx *gin.Context) {
	cfg := config.Get()
	utils.Success(ctx, gin.H{
		"title": cfg.NoticeTitle,
		"html":  cfg.NoticeHTML,
	})
}

// GetRewards returns the point values for each activity kind so clients can
// render them without hardcoding.
func (c *ConfigController) GetRewards(ctx *gin.Context) {
	cfg := config.Get()
	utils.Success(ctx, gin.H{
		"journal_entry":      cfg.PointsJournal,
		"mood_check_in":      cfg.PointsCheckIn,
		"sleep_log":          cfg.PointsSleepLog,
		"sleepcast_complete": cfg.PointsSleepcast,
	})
}
