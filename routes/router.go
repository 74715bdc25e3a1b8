package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/azleep/azleep-api/config"
	"github.com/azleep/azleep-api/controllers"
	"github.com/azleep/azleep-api/middleware"
	"github.com/azleep/azleep-api/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	// Load config and set Gin mode from configuration
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	ginLogPath := cfg.GinPath
	// Use application log level as reference
	gl, err := utils.NewRollingFileLogger(ginLogPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}

	r.Use(cors.New(corsCfg))
	// Record API usage after each request
	r.Use(middleware.UsageRecorder(db))

	// Voice-note uploads are served from here
	r.Static("/static", "./static")

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	engagementController := controllers.NewEngagementController(db)
	journalController := controllers.NewJournalController(db)
	moodController := controllers.NewMoodController(db)
	sleepController := controllers.NewSleepController(db)
	sleepcastController := controllers.NewSleepcastController(db)
	nudgeController := controllers.NewNudgeController(db)
	statsController := controllers.NewStatsController(db)
	configController := controllers.NewConfigController()

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/send-email-code", authController.SendEmailCode)
	authGroup.GET("/captcha", authController.Captcha)
	authGroup.POST("/captcha/verify", authController.CaptchaVerify)
	authGroup.GET("/oauth/:provider/login", authController.OAuthRedirect)
	authGroup.GET("/oauth/:provider/callback", authController.OAuthCallback)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)
	authGroup.PATCH("/profile", middleware.AuthRequired(), authController.UpdateProfile)

	// Public catalog and app info
	api.GET("/sleepcasts", sleepcastController.ListCasts)
	api.GET("/sleepcasts/:id", sleepcastController.GetCast)
	api.GET("/stats", statsController.GetStats)
	api.GET("/config/notice", configController.GetNotice)
	api.GET("/config/rewards", configController.GetRewards)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())

	protected.GET("/engagement", engagementController.Status)
	protected.GET("/engagement/activities", engagementController.Activities)

	protected.POST("/journal", journalController.CreateEntry)
	protected.GET("/journal", journalController.ListEntries)
	protected.GET("/journal/stats", journalController.Stats)
	protected.GET("/journal/:id", journalController.GetEntry)
	protected.PUT("/journal/:id", journalController.UpdateEntry)
	protected.DELETE("/journal/:id", journalController.DeleteEntry)
	protected.POST("/journal/voice", journalController.UploadVoiceNote)

	protected.POST("/moods", moodController.CheckIn)
	protected.GET("/moods", moodController.ListRecent)

	protected.POST("/sleep", sleepController.LogSleep)
	protected.GET("/sleep", sleepController.ListRecords)
	protected.GET("/sleep/summary", sleepController.Summary)

	protected.POST("/sleepcasts/:id/progress", sleepcastController.ReportProgress)
	protected.GET("/sleepcasts/history", sleepcastController.History)

	protected.GET("/nudges/personalized", nudgeController.Personalized)

	r.NoRoute(func(ctx *gin.Context) {
		path := ctx.Request.URL.Path
		if strings.HasPrefix(path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		if strings.HasPrefix(path, "/static/") {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "static asset not found"})
			return
		}
		ctx.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	})

	return r
}
