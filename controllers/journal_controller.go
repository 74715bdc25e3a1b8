package controllers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/azleep/azleep-api/config"
	"github.com/azleep/azleep-api/models"
	"github.com/azleep/azleep-api/utils"
)

// JournalController manages journal entries, their statistics, and voice-note
// uploads. Creating an entry is a qualifying activity for the points ledger.
type JournalController struct {
	db *gorm.DB
}

// NewJournalController creates a new JournalController instance.
func NewJournalController(db *gorm.DB) *JournalController {
	return &JournalController{db: db}
}

var validMoods = []string{"Peaceful", "Grateful", "Reflective", "Anxious", "Tired", "Sad", "Neutral", "Happy", "Mixed"}

func isValidMood(mood string) bool {
	for _, m := range validMoods {
		if mood == m {
			return true
		}
	}
	return false
}

// CreateEntry stores a new journal entry and awards journal points.
func (j *JournalController) CreateEntry(ctx *gin.Context) {
	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content" binding:"required"`
		Mood     string `json:"mood"`
		VoiceURL string `json:"voice_url"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	content := utils.Sanitize(req.Content)
	if strings.TrimSpace(content) == "" {
		utils.Error(ctx, http.StatusBadRequest, 40021, "content cannot be empty")
		return
	}
	if req.Mood != "" && !isValidMood(req.Mood) {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid mood")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	entry := models.JournalEntry{
		UserID:   userID,
		Title:    utils.SanitizePlain(strings.TrimSpace(req.Title)),
		Content:  content,
		Mood:     req.Mood,
		VoiceURL: strings.TrimSpace(req.VoiceURL),
	}

	if err := j.db.Create(&entry).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to create journal entry")
		return
	}

	utils.InvalidateByPrefix(journalStatsCacheKey(userID))

	// Points are best-effort: a failed award never rolls back the entry, the
	// client just misses the "+N" toast this time.
	awarded := 0
	streak := 0
	if state, err := awardPoints(j.db, userID, models.ActivityJournal, config.Get().PointsJournal); err != nil {
		utils.Sugar.Warnf("journal points award failed for user %d: %v", userID, err)
	} else {
		awarded = config.Get().PointsJournal
		streak = state.StreakDays
	}

	utils.Success(ctx, gin.H{
		"entry":          entry,
		"points_awarded": awarded,
		"streak_days":    streak,
	})
}

// ListEntries returns the user's entries, newest first, with optional search.
func (j *JournalController) ListEntries(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	search := strings.TrimSpace(ctx.Query("search"))
	mood := strings.TrimSpace(ctx.Query("mood"))

	var entries []models.JournalEntry
	var total int64

	query := j.db.Model(&models.JournalEntry{}).Where("user_id = ?", userID)
	if search != "" {
		query = query.Where("title LIKE ? OR content LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if mood != "" {
		query = query.Where("mood = ?", mood)
	}

	if err := query.Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to count journal entries")
		return
	}
	if err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&entries).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to load journal entries")
		return
	}

	utils.Success(ctx, gin.H{
		"entries":   entries,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetEntry returns a single entry owned by the caller.
func (j *JournalController) GetEntry(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var entry models.JournalEntry
	if err := j.db.Where("id = ? AND user_id = ?", ctx.Param("id"), userID).First(&entry).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40420, "journal entry not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to load journal entry")
		return
	}

	utils.Success(ctx, gin.H{"entry": entry})
}

// UpdateEntry edits title, content, or mood of an owned entry. Edits do not
// award points again.
func (j *JournalController) UpdateEntry(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
		Mood    *string `json:"mood"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	var entry models.JournalEntry
	if err := j.db.Where("id = ? AND user_id = ?", ctx.Param("id"), userID).First(&entry).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40420, "journal entry not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to load journal entry")
		return
	}

	if req.Title != nil {
		entry.Title = utils.SanitizePlain(strings.TrimSpace(*req.Title))
	}
	if req.Content != nil {
		content := utils.Sanitize(*req.Content)
		if strings.TrimSpace(content) == "" {
			utils.Error(ctx, http.StatusBadRequest, 40021, "content cannot be empty")
			return
		}
		entry.Content = content
	}
	if req.Mood != nil {
		if *req.Mood != "" && !isValidMood(*req.Mood) {
			utils.Error(ctx, http.StatusBadRequest, 40022, "invalid mood")
			return
		}
		entry.Mood = *req.Mood
	}

	if err := j.db.Save(&entry).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to update journal entry")
		return
	}

	utils.InvalidateByPrefix(journalStatsCacheKey(userID))
	utils.Success(ctx, gin.H{"entry": entry})
}

// DeleteEntry removes an owned entry. Points stay awarded; the activity
// happened regardless.
func (j *JournalController) DeleteEntry(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	res := j.db.Where("id = ? AND user_id = ?", ctx.Param("id"), userID).Delete(&models.JournalEntry{})
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50025, "failed to delete journal entry")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40420, "journal entry not found")
		return
	}

	utils.InvalidateByPrefix(journalStatsCacheKey(userID))
	utils.Success(ctx, gin.H{"deleted": true})
}

// Stats returns aggregated journaling statistics, cached briefly per user.
func (j *JournalController) Stats(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	cacheKey := journalStatsCacheKey(userID)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	var entries []models.JournalEntry
	if err := j.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&entries).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50026, "failed to load journal entries")
		return
	}

	stats := computeJournalStats(entries, time.Now())

	resp := utils.JSONResponse{Code: 0, Message: "success", Data: gin.H{"stats": stats}}
	utils.CacheSetJSON(cacheKey, resp, 5*time.Minute)
	ctx.JSON(200, resp)
}

func journalStatsCacheKey(userID uint) string {
	return "cache:journal:stats:" + strconv.Itoa(int(userID))
}

// UploadVoiceNote stores a voice-journal recording under static/uploads and
// records it for timed cleanup unless a journal entry claims it.
func (j *JournalController) UploadVoiceNote(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40023, "missing upload file")
		return
	}
	if file.Size > 20<<20 {
		utils.Error(ctx, http.StatusBadRequest, 40024, "file too large")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".mp3", ".m4a", ".ogg", ".wav", ".webm":
	default:
		utils.Error(ctx, http.StatusBadRequest, 40025, "unsupported audio format")
		return
	}

	dir := filepath.Join("static", "uploads")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50027, "failed to prepare upload directory")
		return
	}

	name := fmt.Sprintf("%d-%s%s", userID, uuid.NewString(), ext)
	dst := filepath.Join(dir, name)

	src, err := file.Open()
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40023, "failed to read upload")
		return
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50028, "failed to store upload")
		return
	}
	defer out.Close()
	if _, err := io.Copy(out, src); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50028, "failed to store upload")
		return
	}

	relURL := "/static/uploads/" + name
	ttl := time.Duration(config.Get().VoiceNoteTTLHours) * time.Hour
	note := models.VoiceNote{
		UserID:   userID,
		FilePath: dst,
		URL:      relURL,
		ExpireAt: time.Now().Add(ttl),
	}
	if err := j.db.Create(&note).Error; err != nil {
		utils.Sugar.Warnf("voice note record failed: %v", err)
	}

	utils.Success(ctx, gin.H{"url": relURL, "expires_at": note.ExpireAt})
}
