package utils

import (
	"os"
	"time"

	"github.com/azleep/azleep-api/config"
	"github.com/azleep/azleep-api/models"
)

// StartVoiceNoteCleaner launches a background goroutine that periodically
// deletes expired voice-note uploads recorded in the database. Notes that were
// attached to a journal entry are kept. Best-effort; failures are logged.
func StartVoiceNoteCleaner(interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	go func() {
		for {
			// Sleep first to avoid racing immediately at startup
			time.Sleep(interval)
			db := config.DB()
			if db == nil {
				continue
			}
			var notes []models.VoiceNote
			if err := db.Where("expire_at <= ?", time.Now()).Limit(100).Find(&notes).Error; err != nil {
				Sugar.Warnf("voice note cleaner query failed: %v", err)
				continue
			}
			for _, n := range notes {
				// Skip notes referenced by a journal entry; they were claimed.
				var claimed int64
				if err := db.Model(&models.JournalEntry{}).Where("voice_url = ?", n.URL).Count(&claimed).Error; err == nil && claimed > 0 {
					if err := db.Model(&models.VoiceNote{}).Where("id = ?", n.ID).Update("expire_at", time.Now().AddDate(10, 0, 0)).Error; err != nil {
						Sugar.Warnf("voice note keep-alive failed: %v", err)
					}
					continue
				}
				if n.FilePath != "" {
					_ = os.Remove(n.FilePath)
				}
				// Remove row regardless of file deletion outcome
				if err := db.Delete(&models.VoiceNote{}, n.ID).Error; err != nil {
					Sugar.Warnf("voice note cleaner delete row failed: %v", err)
				}
			}
		}
	}()
}
