package models

import "time"

// JournalEntry is a nightly journal note, optionally tagged with a mood.
type JournalEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Title     string    `gorm:"size:255" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Mood      string    `gorm:"size:32" json:"mood"`
	VoiceURL  string    `gorm:"size:1024" json:"voice_url"` // optional voice-note attachment
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
