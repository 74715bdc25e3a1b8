package models

import "time"

// MoodRecord stores one daily check-in: mood, stress level, and free notes.
type MoodRecord struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Mood        string    `gorm:"size:32;not null" json:"mood"`
	StressLevel *int      `json:"stress_level"` // 0-10, nil when not reported
	Notes       string    `gorm:"type:text" json:"notes"`
	RecordedAt  time.Time `gorm:"index;not null" json:"recorded_at"`
	CreatedAt   time.Time `json:"created_at"`
}
