package models

import "time"

// SleepRecord logs one night of sleep. One row per user per sleep date; a
// second submission for the same date replaces the first.
type SleepRecord struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"index;index:idx_sleep_user_date,unique;not null" json:"user_id"`
	SleepDate       time.Time `gorm:"index:idx_sleep_user_date,unique;type:date;not null" json:"sleep_date"`
	SleepHours      float64   `gorm:"not null" json:"sleep_hours"`
	SleepQuality    int       `gorm:"not null" json:"sleep_quality"` // 1-5
	MoodBeforeSleep string    `gorm:"size:32" json:"mood_before_sleep"`
	Notes           string    `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
