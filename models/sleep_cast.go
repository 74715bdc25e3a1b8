package models

import "time"

// SleepCast is a curated sleep-audio track from the public catalog.
type SleepCast struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Category     string    `gorm:"size:32;index" json:"category"`
	AudioURL     string    `gorm:"size:1024;not null" json:"audio_url"`
	ThumbnailURL string    `gorm:"size:1024" json:"thumbnail_url"`
	Duration     int       `gorm:"not null" json:"duration"` // seconds
	CreatedAt    time.Time `json:"created_at"`
}

// SleepcastPlay tracks a user's playback of one sleepcast. Progress reports
// upsert the same row; Completed flips once when playback reaches the end and
// never flips back.
type SleepcastPlay struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"index;index:idx_play_user_cast,unique;not null" json:"user_id"`
	SleepCastID     uint      `gorm:"index:idx_play_user_cast,unique;not null" json:"sleep_cast_id"`
	ProgressSeconds int       `gorm:"default:0" json:"progress_seconds"`
	Completed       bool      `gorm:"default:false" json:"completed"`
	PlayedAt        time.Time `gorm:"index;not null" json:"played_at"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	SleepCast       SleepCast `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"sleep_cast"`
}
