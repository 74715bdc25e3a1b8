package models

import "time"

// SleepNudge is a coaching message shown to users whose profile matches its
// targeting rules. Empty target fields match everyone.
type SleepNudge struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Title             string    `gorm:"size:255;not null" json:"title"`
	Content           string    `gorm:"type:text;not null" json:"content"`
	Category          string    `gorm:"size:32;index" json:"category"`
	Priority          int       `gorm:"default:0;index" json:"priority"`
	TargetAgeMin      int       `gorm:"default:0" json:"target_age_min"`
	TargetAgeMax      int       `gorm:"default:0" json:"target_age_max"`
	TargetOccupations string    `gorm:"type:text" json:"target_occupations"`  // JSON array of strings
	TargetSleepIssues string    `gorm:"type:text" json:"target_sleep_issues"` // JSON array of strings
	CreatedAt         time.Time `json:"created_at"`
}
