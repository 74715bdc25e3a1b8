package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an Azleep account with its wellness profile and engagement
// counters. Passwords are stored as bcrypt hashes only. The engagement fields
// (relaxation/daily points, streak, last activity) are the durable form of
// engagement.State and are only mutated through the award transaction.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"size:64;not null" json:"username"`
	Email        string `gorm:"size:255" json:"email"`
	PasswordHash string `gorm:"size:255" json:"-"`
	Provider     string `gorm:"size:32" json:"provider"`
	ProviderID   string `gorm:"size:255" json:"provider_id"`
	RegisterIP   string `gorm:"size:45" json:"register_ip"`
	AvatarURL    string `gorm:"size:512" json:"avatar_url"`

	// Wellness profile, filled during onboarding.
	FirstName           string `gorm:"size:64" json:"first_name"`
	LastName            string `gorm:"size:64" json:"last_name"`
	Age                 int    `gorm:"default:0" json:"age"`
	Occupation          string `gorm:"size:128" json:"occupation"`
	BedtimeTarget       string `gorm:"size:8" json:"bedtime_target"`  // "23:30"
	WaketimeTarget      string `gorm:"size:8" json:"waketime_target"` // "07:00"
	SleepGoals          string `gorm:"type:text" json:"sleep_goals"`  // JSON array of strings
	SleepIssues         string `gorm:"type:text" json:"sleep_issues"` // JSON array of strings
	OnboardingCompleted bool   `gorm:"default:false" json:"onboarding_completed"`

	// Engagement ledger state.
	RelaxationPoints int        `gorm:"default:0" json:"relaxation_points"`
	DailyPoints      int        `gorm:"default:0" json:"daily_points"`
	StreakDays       int        `gorm:"default:0" json:"streak_days"`
	LastActivityAt   *time.Time `json:"last_activity_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}
