package models

import "time"

// Activity kinds; every qualifying activity producer writes exactly one.
const (
	ActivityJournal   = "journal"
	ActivityCheckIn   = "check_in"
	ActivitySleepLog  = "sleep_log"
	ActivitySleepcast = "sleepcast"
)

// Activity is the audit row appended for each qualifying activity the ledger
// rewarded: which kind, how many points, and the streak after the award.
type Activity struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Kind        string    `gorm:"size:32;not null" json:"kind"`
	Points      int       `gorm:"not null" json:"points"`
	StreakAfter int       `json:"streak_after"`
	OccurredAt  time.Time `gorm:"index;not null" json:"occurred_at"`
	CreatedAt   time.Time `json:"created_at"`
}
