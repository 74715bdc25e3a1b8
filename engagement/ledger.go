// Package engagement implements the relaxation-points ledger: points, daily
// points, and streak computation for qualifying user activities. The ledger is
// a pure state-transition function; loading and persisting State is the
// caller's job (see controllers for the transactional wrapper).
package engagement

import (
	"errors"
	"time"
)

// ErrInvalidAmount is returned when an activity carries a non-positive point value.
var ErrInvalidAmount = errors.New("engagement: point amount must be positive")

// State holds the per-user engagement counters. The zero value is a valid
// "cold" state for a user who has never performed a qualifying activity.
type State struct {
	TotalPoints  int
	DailyPoints  int
	StreakDays   int
	LastActivity *time.Time
}

// Record applies one qualifying activity worth amount points at the given
// instant and returns the resulting state. The input state is never mutated.
//
// Rules:
//   - TotalPoints only ever grows.
//   - DailyPoints accumulates within a calendar day and restarts at amount on
//     the first activity of a new day.
//   - StreakDays is re-evaluated only once per new day: +1 when the previous
//     activity was yesterday, otherwise back to 1. Repeat activities on the
//     same day leave the streak untouched.
func Record(s State, amount int, at time.Time) (State, error) {
	if amount <= 0 {
		return s, ErrInvalidAmount
	}

	next := s
	next.TotalPoints += amount

	newDay := s.LastActivity == nil || !sameDay(*s.LastActivity, at)
	if newDay {
		next.DailyPoints = amount
		switch {
		case s.LastActivity == nil:
			next.StreakDays = 1
		case isYesterday(*s.LastActivity, at):
			next.StreakDays = s.StreakDays + 1
		default:
			next.StreakDays = 1
		}
	} else {
		next.DailyPoints = s.DailyPoints + amount
	}

	ts := at
	next.LastActivity = &ts
	return next, nil
}

// PointsToday returns the points earned on the calendar day of now, which is
// zero whenever the last activity happened on a different day.
func PointsToday(s State, now time.Time) int {
	if s.LastActivity == nil || !sameDay(*s.LastActivity, now) {
		return 0
	}
	return s.DailyPoints
}

// Streak reports the last computed streak verbatim. It does not decay with
// elapsed inactivity; a stale state keeps its value until the next Record call
// re-evaluates the gap.
func Streak(s State) int {
	return s.StreakDays
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func isYesterday(last, now time.Time) bool {
	y := now.AddDate(0, 0, -1)
	return last.Year() == y.Year() && last.YearDay() == y.YearDay()
}
