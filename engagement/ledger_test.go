package engagement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mon returns Monday 2025-06-02 at the given hour, local time.
func mon(hour int) time.Time {
	return time.Date(2025, 6, 2, hour, 0, 0, 0, time.Local)
}

func TestRecord_FirstActivity(t *testing.T) {
	got, err := Record(State{}, 10, mon(21))
	require.NoError(t, err)

	assert.Equal(t, 10, got.TotalPoints)
	assert.Equal(t, 10, got.DailyPoints)
	assert.Equal(t, 1, got.StreakDays)
	require.NotNil(t, got.LastActivity)
	assert.True(t, got.LastActivity.Equal(mon(21)))
}

func TestRecord_SameDayAccumulates(t *testing.T) {
	s, err := Record(State{}, 10, mon(21))
	require.NoError(t, err)

	// Second activity at 11pm the same Monday: points add up, streak unchanged.
	s, err = Record(s, 5, mon(23))
	require.NoError(t, err)

	assert.Equal(t, 15, s.TotalPoints)
	assert.Equal(t, 15, s.DailyPoints)
	assert.Equal(t, 1, s.StreakDays)
}

func TestRecord_NextDayExtendsStreak(t *testing.T) {
	s, _ := Record(State{}, 10, mon(21))
	s, _ = Record(s, 5, mon(23))

	tue := mon(8).AddDate(0, 0, 1)
	s, err := Record(s, 15, tue)
	require.NoError(t, err)

	assert.Equal(t, 30, s.TotalPoints)
	assert.Equal(t, 15, s.DailyPoints, "daily points reset on a new day")
	assert.Equal(t, 2, s.StreakDays)
}

func TestRecord_GapResetsStreak(t *testing.T) {
	s, _ := Record(State{}, 10, mon(21))
	s, _ = Record(s, 5, mon(23))
	s, _ = Record(s, 15, mon(8).AddDate(0, 0, 1)) // Tuesday, streak 2

	thu := mon(8).AddDate(0, 0, 3)
	s, err := Record(s, 10, thu)
	require.NoError(t, err)

	assert.Equal(t, 40, s.TotalPoints)
	assert.Equal(t, 10, s.DailyPoints)
	assert.Equal(t, 1, s.StreakDays, "skipping a full day restarts the streak")
}

func TestRecord_InvalidAmount(t *testing.T) {
	orig, _ := Record(State{}, 10, mon(21))

	for _, amount := range []int{0, -5} {
		got, err := Record(orig, amount, mon(22))
		assert.ErrorIs(t, err, ErrInvalidAmount)
		assert.Equal(t, orig, got, "rejected activity must not change state")
	}
}

func TestRecord_TotalPointsMatchSumOfAmounts(t *testing.T) {
	amounts := []int{10, 5, 15, 10, 20, 5}
	// Timestamps deliberately jump around: same day, forward, gaps.
	stamps := []time.Time{
		mon(9), mon(21),
		mon(0).AddDate(0, 0, 1),
		mon(0).AddDate(0, 0, 4),
		mon(0).AddDate(0, 0, 5),
		mon(12).AddDate(0, 0, 5),
	}

	var s State
	sum := 0
	for i, amount := range amounts {
		var err error
		s, err = Record(s, amount, stamps[i])
		require.NoError(t, err)
		sum += amount
	}
	assert.Equal(t, sum, s.TotalPoints)
}

func TestRecord_StreakAcrossMonthBoundary(t *testing.T) {
	lastOfMay := time.Date(2025, 5, 31, 22, 0, 0, 0, time.Local)
	firstOfJune := time.Date(2025, 6, 1, 7, 0, 0, 0, time.Local)

	s, _ := Record(State{}, 10, lastOfMay)
	s, err := Record(s, 10, firstOfJune)
	require.NoError(t, err)
	assert.Equal(t, 2, s.StreakDays)
}

func TestPointsToday(t *testing.T) {
	s, _ := Record(State{}, 12, mon(21))

	assert.Equal(t, 12, PointsToday(s, mon(23)))
	assert.Equal(t, 0, PointsToday(s, mon(23).AddDate(0, 0, 1)), "yesterday's points do not count today")
	assert.Equal(t, 0, PointsToday(State{}, mon(23)), "cold state has no points today")
}

func TestStreak_ReportsStoredValue(t *testing.T) {
	assert.Equal(t, 0, Streak(State{}))

	s, _ := Record(State{}, 10, mon(21))
	s, _ = Record(s, 10, mon(8).AddDate(0, 0, 1))
	// No decay: the value stays until the next Record re-evaluates it.
	assert.Equal(t, 2, Streak(s))
}
