package controllers

import (
	"sort"
	"time"

	"github.com/azleep/azleep-api/models"
)

// moodColors maps moods to the accent classes the client renders.
var moodColors = map[string]string{
	"Peaceful":   "bg-blue-500",
	"Grateful":   "bg-green-500",
	"Reflective": "bg-purple-500",
	"Anxious":    "bg-amber-500",
	"Tired":      "bg-red-500",
	"Sad":        "bg-indigo-500",
	"Neutral":    "bg-gray-500",
	"Happy":      "bg-yellow-500",
	"Mixed":      "bg-pink-500",
}

// MoodCount is one slice of the mood distribution.
type MoodCount struct {
	Mood  string `json:"mood"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// DayPresence marks whether a given weekday had at least one entry.
type DayPresence struct {
	Day      string `json:"day"`
	HasEntry bool   `json:"has_entry"`
}

// JournalStats aggregates a user's journaling behaviour for the stats page.
type JournalStats struct {
	Total            int           `json:"total"`
	ThisMonth        int           `json:"this_month"`
	CurrentStreak    int           `json:"current_streak"`
	LongestStreak    int           `json:"longest_streak"`
	MoodDistribution []MoodCount   `json:"mood_distribution"`
	Last7Days        []DayPresence `json:"last_7_days"`
}

// computeJournalStats derives the journal statistics from a user's entries.
// Streaks here are writing streaks over the last 7 days, independent of the
// relaxation-points ledger.
func computeJournalStats(entries []models.JournalEntry, now time.Time) JournalStats {
	stats := JournalStats{Total: len(entries)}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for _, e := range entries {
		if !e.CreatedAt.Before(monthStart) {
			stats.ThisMonth++
		}
	}

	// Mood distribution, top 5 by count.
	counts := map[string]int{}
	for _, e := range entries {
		if e.Mood != "" {
			counts[e.Mood]++
		}
	}
	for mood, count := range counts {
		color, ok := moodColors[mood]
		if !ok {
			color = "bg-gray-500"
		}
		stats.MoodDistribution = append(stats.MoodDistribution, MoodCount{Mood: mood, Count: count, Color: color})
	}
	sort.Slice(stats.MoodDistribution, func(i, j int) bool {
		a, b := stats.MoodDistribution[i], stats.MoodDistribution[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Mood < b.Mood
	})
	if len(stats.MoodDistribution) > 5 {
		stats.MoodDistribution = stats.MoodDistribution[:5]
	}

	// Presence per day over the trailing week, oldest first.
	hasEntry := func(day time.Time) bool {
		for _, e := range entries {
			if e.CreatedAt.Year() == day.Year() && e.CreatedAt.YearDay() == day.YearDay() {
				return true
			}
		}
		return false
	}
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		stats.Last7Days = append(stats.Last7Days, DayPresence{
			Day:      day.Format("Mon"),
			HasEntry: hasEntry(day),
		})
	}

	// Writing streaks within the 7-day window, walking back from today.
	temp := 0
	for i := 0; i < 7; i++ {
		day := now.AddDate(0, 0, -i)
		if hasEntry(day) {
			temp++
			if i == 0 || stats.CurrentStreak == i {
				stats.CurrentStreak = temp
			}
			if temp > stats.LongestStreak {
				stats.LongestStreak = temp
			}
		} else {
			temp = 0
		}
	}

	return stats
}
