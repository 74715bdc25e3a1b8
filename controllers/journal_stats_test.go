package controllers

import (
	"testing"
	"time"

	"github.com/azleep/azleep-api/models"
)

func entryAt(ts time.Time, mood string) models.JournalEntry {
	return models.JournalEntry{Mood: mood, CreatedAt: ts}
}

func TestComputeJournalStatsEmpty(t *testing.T) {
	now := time.Date(2025, 6, 15, 21, 0, 0, 0, time.Local)
	stats := computeJournalStats(nil, now)

	if stats.Total != 0 || stats.ThisMonth != 0 {
		t.Errorf("empty input: total=%d thisMonth=%d, want 0/0", stats.Total, stats.ThisMonth)
	}
	if stats.CurrentStreak != 0 || stats.LongestStreak != 0 {
		t.Errorf("empty input: streaks %d/%d, want 0/0", stats.CurrentStreak, stats.LongestStreak)
	}
	if len(stats.Last7Days) != 7 {
		t.Fatalf("Last7Days length = %d, want 7", len(stats.Last7Days))
	}
	for _, d := range stats.Last7Days {
		if d.HasEntry {
			t.Errorf("day %s should have no entry", d.Day)
		}
	}
}

func TestComputeJournalStatsCounts(t *testing.T) {
	// Sunday June 15 2025.
	now := time.Date(2025, 6, 15, 21, 0, 0, 0, time.Local)
	entries := []models.JournalEntry{
		entryAt(now.AddDate(0, -1, 0), "Peaceful"), // May, not this month
		entryAt(now.AddDate(0, 0, -3), "Anxious"),
		entryAt(now.AddDate(0, 0, -1), "Peaceful"),
		entryAt(now, "Grateful"),
	}

	stats := computeJournalStats(entries, now)
	if stats.Total != 4 {
		t.Errorf("Total = %d, want 4", stats.Total)
	}
	if stats.ThisMonth != 3 {
		t.Errorf("ThisMonth = %d, want 3", stats.ThisMonth)
	}
}

func TestComputeJournalStatsMoodDistribution(t *testing.T) {
	now := time.Date(2025, 6, 15, 21, 0, 0, 0, time.Local)
	entries := []models.JournalEntry{
		entryAt(now, "Peaceful"),
		entryAt(now, "Peaceful"),
		entryAt(now, "Anxious"),
		entryAt(now, ""), // untagged entries are excluded
	}

	stats := computeJournalStats(entries, now)
	if len(stats.MoodDistribution) != 2 {
		t.Fatalf("distribution length = %d, want 2", len(stats.MoodDistribution))
	}
	if stats.MoodDistribution[0].Mood != "Peaceful" || stats.MoodDistribution[0].Count != 2 {
		t.Errorf("top mood = %+v, want Peaceful x2", stats.MoodDistribution[0])
	}
	if stats.MoodDistribution[0].Color != "bg-blue-500" {
		t.Errorf("Peaceful color = %q, want bg-blue-500", stats.MoodDistribution[0].Color)
	}
}

func TestComputeJournalStatsMoodDistributionTopFive(t *testing.T) {
	now := time.Date(2025, 6, 15, 21, 0, 0, 0, time.Local)
	moods := []string{"Peaceful", "Grateful", "Reflective", "Anxious", "Tired", "Sad", "Happy"}
	var entries []models.JournalEntry
	for _, m := range moods {
		entries = append(entries, entryAt(now, m))
	}

	stats := computeJournalStats(entries, now)
	if len(stats.MoodDistribution) != 5 {
		t.Errorf("distribution length = %d, want 5", len(stats.MoodDistribution))
	}
}

func TestComputeJournalStatsStreaks(t *testing.T) {
	now := time.Date(2025, 6, 15, 21, 0, 0, 0, time.Local)

	tests := []struct {
		name        string
		daysAgo     []int
		wantCurrent int
		wantLongest int
	}{
		{"today only", []int{0}, 1, 1},
		{"today and yesterday", []int{0, 1}, 2, 2},
		{"broken today", []int{1, 2}, 0, 2},
		{"gap in the middle", []int{0, 1, 3, 4, 5}, 2, 3},
		{"full week", []int{0, 1, 2, 3, 4, 5, 6}, 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var entries []models.JournalEntry
			for _, d := range tt.daysAgo {
				entries = append(entries, entryAt(now.AddDate(0, 0, -d), "Neutral"))
			}
			stats := computeJournalStats(entries, now)
			if stats.CurrentStreak != tt.wantCurrent {
				t.Errorf("CurrentStreak = %d, want %d", stats.CurrentStreak, tt.wantCurrent)
			}
			if stats.LongestStreak != tt.wantLongest {
				t.Errorf("LongestStreak = %d, want %d", stats.LongestStreak, tt.wantLongest)
			}
		})
	}
}

func TestComputeJournalStatsLast7DaysOrder(t *testing.T) {
	// Sunday June 15 2025, so the window runs Mon..Sun.
	now := time.Date(2025, 6, 15, 21, 0, 0, 0, time.Local)
	entries := []models.JournalEntry{
		entryAt(now, "Peaceful"),
		entryAt(now.AddDate(0, 0, -6), "Tired"),
	}

	stats := computeJournalStats(entries, now)
	if got := stats.Last7Days[0].Day; got != "Mon" {
		t.Errorf("oldest day = %q, want Mon", got)
	}
	if got := stats.Last7Days[6].Day; got != "Sun" {
		t.Errorf("newest day = %q, want Sun", got)
	}
	if !stats.Last7Days[0].HasEntry || !stats.Last7Days[6].HasEntry {
		t.Error("both boundary days should have entries")
	}
	for i := 1; i < 6; i++ {
		if stats.Last7Days[i].HasEntry {
			t.Errorf("day %d should be empty", i)
		}
	}
}
