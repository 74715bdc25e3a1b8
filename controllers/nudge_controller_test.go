package controllers

import (
	"testing"

	"github.com/azleep/azleep-api/models"
)

func TestNudgeMatches(t *testing.T) {
	tests := []struct {
		name       string
		nudge      models.SleepNudge
		age        int
		occupation string
		issues     []string
		want       bool
	}{
		{
			name:  "no targeting matches everyone",
			nudge: models.SleepNudge{},
			want:  true,
		},
		{
			name:  "age within range",
			nudge: models.SleepNudge{TargetAgeMin: 18, TargetAgeMax: 30},
			age:   25,
			want:  true,
		},
		{
			name:  "age below range",
			nudge: models.SleepNudge{TargetAgeMin: 18},
			age:   16,
			want:  false,
		},
		{
			name:  "age above range",
			nudge: models.SleepNudge{TargetAgeMax: 30},
			age:   45,
			want:  false,
		},
		{
			name:  "unknown age never matches an age rule",
			nudge: models.SleepNudge{TargetAgeMin: 18},
			age:   0,
			want:  false,
		},
		{
			name:       "occupation match is case-insensitive",
			nudge:      models.SleepNudge{TargetOccupations: `["Student","Nurse"]`},
			occupation: "student",
			want:       true,
		},
		{
			name:       "occupation mismatch",
			nudge:      models.SleepNudge{TargetOccupations: `["nurse"]`},
			occupation: "developer",
			want:       false,
		},
		{
			name:   "sleep issue overlap",
			nudge:  models.SleepNudge{TargetSleepIssues: `["stress","racing thoughts"]`},
			issues: []string{"noise", "stress"},
			want:   true,
		},
		{
			name:   "no sleep issue overlap",
			nudge:  models.SleepNudge{TargetSleepIssues: `["stress"]`},
			issues: []string{"noise"},
			want:   false,
		},
		{
			name:  "malformed target list matches everyone",
			nudge: models.SleepNudge{TargetOccupations: `not-json`},
			want:  true,
		},
		{
			name:       "all rules must hold",
			nudge:      models.SleepNudge{TargetAgeMin: 18, TargetOccupations: `["student"]`},
			age:        25,
			occupation: "nurse",
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nudgeMatches(tt.nudge, tt.age, tt.occupation, tt.issues); got != tt.want {
				t.Errorf("nudgeMatches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeStringList(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 0},
		{"[]", 0},
		{`["a","b"]`, 2},
		{"garbage", 0},
	}
	for _, tt := range tests {
		if got := decodeStringList(tt.raw); len(got) != tt.want {
			t.Errorf("decodeStringList(%q) length = %d, want %d", tt.raw, len(got), tt.want)
		}
	}
}
