package controllers

import (
	"testing"

	"github.com/azleep/azleep-api/models"
)

func TestPlaybackCompleted(t *testing.T) {
	tests := []struct {
		name     string
		progress int
		duration int
		reported bool
		want     bool
	}{
		{"client reported done", 0, 1800, true, true},
		{"mid play", 900, 1800, false, false},
		{"within ten seconds of end", 1795, 1800, false, true},
		{"exactly at end", 1800, 1800, false, true},
		{"unknown duration needs the flag", 5000, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := playbackCompleted(tt.progress, tt.duration, tt.reported); got != tt.want {
				t.Errorf("playbackCompleted(%d, %d, %v) = %v, want %v",
					tt.progress, tt.duration, tt.reported, got, tt.want)
			}
		})
	}
}

func TestCompletionTransition(t *testing.T) {
	unfinished := &models.SleepcastPlay{Completed: false}
	finished := &models.SleepcastPlay{Completed: true}

	tests := []struct {
		name      string
		prev      *models.SleepcastPlay
		completed bool
		want      bool
	}{
		{"first report finishing the cast", nil, true, true},
		{"first report mid play", nil, false, false},
		{"unfinished play now completed", unfinished, true, true},
		{"unfinished play still unfinished", unfinished, false, false},
		{"repeat play of a finished cast", finished, true, false},
		{"rewinding a finished cast", finished, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := completionTransition(tt.prev, tt.completed); got != tt.want {
				t.Errorf("completionTransition(prev=%v, completed=%v) = %v, want %v",
					tt.prev, tt.completed, got, tt.want)
			}
		})
	}
}
