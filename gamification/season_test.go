package gamification

import (
	"testing"
	"time"
)

func TestSeasons_MidSeason(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	current, previous := Seasons(now)

	if current.Label != "2024/25" {
		t.Errorf("current season = %s, want 2024/25", current.Label)
	}
	if previous.Label != "2023/24" {
		t.Errorf("previous season = %s, want 2023/24", previous.Label)
	}
	if !current.Start.Equal(time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("current season starts %v, want 2024-08-01", current.Start)
	}
	if !current.End.Equal(time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("current season ends %v, want 2025-08-01", current.End)
	}
}

func TestSeasons_AugustStartsNewSeason(t *testing.T) {
	now := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	current, previous := Seasons(now)

	if current.Label != "2025/26" {
		t.Errorf("current season on Aug 1 = %s, want 2025/26", current.Label)
	}
	if previous.Label != "2024/25" {
		t.Errorf("previous season = %s, want 2024/25", previous.Label)
	}
}

func TestSeasons_JulyStillPreviousSeason(t *testing.T) {
	now := time.Date(2025, time.July, 31, 23, 59, 0, 0, time.UTC)
	current, _ := Seasons(now)
	if current.Label != "2024/25" {
		t.Errorf("current season on Jul 31 = %s, want 2024/25", current.Label)
	}
}

func TestSeasons_WindowsAreAdjacent(t *testing.T) {
	current, previous := Seasons(time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC))
	if !previous.End.Equal(current.Start) {
		t.Errorf("previous season ends %v but current starts %v", previous.End, current.Start)
	}
}
