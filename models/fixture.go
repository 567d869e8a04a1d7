package models

import "time"

type FixtureStatus string

const (
	FixtureScheduled FixtureStatus = "scheduled"
	FixtureFinished  FixtureStatus = "finished"
	FixtureSettled   FixtureStatus = "settled"
)

type Fixture struct {
	ID        int           `json:"id"`
	HomeTeam  string        `json:"home_team"`
	AwayTeam  string        `json:"away_team"`
	StartsAt  time.Time     `json:"starts_at"`
	Status    FixtureStatus `json:"status"`
	HomeScore *int          `json:"home_score,omitempty"`
	AwayScore *int          `json:"away_score,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
