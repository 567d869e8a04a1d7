package models

import "time"

type Prediction struct {
	ID         int        `json:"id"`
	UserID     int        `json:"user_id"`
	GroupID    int        `json:"group_id"`
	FixtureID  int        `json:"fixture_id"`
	HomeGoals  int        `json:"home_goals"`
	AwayGoals  int        `json:"away_goals"`
	Points     int        `json:"points"`
	WonExact   bool       `json:"won_exact"`
	WonOutcome bool       `json:"won_outcome"`
	PlacedAt   time.Time  `json:"placed_at"`
	SettledAt  *time.Time `json:"settled_at,omitempty"`

	Fixture *Fixture `json:"fixture,omitempty"`
}

// Settled reports whether the prediction's fixture has been scored.
func (p *Prediction) Settled() bool {
	return p.SettledAt != nil
}
