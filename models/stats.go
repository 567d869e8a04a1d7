package models

// OverallStats is a per-user aggregate across all groups with a joined
// membership. Derived per request, never stored.
type OverallStats struct {
	TotalPoints         int `json:"total_points"`
	PredictionCount     int `json:"prediction_count"`
	SettledCount        int `json:"settled_count"`
	ExactScoreCount     int `json:"exact_score_count"`
	CorrectOutcomeCount int `json:"correct_outcome_count"`
}

// SeasonStats holds settled-prediction aggregates inside one season window.
type SeasonStats struct {
	SettledCount        int `json:"settled_count"`
	ExactScoreCount     int `json:"exact_score_count"`
	CorrectOutcomeCount int `json:"correct_outcome_count"`
	Points              int `json:"points"`
}

type LeaderboardEntry struct {
	UserID      int    `json:"user_id"`
	Nickname    string `json:"nickname"`
	Points      int    `json:"points"`
	ExactScores int    `json:"exact_scores"`
	Rank        int    `json:"rank"`
}

// UserStats is the public stats projection served alongside the profile.
type UserStats struct {
	Overall    OverallStats `json:"overall"`
	Percentile int          `json:"percentile"`
}

type DashboardStats struct {
	UsersTotal        int `json:"users_total"`
	GroupsTotal       int `json:"groups_total"`
	PredictionsTotal  int `json:"predictions_total"`
	SettledTotal      int `json:"settled_total"`
	FixturesScheduled int `json:"fixtures_scheduled"`
}
