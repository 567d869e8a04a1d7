package models

type RankTier string

const (
	TierBronze   RankTier = "bronze"
	TierSilver   RankTier = "silver"
	TierGold     RankTier = "gold"
	TierPlatinum RankTier = "platinum"
	TierDiamond  RankTier = "diamond"
)

type PredictionResult string

const (
	ResultHit  PredictionResult = "hit"
	ResultMiss PredictionResult = "miss"
)

type SkillRadar struct {
	Accuracy    int `json:"accuracy"`
	Consistency int `json:"consistency"`
	Volume      int `json:"volume"`
	ExactScore  int `json:"exactScore"`
	Timing      int `json:"timing"`
}

type StreakInfo struct {
	Current     int                `json:"current"`
	Best        int                `json:"best"`
	LastResults []PredictionResult `json:"lastResults"`
}

type BadgeResult struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Earned   bool   `json:"earned"`
	Progress int    `json:"progress"`
}

type SeasonSummary struct {
	Name             string `json:"name"`
	Accuracy         int    `json:"accuracy"`
	ExactScores      int    `json:"exactScores"`
	TotalPredictions int    `json:"totalPredictions"`
	Points           int    `json:"points"`
}

type SeasonComparison struct {
	CurrentSeason  SeasonSummary  `json:"currentSeason"`
	PreviousSeason *SeasonSummary `json:"previousSeason"`
}

// GamificationResult is the full payload returned for a single user. Every
// field is recomputed from fresh reads on each request.
type GamificationResult struct {
	PowerScore       int              `json:"powerScore"`
	RankTier         RankTier         `json:"rankTier"`
	RankProgress     int              `json:"rankProgress"`
	Skills           SkillRadar       `json:"skills"`
	Streak           StreakInfo       `json:"streak"`
	SeasonComparison SeasonComparison `json:"seasonComparison"`
}
