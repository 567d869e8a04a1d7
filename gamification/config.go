package gamification

import "github.com/Dosada05/prediction-league/models"

// Weights blend the five power score components. They must sum to 1.
type Weights struct {
	Accuracy   float64
	ExactScore float64
	Volume     float64
	Streak     float64
	Rank       float64
}

// TierBand maps a rank tier to the lowest power score that reaches it.
// Bands are ordered by ascending floor.
type TierBand struct {
	Tier  models.RankTier
	Floor int
}

type BadgeThresholds struct {
	SharpshooterExacts     int
	UnderdogWins           int
	StreakMasterLength     int
	EarlyBirdCount         int
	ConsistencySettledMin  int
	ConsistencyAccuracyMin int
}

// Config carries every weight and threshold the engine uses. Instances are
// treated as immutable; services receive one at construction time.
type Config struct {
	Weights Weights

	// VolumeSaturation is the settled-prediction count at which the volume
	// component of the power score maxes out.
	VolumeSaturation int
	// StreakSaturation is the current-streak length at which the streak
	// component maxes out.
	StreakSaturation int
	// RankStep is the power score penalty per rank position below first.
	RankStep int
	// RadarVolumeSaturation is the settled count for a full radar volume axis.
	RadarVolumeSaturation int

	Tiers  []TierBand
	Badges BadgeThresholds
}

func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Accuracy:   0.35,
			ExactScore: 0.25,
			Volume:     0.15,
			Streak:     0.10,
			Rank:       0.15,
		},
		VolumeSaturation:      100,
		StreakSaturation:      10,
		RankStep:              20,
		RadarVolumeSaturation: 200,
		Tiers: []TierBand{
			{Tier: models.TierBronze, Floor: 0},
			{Tier: models.TierSilver, Floor: 30},
			{Tier: models.TierGold, Floor: 50},
			{Tier: models.TierPlatinum, Floor: 70},
			{Tier: models.TierDiamond, Floor: 85},
		},
		Badges: BadgeThresholds{
			SharpshooterExacts:     5,
			UnderdogWins:           3,
			StreakMasterLength:     5,
			EarlyBirdCount:         10,
			ConsistencySettledMin:  20,
			ConsistencyAccuracyMin: 70,
		},
	}
}
