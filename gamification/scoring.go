package gamification

import (
	"math"

	"github.com/Dosada05/prediction-league/models"
)

// placeholderVarianceScore stands in for a real variance computation over the
// user's point spread. The upstream data for it is not wired yet, so the
// consistency axis is derived from this constant. Known approximation.
const placeholderVarianceScore = 30

// Accuracy returns the percentage of settled predictions that hit either the
// exact score or the outcome, rounded to the nearest integer. Zero when
// nothing has settled yet.
func Accuracy(exactCount, outcomeCount, settledCount int) int {
	if settledCount == 0 {
		return 0
	}
	return roundHalfUp(100 * float64(exactCount+outcomeCount) / float64(settledCount))
}

// ExactScoreRate is the fraction of settled predictions with an exact hit.
func ExactScoreRate(exactCount, settledCount int) float64 {
	if settledCount == 0 {
		return 0
	}
	return float64(exactCount) / float64(settledCount)
}

// RankScore maps the user's best group rank to 0-100: first place scores the
// full 100, each position below subtracts cfg.RankStep, floored at zero.
// An unknown rank contributes nothing.
func (cfg Config) RankScore(bestRank *int) float64 {
	if bestRank == nil {
		return 0
	}
	score := 100 - float64(*bestRank-1)*float64(cfg.RankStep)
	return math.Max(score, 0)
}

type PowerScoreInputs struct {
	Accuracy       int
	ExactScoreRate float64
	SettledCount   int
	CurrentStreak  int
	BestRank       *int
}

// PowerScore blends the weighted components into a single 0-100 integer.
// Rounding is half-up so a .5 boundary promotes rather than demotes a tier.
func (cfg Config) PowerScore(in PowerScoreInputs) int {
	accuracy := math.Min(float64(in.Accuracy), 100)
	exact := math.Min(in.ExactScoreRate*100, 100)
	volume := math.Min(float64(in.SettledCount)/float64(cfg.VolumeSaturation)*100, 100)
	streak := math.Min(float64(in.CurrentStreak)/float64(cfg.StreakSaturation)*100, 100)
	rank := cfg.RankScore(in.BestRank)

	total := accuracy*cfg.Weights.Accuracy +
		exact*cfg.Weights.ExactScore +
		volume*cfg.Weights.Volume +
		streak*cfg.Weights.Streak +
		rank*cfg.Weights.Rank

	return roundHalfUp(total)
}

// TierFor resolves a power score to its tier band and the progress through
// that band. The top band always reports full progress.
func (cfg Config) TierFor(powerScore int) (models.RankTier, int) {
	for i := len(cfg.Tiers) - 1; i >= 0; i-- {
		band := cfg.Tiers[i]
		if powerScore < band.Floor {
			continue
		}
		if i == len(cfg.Tiers)-1 {
			return band.Tier, 100
		}
		next := cfg.Tiers[i+1]
		span := next.Floor - band.Floor
		progress := roundHalfUp(float64(powerScore-band.Floor) / float64(span) * 100)
		return band.Tier, progress
	}
	// Floors start at zero, so this is unreachable for valid scores.
	return cfg.Tiers[0].Tier, 0
}

type RadarInputs struct {
	Accuracy       int
	ExactScoreRate float64
	SettledCount   int
	EarlyBirdCount int
}

// Radar computes the five independently normalized 0-100 skill axes.
func (cfg Config) Radar(in RadarInputs) models.SkillRadar {
	timing := 0
	if in.SettledCount > 0 {
		timing = clamp100(roundHalfUp(float64(in.EarlyBirdCount) / float64(in.SettledCount) * 100))
	}
	volume := clamp100(roundHalfUp(float64(in.SettledCount) / float64(cfg.RadarVolumeSaturation) * 100))

	return models.SkillRadar{
		Accuracy:    clamp100(in.Accuracy),
		Consistency: max(100-placeholderVarianceScore, 0),
		Volume:      volume,
		ExactScore:  clamp100(roundHalfUp(in.ExactScoreRate * 100)),
		Timing:      timing,
	}
}

func roundHalfUp(v float64) int {
	return int(math.Round(v))
}

func clamp100(v int) int {
	if v > 100 {
		return 100
	}
	if v < 0 {
		return 0
	}
	return v
}
