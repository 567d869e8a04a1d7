package gamification

import (
	"math"

	"github.com/Dosada05/prediction-league/models"
)

type BadgeID string

const (
	BadgeSharpshooter    BadgeID = "sharpshooter"
	BadgeUnderdogCaller  BadgeID = "underdog_caller"
	BadgeStreakMaster    BadgeID = "streak_master"
	BadgeGroupChampion   BadgeID = "group_champion"
	BadgeConsistencyKing BadgeID = "consistency_king"
	BadgeEarlyBird       BadgeID = "early_bird"
)

type BadgeSpec struct {
	ID   BadgeID
	Name string
}

// Catalog is the fixed badge set, in the order responses list them.
var Catalog = []BadgeSpec{
	{ID: BadgeSharpshooter, Name: "Sharpshooter"},
	{ID: BadgeUnderdogCaller, Name: "Underdog Caller"},
	{ID: BadgeStreakMaster, Name: "Streak Master"},
	{ID: BadgeGroupChampion, Name: "Group Champion"},
	{ID: BadgeConsistencyKing, Name: "Consistency King"},
	{ID: BadgeEarlyBird, Name: "Early Bird"},
}

type BadgeInputs struct {
	ExactScores   int
	UnderdogWins  int
	MaxStreak     int
	GroupChampion bool
	Accuracy      int
	SettledCount  int
	EarlyCount    int
}

// EvaluateBadges produces one result per catalog entry, earned or not,
// always in catalog order.
func (cfg Config) EvaluateBadges(in BadgeInputs) []models.BadgeResult {
	results := make([]models.BadgeResult, 0, len(Catalog))
	for _, spec := range Catalog {
		earned, progress := cfg.evaluateBadge(spec.ID, in)
		results = append(results, models.BadgeResult{
			ID:       string(spec.ID),
			Name:     spec.Name,
			Earned:   earned,
			Progress: progress,
		})
	}
	return results
}

func (cfg Config) evaluateBadge(id BadgeID, in BadgeInputs) (bool, int) {
	t := cfg.Badges
	switch id {
	case BadgeSharpshooter:
		return in.ExactScores >= t.SharpshooterExacts, thresholdProgress(in.ExactScores, t.SharpshooterExacts)
	case BadgeUnderdogCaller:
		return in.UnderdogWins >= t.UnderdogWins, thresholdProgress(in.UnderdogWins, t.UnderdogWins)
	case BadgeStreakMaster:
		return in.MaxStreak >= t.StreakMasterLength, thresholdProgress(in.MaxStreak, t.StreakMasterLength)
	case BadgeGroupChampion:
		if in.GroupChampion {
			return true, 100
		}
		return false, 0
	case BadgeConsistencyKing:
		if in.SettledCount < t.ConsistencySettledMin {
			return false, 0
		}
		earned := in.Accuracy >= t.ConsistencyAccuracyMin
		return earned, thresholdProgress(in.Accuracy, t.ConsistencyAccuracyMin)
	case BadgeEarlyBird:
		return in.EarlyCount >= t.EarlyBirdCount, thresholdProgress(in.EarlyCount, t.EarlyBirdCount)
	}
	return false, 0
}

func thresholdProgress(value, threshold int) int {
	if threshold <= 0 {
		return 100
	}
	progress := math.Round(float64(value) / float64(threshold) * 100)
	return int(math.Min(progress, 100))
}
