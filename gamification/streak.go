package gamification

import "github.com/Dosada05/prediction-league/models"

// CurrentStreak counts the run of scoring settlements at the head of a
// newest-first point sequence. The first miss ends the run.
func CurrentStreak(pointsNewestFirst []int) int {
	streak := 0
	for _, pts := range pointsNewestFirst {
		if pts <= 0 {
			break
		}
		streak++
	}
	return streak
}

// ComputeMaxStreak returns the longest run of consecutive scoring settlements
// in an oldest-first point sequence.
func ComputeMaxStreak(pointsOldestFirst []int) int {
	best, run := 0, 0
	for _, pts := range pointsOldestFirst {
		if pts > 0 {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	return best
}

// LastResults maps the most recent settlements to hit/miss markers,
// newest first, capped at limit.
func LastResults(pointsNewestFirst []int, limit int) []models.PredictionResult {
	if len(pointsNewestFirst) > limit {
		pointsNewestFirst = pointsNewestFirst[:limit]
	}
	results := make([]models.PredictionResult, 0, len(pointsNewestFirst))
	for _, pts := range pointsNewestFirst {
		if pts > 0 {
			results = append(results, models.ResultHit)
		} else {
			results = append(results, models.ResultMiss)
		}
	}
	return results
}
