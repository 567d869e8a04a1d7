package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Dosada05/prediction-league/gamification"
	"github.com/Dosada05/prediction-league/models"
	"github.com/Dosada05/prediction-league/repositories"
	"golang.org/x/sync/errgroup"
)

// lastResultsLimit caps the hit/miss history returned with the streak.
const lastResultsLimit = 10

type GamificationService interface {
	// GetGamificationData assembles the full per-user performance payload.
	// A user with no predictions gets a structurally complete default
	// result, never an error.
	GetGamificationData(ctx context.Context, userID int) (*models.GamificationResult, error)
	GetBadges(ctx context.Context, userID int) ([]models.BadgeResult, error)
	GetUserStats(ctx context.Context, userID int) (*models.UserStats, error)
}

type gamificationService struct {
	statsRepo repositories.StatsRepository
	cfg       gamification.Config
	now       func() time.Time
}

func NewGamificationService(statsRepo repositories.StatsRepository, cfg gamification.Config) GamificationService {
	return &gamificationService{
		statsRepo: statsRepo,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *gamificationService) GetGamificationData(ctx context.Context, userID int) (*models.GamificationResult, error) {
	currentSeason, previousSeason := gamification.Seasons(s.now())

	var (
		overall       *models.OverallStats
		newestPoints  []int
		oldestPoints  []int
		earlyCount    int
		bestRank      *int
		currentStats  *models.SeasonStats
		previousStats *models.SeasonStats
	)

	// The aggregate reads are independent, so they fan out concurrently and
	// join before composition. Any failure cancels the rest; a partial
	// result is never assembled.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		overall, err = s.statsRepo.GetOverallStats(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		newestPoints, err = s.statsRepo.GetSettledPointsNewestFirst(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		oldestPoints, err = s.statsRepo.GetSettledPointsOldestFirst(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		earlyCount, err = s.statsRepo.GetEarlyBirdCount(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		bestRank, err = s.statsRepo.GetBestRank(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		currentStats, err = s.statsRepo.GetSeasonStats(gctx, userID, currentSeason.Start, currentSeason.End)
		return err
	})
	g.Go(func() (err error) {
		previousStats, err = s.statsRepo.GetSeasonStats(gctx, userID, previousSeason.Start, previousSeason.End)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load performance aggregates for user %d: %w", userID, err)
	}

	// A user who never predicted flows through the same composition with
	// zeroed aggregates, which keeps the default result consistent with the
	// scoring formulas.
	if overall == nil {
		overall = &models.OverallStats{}
	}

	accuracy := gamification.Accuracy(overall.ExactScoreCount, overall.CorrectOutcomeCount, overall.SettledCount)
	exactRate := gamification.ExactScoreRate(overall.ExactScoreCount, overall.SettledCount)
	currentStreak := gamification.CurrentStreak(newestPoints)
	bestStreak := gamification.ComputeMaxStreak(oldestPoints)

	powerScore := s.cfg.PowerScore(gamification.PowerScoreInputs{
		Accuracy:       accuracy,
		ExactScoreRate: exactRate,
		SettledCount:   overall.SettledCount,
		CurrentStreak:  currentStreak,
		BestRank:       bestRank,
	})
	tier, tierProgress := s.cfg.TierFor(powerScore)

	radar := s.cfg.Radar(gamification.RadarInputs{
		Accuracy:       accuracy,
		ExactScoreRate: exactRate,
		SettledCount:   overall.SettledCount,
		EarlyBirdCount: earlyCount,
	})

	return &models.GamificationResult{
		PowerScore:   powerScore,
		RankTier:     tier,
		RankProgress: tierProgress,
		Skills:       radar,
		Streak: models.StreakInfo{
			Current:     currentStreak,
			Best:        bestStreak,
			LastResults: gamification.LastResults(newestPoints, lastResultsLimit),
		},
		SeasonComparison: models.SeasonComparison{
			CurrentSeason:  seasonSummary(currentSeason.Label, currentStats),
			PreviousSeason: optionalSeasonSummary(previousSeason.Label, previousStats),
		},
	}, nil
}

func (s *gamificationService) GetBadges(ctx context.Context, userID int) ([]models.BadgeResult, error) {
	var (
		overall      *models.OverallStats
		oldestPoints []int
		earlyCount   int
		bestRank     *int
		underdogWins int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		overall, err = s.statsRepo.GetOverallStats(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		oldestPoints, err = s.statsRepo.GetSettledPointsOldestFirst(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		earlyCount, err = s.statsRepo.GetEarlyBirdCount(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		bestRank, err = s.statsRepo.GetBestRank(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		underdogWins, err = s.statsRepo.GetUnderdogWinCount(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load badge counters for user %d: %w", userID, err)
	}

	if overall == nil {
		overall = &models.OverallStats{}
	}

	return s.cfg.EvaluateBadges(gamification.BadgeInputs{
		ExactScores:   overall.ExactScoreCount,
		UnderdogWins:  underdogWins,
		MaxStreak:     gamification.ComputeMaxStreak(oldestPoints),
		GroupChampion: bestRank != nil && *bestRank == 1,
		Accuracy:      gamification.Accuracy(overall.ExactScoreCount, overall.CorrectOutcomeCount, overall.SettledCount),
		SettledCount:  overall.SettledCount,
		EarlyCount:    earlyCount,
	}), nil
}

func (s *gamificationService) GetUserStats(ctx context.Context, userID int) (*models.UserStats, error) {
	var (
		overall    *models.OverallStats
		percentile int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		overall, err = s.statsRepo.GetOverallStats(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		percentile, err = s.statsRepo.GetPointsPercentile(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load stats for user %d: %w", userID, err)
	}

	if overall == nil {
		overall = &models.OverallStats{}
	}
	return &models.UserStats{
		Overall:    *overall,
		Percentile: percentile,
	}, nil
}

func seasonSummary(label string, stats *models.SeasonStats) models.SeasonSummary {
	summary := models.SeasonSummary{Name: label}
	if stats == nil {
		return summary
	}
	summary.Accuracy = gamification.Accuracy(stats.ExactScoreCount, stats.CorrectOutcomeCount, stats.SettledCount)
	summary.ExactScores = stats.ExactScoreCount
	summary.TotalPredictions = stats.SettledCount
	summary.Points = stats.Points
	return summary
}

// optionalSeasonSummary keeps an empty window as nil so the response reports
// the season as absent rather than zeroed.
func optionalSeasonSummary(label string, stats *models.SeasonStats) *models.SeasonSummary {
	if stats == nil {
		return nil
	}
	summary := seasonSummary(label, stats)
	return &summary
}
