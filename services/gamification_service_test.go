package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dosada05/prediction-league/gamification"
	"github.com/Dosada05/prediction-league/models"
)

type fakeStatsRepo struct {
	overall       *models.OverallStats
	newestPoints  []int
	oldestPoints  []int
	earlyCount    int
	bestRank      *int
	seasonStats   map[string]*models.SeasonStats
	percentile    int
	underdogWins  int
	leaderboard   []*models.LeaderboardEntry
	overallErr    error
	seasonStatErr error
}

func (f *fakeStatsRepo) GetOverallStats(ctx context.Context, userID int) (*models.OverallStats, error) {
	return f.overall, f.overallErr
}

func (f *fakeStatsRepo) GetSettledPointsNewestFirst(ctx context.Context, userID int) ([]int, error) {
	return f.newestPoints, nil
}

func (f *fakeStatsRepo) GetSettledPointsOldestFirst(ctx context.Context, userID int) ([]int, error) {
	return f.oldestPoints, nil
}

func (f *fakeStatsRepo) GetEarlyBirdCount(ctx context.Context, userID int) (int, error) {
	return f.earlyCount, nil
}

func (f *fakeStatsRepo) GetBestRank(ctx context.Context, userID int) (*int, error) {
	return f.bestRank, nil
}

func (f *fakeStatsRepo) GetSeasonStats(ctx context.Context, userID int, from, to time.Time) (*models.SeasonStats, error) {
	if f.seasonStatErr != nil {
		return nil, f.seasonStatErr
	}
	return f.seasonStats[from.Format("2006-01")], nil
}

func (f *fakeStatsRepo) GetPointsPercentile(ctx context.Context, userID int) (int, error) {
	return f.percentile, nil
}

func (f *fakeStatsRepo) GetUnderdogWinCount(ctx context.Context, userID int) (int, error) {
	return f.underdogWins, nil
}

func (f *fakeStatsRepo) GetGroupLeaderboard(ctx context.Context, groupID int) ([]*models.LeaderboardEntry, error) {
	return f.leaderboard, nil
}

func newTestGamificationService(repo *fakeStatsRepo, now time.Time) GamificationService {
	svc := NewGamificationService(repo, gamification.DefaultConfig()).(*gamificationService)
	svc.now = func() time.Time { return now }
	return svc
}

func intPtr(v int) *int { return &v }

func TestGetGamificationData_Composition(t *testing.T) {
	// 10 exact + 20 outcome over 50 settled, streak of 4, best rank 2:
	// power score lands on the 49.5 boundary and rounds up into gold.
	repo := &fakeStatsRepo{
		overall: &models.OverallStats{
			TotalPoints:         50,
			PredictionCount:     60,
			SettledCount:        50,
			ExactScoreCount:     10,
			CorrectOutcomeCount: 20,
		},
		newestPoints: []int{3, 1, 1, 3, 0, 1, 1},
		oldestPoints: []int{1, 2, 0, 3, 4, 5, 0, 1},
		earlyCount:   5,
		bestRank:     intPtr(2),
		seasonStats: map[string]*models.SeasonStats{
			"2024-08": {SettledCount: 30, ExactScoreCount: 6, CorrectOutcomeCount: 12, Points: 24},
		},
	}
	svc := newTestGamificationService(repo, time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC))

	result, err := svc.GetGamificationData(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetGamificationData returned error: %v", err)
	}

	if result.PowerScore != 50 {
		t.Errorf("PowerScore = %d, want 50", result.PowerScore)
	}
	if result.RankTier != models.TierGold {
		t.Errorf("RankTier = %q, want gold", result.RankTier)
	}
	if result.RankProgress != 0 {
		t.Errorf("RankProgress = %d, want 0", result.RankProgress)
	}

	wantSkills := models.SkillRadar{
		Accuracy:    60,
		Consistency: 70,
		Volume:      25,
		ExactScore:  20,
		Timing:      10,
	}
	if result.Skills != wantSkills {
		t.Errorf("Skills = %+v, want %+v", result.Skills, wantSkills)
	}

	if result.Streak.Current != 4 {
		t.Errorf("Streak.Current = %d, want 4", result.Streak.Current)
	}
	if result.Streak.Best != 3 {
		t.Errorf("Streak.Best = %d, want 3", result.Streak.Best)
	}
	wantResults := []models.PredictionResult{
		models.ResultHit, models.ResultHit, models.ResultHit, models.ResultHit,
		models.ResultMiss, models.ResultHit, models.ResultHit,
	}
	if len(result.Streak.LastResults) != len(wantResults) {
		t.Fatalf("LastResults length = %d, want %d", len(result.Streak.LastResults), len(wantResults))
	}
	for i, want := range wantResults {
		if result.Streak.LastResults[i] != want {
			t.Errorf("LastResults[%d] = %q, want %q", i, result.Streak.LastResults[i], want)
		}
	}

	current := result.SeasonComparison.CurrentSeason
	if current.Name != "2024/25" {
		t.Errorf("CurrentSeason.Name = %q, want 2024/25", current.Name)
	}
	if current.Accuracy != 60 || current.ExactScores != 6 || current.TotalPredictions != 30 || current.Points != 24 {
		t.Errorf("CurrentSeason = %+v, want accuracy 60, exact 6, total 30, points 24", current)
	}
	if result.SeasonComparison.PreviousSeason != nil {
		t.Errorf("PreviousSeason = %+v, want nil when the window has no rows", result.SeasonComparison.PreviousSeason)
	}
}

func TestGetGamificationData_NoDataDefault(t *testing.T) {
	repo := &fakeStatsRepo{}
	svc := newTestGamificationService(repo, time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC))

	result, err := svc.GetGamificationData(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetGamificationData returned error for fresh user: %v", err)
	}

	if result.PowerScore != 0 {
		t.Errorf("PowerScore = %d, want 0", result.PowerScore)
	}
	if result.RankTier != models.TierBronze {
		t.Errorf("RankTier = %q, want bronze", result.RankTier)
	}
	if result.RankProgress != 0 {
		t.Errorf("RankProgress = %d, want 0", result.RankProgress)
	}
	// The variance placeholder still applies with zero data.
	if result.Skills.Consistency != 70 {
		t.Errorf("Skills.Consistency = %d, want 70", result.Skills.Consistency)
	}
	if result.Skills.Accuracy != 0 || result.Skills.Volume != 0 || result.Skills.ExactScore != 0 || result.Skills.Timing != 0 {
		t.Errorf("Skills = %+v, want zeroed axes besides consistency", result.Skills)
	}
	if result.Streak.Current != 0 || result.Streak.Best != 0 || len(result.Streak.LastResults) != 0 {
		t.Errorf("Streak = %+v, want empty", result.Streak)
	}
	if result.SeasonComparison.CurrentSeason.Name != "2024/25" {
		t.Errorf("CurrentSeason.Name = %q, want 2024/25", result.SeasonComparison.CurrentSeason.Name)
	}
	if result.SeasonComparison.PreviousSeason != nil {
		t.Errorf("PreviousSeason = %+v, want nil", result.SeasonComparison.PreviousSeason)
	}
}

func TestGetGamificationData_AggregateErrorPropagates(t *testing.T) {
	repoErr := errors.New("connection refused")
	repo := &fakeStatsRepo{overallErr: repoErr}
	svc := newTestGamificationService(repo, time.Now())

	_, err := svc.GetGamificationData(context.Background(), 1)
	if err == nil {
		t.Fatal("expected aggregate failure to propagate, got nil")
	}
	if !errors.Is(err, repoErr) {
		t.Errorf("error = %v, want wrapped %v", err, repoErr)
	}
}

func TestGetBadges_CatalogOrderAndEvaluation(t *testing.T) {
	repo := &fakeStatsRepo{
		overall: &models.OverallStats{
			SettledCount:        25,
			ExactScoreCount:     5,
			CorrectOutcomeCount: 15,
		},
		oldestPoints: []int{1, 1, 0, 3, 3, 1, 1, 1},
		earlyCount:   7,
		bestRank:     intPtr(1),
	}
	svc := newTestGamificationService(repo, time.Now())

	badges, err := svc.GetBadges(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetBadges returned error: %v", err)
	}
	if len(badges) != 6 {
		t.Fatalf("badge count = %d, want 6", len(badges))
	}

	wantIDs := []string{"sharpshooter", "underdog_caller", "streak_master", "group_champion", "consistency_king", "early_bird"}
	for i, want := range wantIDs {
		if badges[i].ID != want {
			t.Errorf("badges[%d].ID = %q, want %q", i, badges[i].ID, want)
		}
	}

	if !badges[0].Earned || badges[0].Progress != 100 {
		t.Errorf("sharpshooter = %+v, want earned with progress 100", badges[0])
	}
	if badges[1].Earned || badges[1].Progress != 0 {
		t.Errorf("underdog_caller = %+v, want locked at 0", badges[1])
	}
	if !badges[3].Earned || badges[3].Progress != 100 {
		t.Errorf("group_champion = %+v, want earned for best rank 1", badges[3])
	}
	if badges[5].Earned || badges[5].Progress != 70 {
		t.Errorf("early_bird = %+v, want progress 70 unearned", badges[5])
	}
}

func TestGetUserStats_DefaultsOverallForFreshUser(t *testing.T) {
	repo := &fakeStatsRepo{percentile: 0}
	svc := newTestGamificationService(repo, time.Now())

	stats, err := svc.GetUserStats(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetUserStats returned error: %v", err)
	}
	if stats.Overall != (models.OverallStats{}) {
		t.Errorf("Overall = %+v, want zero value", stats.Overall)
	}
	if stats.Percentile != 0 {
		t.Errorf("Percentile = %d, want 0", stats.Percentile)
	}
}
