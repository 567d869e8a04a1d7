package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/prediction-league/live"
	"github.com/Dosada05/prediction-league/models"
	"github.com/Dosada05/prediction-league/repositories"
)

// Settlement point values: an exact scoreline beats a correct outcome.
const (
	exactScorePoints     = 3
	correctOutcomePoints = 1
)

type PlacePredictionInput struct {
	GroupID   int `json:"group_id" validate:"required,gt=0"`
	FixtureID int `json:"fixture_id" validate:"required,gt=0"`
	HomeGoals int `json:"home_goals" validate:"gte=0,lte=99"`
	AwayGoals int `json:"away_goals" validate:"gte=0,lte=99"`
}

type CreateFixtureInput struct {
	HomeTeam string    `json:"home_team" validate:"required,min=2,max=80"`
	AwayTeam string    `json:"away_team" validate:"required,min=2,max=80"`
	StartsAt time.Time `json:"starts_at" validate:"required"`
}

type RecordResultInput struct {
	HomeScore int `json:"home_score" validate:"gte=0"`
	AwayScore int `json:"away_score" validate:"gte=0"`
}

type PredictionService interface {
	PlacePrediction(ctx context.Context, userID int, input PlacePredictionInput) (*models.Prediction, error)
	GetOwnPrediction(ctx context.Context, userID, groupID, fixtureID int) (*models.Prediction, error)

	CreateFixture(ctx context.Context, input CreateFixtureInput) (*models.Fixture, error)
	ListUpcomingFixtures(ctx context.Context, limit int) ([]*models.Fixture, error)
	RecordFixtureResult(ctx context.Context, fixtureID int, input RecordResultInput) error

	// SettleFixture scores every open prediction on a finished fixture in a
	// single transaction and pushes refreshed leaderboards to the live hub.
	SettleFixture(ctx context.Context, fixtureID int) error
	// SettleDueFixtures is the scheduler entry point.
	SettleDueFixtures(ctx context.Context) error
}

type predictionService struct {
	db             *sql.DB
	predictionRepo repositories.PredictionRepository
	fixtureRepo    repositories.FixtureRepository
	groupRepo      repositories.GroupRepository
	statsRepo      repositories.StatsRepository
	hub            *live.Hub
	logger         *slog.Logger
}

func NewPredictionService(
	db *sql.DB,
	predictionRepo repositories.PredictionRepository,
	fixtureRepo repositories.FixtureRepository,
	groupRepo repositories.GroupRepository,
	statsRepo repositories.StatsRepository,
	hub *live.Hub,
	logger *slog.Logger,
) PredictionService {
	return &predictionService{
		db:             db,
		predictionRepo: predictionRepo,
		fixtureRepo:    fixtureRepo,
		groupRepo:      groupRepo,
		statsRepo:      statsRepo,
		hub:            hub,
		logger:         logger,
	}
}

func (s *predictionService) PlacePrediction(ctx context.Context, userID int, input PlacePredictionInput) (*models.Prediction, error) {
	if input.HomeGoals < 0 || input.AwayGoals < 0 {
		return nil, ErrInvalidPredictedScore
	}

	member, err := s.groupRepo.GetMember(ctx, input.GroupID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrMembershipNotFound) {
			return nil, ErrNotGroupMember
		}
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if member.Status != models.MembershipJoined {
		return nil, ErrNotGroupMember
	}

	fixture, err := s.fixtureRepo.GetByID(ctx, input.FixtureID)
	if err != nil {
		if errors.Is(err, repositories.ErrFixtureNotFound) {
			return nil, ErrFixtureNotFound
		}
		return nil, fmt.Errorf("failed to get fixture %d: %w", input.FixtureID, err)
	}
	// Picks lock at kickoff.
	if fixture.Status != models.FixtureScheduled || !time.Now().Before(fixture.StartsAt) {
		return nil, ErrPredictionClosed
	}

	existing, err := s.predictionRepo.GetForFixture(ctx, userID, input.GroupID, input.FixtureID)
	switch {
	case err == nil:
		if existing.Settled() {
			return nil, ErrPredictionSettled
		}
		now := time.Now()
		if err := s.predictionRepo.UpdatePick(ctx, existing.ID, input.HomeGoals, input.AwayGoals, now); err != nil {
			return nil, fmt.Errorf("failed to update prediction %d: %w", existing.ID, err)
		}
		existing.HomeGoals = input.HomeGoals
		existing.AwayGoals = input.AwayGoals
		existing.PlacedAt = now
		return existing, nil
	case errors.Is(err, repositories.ErrPredictionNotFound):
		prediction := &models.Prediction{
			UserID:    userID,
			GroupID:   input.GroupID,
			FixtureID: input.FixtureID,
			HomeGoals: input.HomeGoals,
			AwayGoals: input.AwayGoals,
			PlacedAt:  time.Now(),
		}
		if err := s.predictionRepo.Create(ctx, prediction); err != nil {
			if errors.Is(err, repositories.ErrPredictionConflict) {
				return nil, ErrPredictionConflict
			}
			return nil, fmt.Errorf("failed to place prediction: %w", err)
		}
		return prediction, nil
	default:
		return nil, fmt.Errorf("failed to look up prediction: %w", err)
	}
}

func (s *predictionService) GetOwnPrediction(ctx context.Context, userID, groupID, fixtureID int) (*models.Prediction, error) {
	prediction, err := s.predictionRepo.GetForFixture(ctx, userID, groupID, fixtureID)
	if err != nil {
		if errors.Is(err, repositories.ErrPredictionNotFound) {
			return nil, ErrPredictionNotFound
		}
		return nil, fmt.Errorf("failed to get prediction: %w", err)
	}
	return prediction, nil
}

func (s *predictionService) CreateFixture(ctx context.Context, input CreateFixtureInput) (*models.Fixture, error) {
	if input.HomeTeam == "" || input.AwayTeam == "" {
		return nil, ErrValidationFailed
	}
	fixture := &models.Fixture{
		HomeTeam: input.HomeTeam,
		AwayTeam: input.AwayTeam,
		StartsAt: input.StartsAt,
		Status:   models.FixtureScheduled,
	}
	if err := s.fixtureRepo.Create(ctx, fixture); err != nil {
		return nil, fmt.Errorf("failed to create fixture: %w", err)
	}
	return fixture, nil
}

func (s *predictionService) ListUpcomingFixtures(ctx context.Context, limit int) ([]*models.Fixture, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	fixtures, err := s.fixtureRepo.ListUpcoming(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming fixtures: %w", err)
	}
	return fixtures, nil
}

func (s *predictionService) RecordFixtureResult(ctx context.Context, fixtureID int, input RecordResultInput) error {
	if input.HomeScore < 0 || input.AwayScore < 0 {
		return ErrInvalidFixtureResult
	}
	err := s.fixtureRepo.RecordResult(ctx, fixtureID, input.HomeScore, input.AwayScore)
	if err != nil {
		if errors.Is(err, repositories.ErrFixtureNotFound) {
			// Either the fixture does not exist or it is past the scheduled
			// state; disambiguate for the caller.
			if _, getErr := s.fixtureRepo.GetByID(ctx, fixtureID); getErr == nil {
				return ErrFixtureAlreadyScored
			}
			return ErrFixtureNotFound
		}
		return fmt.Errorf("failed to record result for fixture %d: %w", fixtureID, err)
	}
	return nil
}

func (s *predictionService) SettleFixture(ctx context.Context, fixtureID int) error {
	fixture, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		if errors.Is(err, repositories.ErrFixtureNotFound) {
			return ErrFixtureNotFound
		}
		return fmt.Errorf("failed to get fixture %d: %w", fixtureID, err)
	}
	if fixture.Status == models.FixtureSettled {
		return ErrFixtureAlreadyScored
	}
	if fixture.Status != models.FixtureFinished || fixture.HomeScore == nil || fixture.AwayScore == nil {
		return ErrFixtureNotFinished
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin settlement transaction: %w", err)
	}
	defer tx.Rollback()

	predictions, err := s.predictionRepo.ListByFixture(ctx, tx, fixtureID)
	if err != nil {
		return fmt.Errorf("failed to list predictions for fixture %d: %w", fixtureID, err)
	}

	settledAt := time.Now()
	groupIDs := make(map[int]bool)
	for _, prediction := range predictions {
		points, wonExact, wonOutcome := scorePrediction(prediction, *fixture.HomeScore, *fixture.AwayScore)
		if err := s.predictionRepo.Settle(ctx, tx, prediction.ID, points, wonExact, wonOutcome, settledAt); err != nil {
			return fmt.Errorf("failed to settle prediction %d: %w", prediction.ID, err)
		}
		groupIDs[prediction.GroupID] = true
	}

	if err := s.fixtureRepo.MarkSettled(ctx, tx, fixtureID); err != nil {
		return fmt.Errorf("failed to mark fixture %d settled: %w", fixtureID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settlement for fixture %d: %w", fixtureID, err)
	}

	s.logger.Info("fixture settled",
		slog.Int("fixture_id", fixtureID),
		slog.Int("predictions", len(predictions)),
		slog.Int("groups", len(groupIDs)))

	s.broadcastLeaderboards(ctx, groupIDs)
	return nil
}

func (s *predictionService) SettleDueFixtures(ctx context.Context) error {
	fixtures, err := s.fixtureRepo.ListFinishedUnsettled(ctx)
	if err != nil {
		return fmt.Errorf("failed to list finished fixtures: %w", err)
	}
	for _, fixture := range fixtures {
		if err := s.SettleFixture(ctx, fixture.ID); err != nil {
			// Keep going; one bad fixture must not block the rest.
			s.logger.Error("failed to settle fixture",
				slog.Int("fixture_id", fixture.ID),
				slog.Any("error", err))
		}
	}
	return nil
}

// broadcastLeaderboards refreshes and pushes the standings of every group
// touched by a settlement. Broadcast failures only affect liveness, so
// errors are logged and dropped.
func (s *predictionService) broadcastLeaderboards(ctx context.Context, groupIDs map[int]bool) {
	if s.hub == nil {
		return
	}
	for groupID := range groupIDs {
		entries, err := s.statsRepo.GetGroupLeaderboard(ctx, groupID)
		if err != nil {
			s.logger.Error("failed to load leaderboard for broadcast",
				slog.Int("group_id", groupID),
				slog.Any("error", err))
			continue
		}
		room := live.GroupRoom(groupID)
		s.hub.BroadcastToRoom(room, live.Message{
			Type:    live.MessageLeaderboardUpdated,
			Payload: entries,
			RoomID:  room,
		})
	}
}

// scorePrediction maps one pick against the final score. The exact and
// outcome flags are disjoint: an exact hit sets only won_exact, so the two
// counters can be summed without overlap.
func scorePrediction(p *models.Prediction, homeScore, awayScore int) (points int, wonExact, wonOutcome bool) {
	if p.HomeGoals == homeScore && p.AwayGoals == awayScore {
		return exactScorePoints, true, false
	}
	if outcomeSign(p.HomeGoals, p.AwayGoals) == outcomeSign(homeScore, awayScore) {
		return correctOutcomePoints, false, true
	}
	return 0, false, false
}

func outcomeSign(home, away int) int {
	switch {
	case home > away:
		return 1
	case home < away:
		return -1
	default:
		return 0
	}
}
