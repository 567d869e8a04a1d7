package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Dosada05/prediction-league/models"
	"github.com/lib/pq"
)

var (
	ErrPredictionNotFound = errors.New("prediction not found")
	ErrPredictionConflict = errors.New("prediction already placed for this fixture")
)

type PredictionRepository interface {
	Create(ctx context.Context, prediction *models.Prediction) error
	UpdatePick(ctx context.Context, id int, homeGoals, awayGoals int, placedAt time.Time) error
	GetByID(ctx context.Context, id int) (*models.Prediction, error)
	GetForFixture(ctx context.Context, userID, groupID, fixtureID int) (*models.Prediction, error)
	ListByFixture(ctx context.Context, exec SQLExecutor, fixtureID int) ([]*models.Prediction, error)
	// Settle writes the scoring outcome of one prediction.
	Settle(ctx context.Context, exec SQLExecutor, id int, points int, wonExact, wonOutcome bool, settledAt time.Time) error
	Count(ctx context.Context) (int, error)
	CountSettled(ctx context.Context) (int, error)
}

type postgresPredictionRepository struct {
	db *sql.DB
}

func NewPostgresPredictionRepository(db *sql.DB) PredictionRepository {
	return &postgresPredictionRepository{db: db}
}

func (r *postgresPredictionRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPredictionRepository) Create(ctx context.Context, prediction *models.Prediction) error {
	query := `
		INSERT INTO predictions (user_id, group_id, fixture_id, home_goals, away_goals, placed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	if prediction.PlacedAt.IsZero() {
		prediction.PlacedAt = time.Now()
	}
	err := r.db.QueryRowContext(ctx, query,
		prediction.UserID, prediction.GroupID, prediction.FixtureID,
		prediction.HomeGoals, prediction.AwayGoals, prediction.PlacedAt,
	).Scan(&prediction.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrPredictionConflict
		}
		return err
	}
	return nil
}

func (r *postgresPredictionRepository) UpdatePick(ctx context.Context, id int, homeGoals, awayGoals int, placedAt time.Time) error {
	query := `
		UPDATE predictions
		SET home_goals = $1, away_goals = $2, placed_at = $3
		WHERE id = $4 AND settled_at IS NULL`
	result, err := r.db.ExecContext(ctx, query, homeGoals, awayGoals, placedAt, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPredictionNotFound)
}

func (r *postgresPredictionRepository) GetByID(ctx context.Context, id int) (*models.Prediction, error) {
	query := `
		SELECT id, user_id, group_id, fixture_id, home_goals, away_goals,
		       points, won_exact, won_outcome, placed_at, settled_at
		FROM predictions
		WHERE id = $1`
	return r.scanPrediction(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPredictionRepository) GetForFixture(ctx context.Context, userID, groupID, fixtureID int) (*models.Prediction, error) {
	query := `
		SELECT id, user_id, group_id, fixture_id, home_goals, away_goals,
		       points, won_exact, won_outcome, placed_at, settled_at
		FROM predictions
		WHERE user_id = $1 AND group_id = $2 AND fixture_id = $3`
	return r.scanPrediction(r.db.QueryRowContext(ctx, query, userID, groupID, fixtureID))
}

func (r *postgresPredictionRepository) scanPrediction(row *sql.Row) (*models.Prediction, error) {
	var p models.Prediction
	err := row.Scan(
		&p.ID, &p.UserID, &p.GroupID, &p.FixtureID, &p.HomeGoals, &p.AwayGoals,
		&p.Points, &p.WonExact, &p.WonOutcome, &p.PlacedAt, &p.SettledAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPredictionNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresPredictionRepository) ListByFixture(ctx context.Context, exec SQLExecutor, fixtureID int) ([]*models.Prediction, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, user_id, group_id, fixture_id, home_goals, away_goals,
		       points, won_exact, won_outcome, placed_at, settled_at
		FROM predictions
		WHERE fixture_id = $1 AND settled_at IS NULL`

	rows, err := executor.QueryContext(ctx, query, fixtureID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	predictions := make([]*models.Prediction, 0)
	for rows.Next() {
		var p models.Prediction
		if scanErr := rows.Scan(
			&p.ID, &p.UserID, &p.GroupID, &p.FixtureID, &p.HomeGoals, &p.AwayGoals,
			&p.Points, &p.WonExact, &p.WonOutcome, &p.PlacedAt, &p.SettledAt,
		); scanErr != nil {
			return nil, scanErr
		}
		predictions = append(predictions, &p)
	}
	return predictions, rows.Err()
}

func (r *postgresPredictionRepository) Settle(ctx context.Context, exec SQLExecutor, id int, points int, wonExact, wonOutcome bool, settledAt time.Time) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE predictions
		SET points = $1, won_exact = $2, won_outcome = $3, settled_at = $4
		WHERE id = $5 AND settled_at IS NULL`
	result, err := executor.ExecContext(ctx, query, points, wonExact, wonOutcome, settledAt, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPredictionNotFound)
}

func (r *postgresPredictionRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM predictions`).Scan(&count)
	return count, err
}

func (r *postgresPredictionRepository) CountSettled(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM predictions WHERE settled_at IS NOT NULL`).Scan(&count)
	return count, err
}
