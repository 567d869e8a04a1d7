package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/prediction-league/models"
)

var ErrFixtureNotFound = errors.New("fixture not found")

type FixtureRepository interface {
	Create(ctx context.Context, fixture *models.Fixture) error
	GetByID(ctx context.Context, id int) (*models.Fixture, error)
	ListUpcoming(ctx context.Context, limit int) ([]*models.Fixture, error)
	// ListFinishedUnsettled returns fixtures whose result has arrived but
	// whose predictions have not been scored yet.
	ListFinishedUnsettled(ctx context.Context) ([]*models.Fixture, error)
	RecordResult(ctx context.Context, id int, homeScore, awayScore int) error
	MarkSettled(ctx context.Context, exec SQLExecutor, id int) error
	CountScheduled(ctx context.Context) (int, error)
}

type postgresFixtureRepository struct {
	db *sql.DB
}

func NewPostgresFixtureRepository(db *sql.DB) FixtureRepository {
	return &postgresFixtureRepository{db: db}
}

func (r *postgresFixtureRepository) Create(ctx context.Context, fixture *models.Fixture) error {
	query := `
		INSERT INTO fixtures (home_team, away_team, starts_at, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	if fixture.Status == "" {
		fixture.Status = models.FixtureScheduled
	}
	return r.db.QueryRowContext(ctx, query,
		fixture.HomeTeam, fixture.AwayTeam, fixture.StartsAt, fixture.Status,
	).Scan(&fixture.ID, &fixture.CreatedAt)
}

func (r *postgresFixtureRepository) GetByID(ctx context.Context, id int) (*models.Fixture, error) {
	query := `
		SELECT id, home_team, away_team, starts_at, status, home_score, away_score, created_at
		FROM fixtures
		WHERE id = $1`
	return r.scanFixture(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresFixtureRepository) scanFixture(row *sql.Row) (*models.Fixture, error) {
	var fixture models.Fixture
	err := row.Scan(
		&fixture.ID, &fixture.HomeTeam, &fixture.AwayTeam, &fixture.StartsAt,
		&fixture.Status, &fixture.HomeScore, &fixture.AwayScore, &fixture.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFixtureNotFound
		}
		return nil, err
	}
	return &fixture, nil
}

func (r *postgresFixtureRepository) ListUpcoming(ctx context.Context, limit int) ([]*models.Fixture, error) {
	query := `
		SELECT id, home_team, away_team, starts_at, status, home_score, away_score, created_at
		FROM fixtures
		WHERE status = 'scheduled' AND starts_at > NOW()
		ORDER BY starts_at ASC
		LIMIT $1`
	return r.listFixtures(ctx, query, limit)
}

func (r *postgresFixtureRepository) ListFinishedUnsettled(ctx context.Context) ([]*models.Fixture, error) {
	query := `
		SELECT id, home_team, away_team, starts_at, status, home_score, away_score, created_at
		FROM fixtures
		WHERE status = 'finished'
		ORDER BY starts_at ASC`
	return r.listFixtures(ctx, query)
}

func (r *postgresFixtureRepository) listFixtures(ctx context.Context, query string, args ...interface{}) ([]*models.Fixture, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fixtures := make([]*models.Fixture, 0)
	for rows.Next() {
		var fixture models.Fixture
		if scanErr := rows.Scan(
			&fixture.ID, &fixture.HomeTeam, &fixture.AwayTeam, &fixture.StartsAt,
			&fixture.Status, &fixture.HomeScore, &fixture.AwayScore, &fixture.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		fixtures = append(fixtures, &fixture)
	}
	return fixtures, rows.Err()
}

func (r *postgresFixtureRepository) RecordResult(ctx context.Context, id int, homeScore, awayScore int) error {
	query := `
		UPDATE fixtures
		SET home_score = $1, away_score = $2, status = 'finished'
		WHERE id = $3 AND status = 'scheduled'`
	result, err := r.db.ExecContext(ctx, query, homeScore, awayScore, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrFixtureNotFound)
}

func (r *postgresFixtureRepository) MarkSettled(ctx context.Context, exec SQLExecutor, id int) error {
	executor := SQLExecutor(r.db)
	if exec != nil {
		executor = exec
	}
	result, err := executor.ExecContext(ctx, `UPDATE fixtures SET status = 'settled' WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrFixtureNotFound)
}

func (r *postgresFixtureRepository) CountScheduled(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM fixtures WHERE status = 'scheduled'`).Scan(&count)
	return count, err
}
