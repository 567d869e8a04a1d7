package repositories

import (
	"context"
	"database/sql"
	"math"
	"time"

	"github.com/Dosada05/prediction-league/models"
)

// underdogWinCount is a permanent stub. Counting underdog wins needs the
// odds-market linkage (pre-match win probability < 30%) which is not wired
// to fixtures yet, so the count is pinned to zero instead of guessing.
const underdogWinCount = 0

// StatsRepository is the read-only aggregate boundary the gamification
// composer fans out over. Every query counts only predictions whose group
// membership is in joined status, and every method returns zero values or
// nil instead of an error when the user simply has no matching rows.
type StatsRepository interface {
	// GetOverallStats returns nil (not an error) when the user has no
	// eligible predictions at all.
	GetOverallStats(ctx context.Context, userID int) (*models.OverallStats, error)
	GetSettledPointsNewestFirst(ctx context.Context, userID int) ([]int, error)
	GetSettledPointsOldestFirst(ctx context.Context, userID int) ([]int, error)
	GetEarlyBirdCount(ctx context.Context, userID int) (int, error)
	// GetBestRank returns the user's best position across all joined groups,
	// or nil when the user ranks nowhere.
	GetBestRank(ctx context.Context, userID int) (*int, error)
	// GetSeasonStats returns nil when no settled predictions fall inside
	// [from, to).
	GetSeasonStats(ctx context.Context, userID int, from, to time.Time) (*models.SeasonStats, error)
	GetPointsPercentile(ctx context.Context, userID int) (int, error)
	GetUnderdogWinCount(ctx context.Context, userID int) (int, error)
	GetGroupLeaderboard(ctx context.Context, groupID int) ([]*models.LeaderboardEntry, error)
}

type postgresStatsRepository struct {
	db *sql.DB
}

func NewPostgresStatsRepository(db *sql.DB) StatsRepository {
	return &postgresStatsRepository{db: db}
}

func (r *postgresStatsRepository) GetOverallStats(ctx context.Context, userID int) (*models.OverallStats, error) {
	query := `
		SELECT
			COALESCE(SUM(p.points), 0),
			COUNT(*),
			COUNT(*) FILTER (WHERE p.settled_at IS NOT NULL),
			COUNT(*) FILTER (WHERE p.won_exact),
			COUNT(*) FILTER (WHERE p.won_outcome)
		FROM predictions p
		JOIN group_members gm ON gm.group_id = p.group_id AND gm.user_id = p.user_id
		WHERE p.user_id = $1 AND gm.status = 'joined'`

	var stats models.OverallStats
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&stats.TotalPoints,
		&stats.PredictionCount,
		&stats.SettledCount,
		&stats.ExactScoreCount,
		&stats.CorrectOutcomeCount,
	)
	if err != nil {
		return nil, err
	}
	if stats.PredictionCount == 0 {
		return nil, nil
	}
	return &stats, nil
}

func (r *postgresStatsRepository) GetSettledPointsNewestFirst(ctx context.Context, userID int) ([]int, error) {
	return r.settledPoints(ctx, userID, "DESC")
}

func (r *postgresStatsRepository) GetSettledPointsOldestFirst(ctx context.Context, userID int) ([]int, error) {
	return r.settledPoints(ctx, userID, "ASC")
}

func (r *postgresStatsRepository) settledPoints(ctx context.Context, userID int, direction string) ([]int, error) {
	query := `
		SELECT p.points
		FROM predictions p
		JOIN group_members gm ON gm.group_id = p.group_id AND gm.user_id = p.user_id
		WHERE p.user_id = $1 AND gm.status = 'joined' AND p.settled_at IS NOT NULL
		ORDER BY p.settled_at ` + direction

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := make([]int, 0)
	for rows.Next() {
		var pts int
		if scanErr := rows.Scan(&pts); scanErr != nil {
			return nil, scanErr
		}
		points = append(points, pts)
	}
	return points, rows.Err()
}

func (r *postgresStatsRepository) GetEarlyBirdCount(ctx context.Context, userID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM predictions p
		JOIN fixtures f ON f.id = p.fixture_id
		JOIN group_members gm ON gm.group_id = p.group_id AND gm.user_id = p.user_id
		WHERE p.user_id = $1 AND gm.status = 'joined'
		  AND p.settled_at IS NOT NULL
		  AND p.placed_at <= f.starts_at - INTERVAL '24 hours'`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&count)
	return count, err
}

func (r *postgresStatsRepository) GetBestRank(ctx context.Context, userID int) (*int, error) {
	// RANK() on purpose: tied totals share a position and the next one skips.
	query := `
		WITH totals AS (
			SELECT gm.group_id, gm.user_id,
			       COALESCE(SUM(p.points), 0) AS points,
			       COUNT(*) FILTER (WHERE p.won_exact) AS exact_wins
			FROM group_members gm
			LEFT JOIN predictions p ON p.group_id = gm.group_id AND p.user_id = gm.user_id
			WHERE gm.status = 'joined'
			GROUP BY gm.group_id, gm.user_id
		), ranked AS (
			SELECT user_id,
			       RANK() OVER (PARTITION BY group_id ORDER BY points DESC, exact_wins DESC) AS position
			FROM totals
		)
		SELECT MIN(position) FROM ranked WHERE user_id = $1`

	var best sql.NullInt64
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&best); err != nil {
		return nil, err
	}
	if !best.Valid {
		return nil, nil
	}
	rank := int(best.Int64)
	return &rank, nil
}

func (r *postgresStatsRepository) GetSeasonStats(ctx context.Context, userID int, from, to time.Time) (*models.SeasonStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE p.won_exact),
			COUNT(*) FILTER (WHERE p.won_outcome),
			COALESCE(SUM(p.points), 0)
		FROM predictions p
		JOIN group_members gm ON gm.group_id = p.group_id AND gm.user_id = p.user_id
		WHERE p.user_id = $1 AND gm.status = 'joined'
		  AND p.settled_at >= $2 AND p.settled_at < $3`

	var stats models.SeasonStats
	err := r.db.QueryRowContext(ctx, query, userID, from, to).Scan(
		&stats.SettledCount,
		&stats.ExactScoreCount,
		&stats.CorrectOutcomeCount,
		&stats.Points,
	)
	if err != nil {
		return nil, err
	}
	if stats.SettledCount == 0 {
		// Nothing settled in the window: the caller reports the season as
		// absent, not as a zeroed summary.
		return nil, nil
	}
	return &stats, nil
}

func (r *postgresStatsRepository) GetPointsPercentile(ctx context.Context, userID int) (int, error) {
	query := `
		WITH totals AS (
			SELECT gm.user_id, COALESCE(SUM(p.points), 0) AS points
			FROM group_members gm
			LEFT JOIN predictions p ON p.group_id = gm.group_id AND p.user_id = gm.user_id
			WHERE gm.status = 'joined'
			GROUP BY gm.user_id
		), me AS (
			SELECT points FROM totals WHERE user_id = $1
		)
		SELECT
			COUNT(*) FILTER (WHERE t.points < me.points),
			COUNT(*)
		FROM totals t CROSS JOIN me
		WHERE t.user_id <> $1`

	var lower, others int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&lower, &others); err != nil {
		return 0, err
	}
	// Empty or zero-variance populations both land on 0.
	if others == 0 {
		return 0, nil
	}
	return int(math.Round(100 * float64(lower) / float64(others))), nil
}

// GetUnderdogWinCount always reports zero, see underdogWinCount.
func (r *postgresStatsRepository) GetUnderdogWinCount(ctx context.Context, userID int) (int, error) {
	return underdogWinCount, nil
}

func (r *postgresStatsRepository) GetGroupLeaderboard(ctx context.Context, groupID int) ([]*models.LeaderboardEntry, error) {
	query := `
		SELECT u.id, u.nickname,
		       COALESCE(SUM(p.points), 0) AS points,
		       COUNT(*) FILTER (WHERE p.won_exact) AS exact_wins,
		       RANK() OVER (
		           ORDER BY COALESCE(SUM(p.points), 0) DESC,
		                    COUNT(*) FILTER (WHERE p.won_exact) DESC
		       ) AS position
		FROM group_members gm
		JOIN users u ON u.id = gm.user_id
		LEFT JOIN predictions p ON p.group_id = gm.group_id AND p.user_id = gm.user_id
		WHERE gm.group_id = $1 AND gm.status = 'joined'
		GROUP BY u.id, u.nickname
		ORDER BY position ASC, u.id ASC`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*models.LeaderboardEntry, 0)
	for rows.Next() {
		var entry models.LeaderboardEntry
		if scanErr := rows.Scan(
			&entry.UserID, &entry.Nickname, &entry.Points, &entry.ExactScores, &entry.Rank,
		); scanErr != nil {
			return nil, scanErr
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
