package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/prediction-league/models"
	"github.com/lib/pq"
)

var (
	ErrInviteNotFound      = errors.New("invite not found")
	ErrInviteTokenConflict = errors.New("invite token conflict")
	ErrInviteGroupInvalid  = errors.New("invite group conflict or invalid")
)

type InviteRepository interface {
	// Create inserts a new invite; ExpiresAt must already be set by the caller.
	Create(ctx context.Context, invite *models.Invite) error
	GetByID(ctx context.Context, id int) (*models.Invite, error)
	GetByToken(ctx context.Context, token string) (*models.Invite, error)
	ListByGroupID(ctx context.Context, groupID int) ([]*models.Invite, error)
	Delete(ctx context.Context, id int) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type postgresInviteRepository struct {
	db *sql.DB
}

func NewPostgresInviteRepository(db *sql.DB) InviteRepository {
	return &postgresInviteRepository{db: db}
}

func (r *postgresInviteRepository) Create(ctx context.Context, invite *models.Invite) error {
	query := `
		INSERT INTO invites (group_id, token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		invite.GroupID,
		invite.Token,
		invite.ExpiresAt,
	).Scan(&invite.ID, &invite.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				if pqErr.Constraint == "invites_token_key" {
					return ErrInviteTokenConflict
				}
			case "23503":
				return ErrInviteGroupInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresInviteRepository) GetByID(ctx context.Context, id int) (*models.Invite, error) {
	query := `
		SELECT id, group_id, token, expires_at, created_at
		FROM invites
		WHERE id = $1`

	invite := &models.Invite{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&invite.ID,
		&invite.GroupID,
		&invite.Token,
		&invite.ExpiresAt,
		&invite.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInviteNotFound
		}
		return nil, err
	}
	return invite, nil
}

func (r *postgresInviteRepository) GetByToken(ctx context.Context, token string) (*models.Invite, error) {
	query := `
		SELECT id, group_id, token, expires_at, created_at
		FROM invites
		WHERE token = $1`

	invite := &models.Invite{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&invite.ID,
		&invite.GroupID,
		&invite.Token,
		&invite.ExpiresAt,
		&invite.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInviteNotFound
		}
		return nil, err
	}
	// Expiry is the service layer's call; the repository just returns the row.
	return invite, nil
}

func (r *postgresInviteRepository) ListByGroupID(ctx context.Context, groupID int) ([]*models.Invite, error) {
	query := `
		SELECT id, group_id, token, expires_at, created_at
		FROM invites
		WHERE group_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invites := make([]*models.Invite, 0)
	for rows.Next() {
		var invite models.Invite
		if scanErr := rows.Scan(
			&invite.ID,
			&invite.GroupID,
			&invite.Token,
			&invite.ExpiresAt,
			&invite.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		invites = append(invites, &invite)
	}
	return invites, rows.Err()
}

func (r *postgresInviteRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM invites WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrInviteNotFound)
}

func (r *postgresInviteRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM invites WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
