package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/prediction-league/models"
	"github.com/lib/pq"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserEmailConflict    = errors.New("user email conflict")
	ErrUserNicknameConflict = errors.New("user nickname conflict")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateAvatarKey(ctx context.Context, id int, key string) error
	Count(ctx context.Context) (int, error)
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (first_name, last_name, nickname, email, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.FirstName,
		user.LastName,
		user.Nickname,
		user.Email,
		user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		return mapUserConstraintError(err)
	}
	return nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT id, first_name, last_name, nickname, email, password_hash, avatar_key, created_at
		FROM users
		WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, first_name, last_name, nickname, email, password_hash, avatar_key, created_at
		FROM users
		WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *postgresUserRepository) scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Nickname,
		&user.Email,
		&user.PasswordHash,
		&user.AvatarKey,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *postgresUserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET first_name = $1, last_name = $2, nickname = $3, email = $4, password_hash = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		user.FirstName,
		user.LastName,
		user.Nickname,
		user.Email,
		user.PasswordHash,
		user.ID,
	)
	if err != nil {
		return mapUserConstraintError(err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) UpdateAvatarKey(ctx context.Context, id int, key string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET avatar_key = $1 WHERE id = $2`, key, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

func mapUserConstraintError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		switch pqErr.Constraint {
		case "users_email_key":
			return ErrUserEmailConflict
		case "users_nickname_key":
			return ErrUserNicknameConflict
		}
	}
	return err
}
