package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/prediction-league/models"
	"github.com/lib/pq"
)

var (
	ErrGroupNotFound      = errors.New("group not found")
	ErrGroupNameConflict  = errors.New("group name conflict")
	ErrMembershipNotFound = errors.New("group membership not found")
	ErrMembershipConflict = errors.New("user already has a membership in this group")
)

type GroupRepository interface {
	Create(ctx context.Context, exec SQLExecutor, group *models.Group) error
	GetByID(ctx context.Context, id int) (*models.Group, error)
	ListByUser(ctx context.Context, userID int) ([]*models.Group, error)
	UpdateLogoKey(ctx context.Context, id int, key string) error
	Count(ctx context.Context) (int, error)

	CreateMember(ctx context.Context, exec SQLExecutor, member *models.GroupMember) error
	GetMember(ctx context.Context, groupID, userID int) (*models.GroupMember, error)
	UpdateMemberStatus(ctx context.Context, groupID, userID int, status models.MembershipStatus) error
	ListMembers(ctx context.Context, groupID int, status *models.MembershipStatus) ([]*models.GroupMember, error)
}

type postgresGroupRepository struct {
	db *sql.DB
}

func NewPostgresGroupRepository(db *sql.DB) GroupRepository {
	return &postgresGroupRepository{db: db}
}

func (r *postgresGroupRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresGroupRepository) Create(ctx context.Context, exec SQLExecutor, group *models.Group) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO groups (name, owner_id)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query, group.Name, group.OwnerID).
		Scan(&group.ID, &group.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" && pqErr.Constraint == "groups_name_key" {
			return ErrGroupNameConflict
		}
		return err
	}
	return nil
}

func (r *postgresGroupRepository) GetByID(ctx context.Context, id int) (*models.Group, error) {
	query := `
		SELECT id, name, owner_id, logo_key, created_at
		FROM groups
		WHERE id = $1`

	var group models.Group
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&group.ID, &group.Name, &group.OwnerID, &group.LogoKey, &group.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *postgresGroupRepository) ListByUser(ctx context.Context, userID int) ([]*models.Group, error) {
	query := `
		SELECT g.id, g.name, g.owner_id, g.logo_key, g.created_at
		FROM groups g
		JOIN group_members gm ON gm.group_id = g.id
		WHERE gm.user_id = $1 AND gm.status = 'joined'
		ORDER BY g.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([]*models.Group, 0)
	for rows.Next() {
		var group models.Group
		if scanErr := rows.Scan(&group.ID, &group.Name, &group.OwnerID, &group.LogoKey, &group.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		groups = append(groups, &group)
	}
	return groups, rows.Err()
}

func (r *postgresGroupRepository) UpdateLogoKey(ctx context.Context, id int, key string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE groups SET logo_key = $1 WHERE id = $2`, key, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGroupNotFound)
}

func (r *postgresGroupRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM groups`).Scan(&count)
	return count, err
}

func (r *postgresGroupRepository) CreateMember(ctx context.Context, exec SQLExecutor, member *models.GroupMember) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO group_members (group_id, user_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query, member.GroupID, member.UserID, member.Status).
		Scan(&member.ID, &member.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return ErrMembershipConflict
			case "23503":
				return ErrGroupNotFound
			}
		}
		return err
	}
	return nil
}

func (r *postgresGroupRepository) GetMember(ctx context.Context, groupID, userID int) (*models.GroupMember, error) {
	query := `
		SELECT id, group_id, user_id, status, created_at
		FROM group_members
		WHERE group_id = $1 AND user_id = $2`

	var member models.GroupMember
	err := r.db.QueryRowContext(ctx, query, groupID, userID).Scan(
		&member.ID, &member.GroupID, &member.UserID, &member.Status, &member.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMembershipNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *postgresGroupRepository) UpdateMemberStatus(ctx context.Context, groupID, userID int, status models.MembershipStatus) error {
	query := `UPDATE group_members SET status = $1 WHERE group_id = $2 AND user_id = $3`
	result, err := r.db.ExecContext(ctx, query, status, groupID, userID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMembershipNotFound)
}

func (r *postgresGroupRepository) ListMembers(ctx context.Context, groupID int, status *models.MembershipStatus) ([]*models.GroupMember, error) {
	query := `
		SELECT gm.id, gm.group_id, gm.user_id, gm.status, gm.created_at,
		       u.id, u.first_name, u.last_name, u.nickname, u.avatar_key, u.created_at
		FROM group_members gm
		JOIN users u ON u.id = gm.user_id
		WHERE gm.group_id = $1`
	args := []interface{}{groupID}

	if status != nil {
		query += ` AND gm.status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY gm.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]*models.GroupMember, 0)
	for rows.Next() {
		var member models.GroupMember
		var user models.User
		if scanErr := rows.Scan(
			&member.ID, &member.GroupID, &member.UserID, &member.Status, &member.CreatedAt,
			&user.ID, &user.FirstName, &user.LastName, &user.Nickname, &user.AvatarKey, &user.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		member.User = &user
		members = append(members, &member)
	}
	return members, rows.Err()
}
