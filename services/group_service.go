package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Dosada05/prediction-league/models"
	"github.com/Dosada05/prediction-league/repositories"
	"github.com/Dosada05/prediction-league/storage"
)

type CreateGroupInput struct {
	Name string `json:"name" validate:"required,min=3,max=60"`
}

type GroupService interface {
	CreateGroup(ctx context.Context, ownerID int, input CreateGroupInput) (*models.Group, error)
	GetGroupByID(ctx context.Context, id int, withMembers bool) (*models.Group, error)
	ListUserGroups(ctx context.Context, userID int) ([]*models.Group, error)
	LeaveGroup(ctx context.Context, groupID, userID int) error
	GetLeaderboard(ctx context.Context, groupID int) ([]*models.LeaderboardEntry, error)
	UpdateGroupLogo(ctx context.Context, groupID, currentUserID int, file io.Reader, contentType string) (*models.Group, error)
}

type groupService struct {
	db        *sql.DB
	groupRepo repositories.GroupRepository
	statsRepo repositories.StatsRepository
	uploader  storage.FileUploader
}

func NewGroupService(
	db *sql.DB,
	groupRepo repositories.GroupRepository,
	statsRepo repositories.StatsRepository,
	uploader storage.FileUploader,
) GroupService {
	return &groupService{
		db:        db,
		groupRepo: groupRepo,
		statsRepo: statsRepo,
		uploader:  uploader,
	}
}

func (s *groupService) CreateGroup(ctx context.Context, ownerID int, input CreateGroupInput) (*models.Group, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrGroupNameRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	group := &models.Group{Name: name, OwnerID: ownerID}
	if err := s.groupRepo.Create(ctx, tx, group); err != nil {
		if errors.Is(err, repositories.ErrGroupNameConflict) {
			return nil, ErrGroupNameConflict
		}
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	// The owner is a playing member from the start.
	member := &models.GroupMember{
		GroupID: group.ID,
		UserID:  ownerID,
		Status:  models.MembershipJoined,
	}
	if err := s.groupRepo.CreateMember(ctx, tx, member); err != nil {
		return nil, fmt.Errorf("failed to add owner membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit group creation: %w", err)
	}
	return group, nil
}

func (s *groupService) GetGroupByID(ctx context.Context, id int, withMembers bool) (*models.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group %d: %w", id, err)
	}
	s.populateGroupLogoURL(group)

	if withMembers {
		joined := models.MembershipJoined
		members, err := s.groupRepo.ListMembers(ctx, id, &joined)
		if err != nil {
			return nil, fmt.Errorf("failed to list members of group %d: %w", id, err)
		}
		for _, member := range members {
			populateUserAvatarURL(member.User, s.uploader)
		}
		group.Members = members
	}
	return group, nil
}

func (s *groupService) ListUserGroups(ctx context.Context, userID int) ([]*models.Group, error) {
	groups, err := s.groupRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups for user %d: %w", userID, err)
	}
	for _, group := range groups {
		s.populateGroupLogoURL(group)
	}
	return groups, nil
}

func (s *groupService) LeaveGroup(ctx context.Context, groupID, userID int) error {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return ErrGroupNotFound
		}
		return fmt.Errorf("failed to get group %d: %w", groupID, err)
	}
	if group.OwnerID == userID {
		return ErrOwnerCannotLeave
	}

	member, err := s.groupRepo.GetMember(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrMembershipNotFound) {
			return ErrNotGroupMember
		}
		return fmt.Errorf("failed to get membership: %w", err)
	}
	if member.Status != models.MembershipJoined {
		return ErrNotGroupMember
	}

	// Leaving flips the membership out of joined status; from that moment
	// the user's predictions in this group stop counting toward aggregates.
	if err := s.groupRepo.UpdateMemberStatus(ctx, groupID, userID, models.MembershipLeft); err != nil {
		return fmt.Errorf("failed to update membership status: %w", err)
	}
	return nil
}

func (s *groupService) GetLeaderboard(ctx context.Context, groupID int) ([]*models.LeaderboardEntry, error) {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group %d: %w", groupID, err)
	}
	entries, err := s.statsRepo.GetGroupLeaderboard(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard for group %d: %w", groupID, err)
	}
	return entries, nil
}

func (s *groupService) UpdateGroupLogo(ctx context.Context, groupID, currentUserID int, file io.Reader, contentType string) (*models.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group %d: %w", groupID, err)
	}
	if group.OwnerID != currentUserID {
		return nil, ErrOwnerActionForbidden
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrValidationFailed
	}

	key := fmt.Sprintf("groups/%d/logo-%d", groupID, time.Now().UnixNano())
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload group logo: %w", err)
	}
	if err := s.groupRepo.UpdateLogoKey(ctx, groupID, key); err != nil {
		return nil, fmt.Errorf("failed to store group logo key: %w", err)
	}

	group.LogoKey = &key
	s.populateGroupLogoURL(group)
	return group, nil
}

func (s *groupService) populateGroupLogoURL(group *models.Group) {
	if group == nil || group.LogoKey == nil || *group.LogoKey == "" || s.uploader == nil {
		return
	}
	url := s.uploader.GetPublicURL(*group.LogoKey)
	if url != "" {
		group.LogoURL = &url
	}
}

func populateUserAvatarURL(user *models.User, uploader storage.FileUploader) {
	if user == nil {
		return
	}
	user.PasswordHash = ""
	if user.AvatarKey != nil && *user.AvatarKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*user.AvatarKey)
		if url != "" {
			user.AvatarURL = &url
		}
	}
}
