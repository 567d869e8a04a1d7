package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/prediction-league/models"
	"github.com/Dosada05/prediction-league/repositories"
)

const (
	inviteTokenLength = 16 // bytes, 32 hex characters
	inviteDuration    = 7 * 24 * time.Hour
)

var ErrInviteTokenGeneration = errors.New("failed to generate unique invite token")

type InviteService interface {
	CreateInvite(ctx context.Context, groupID, currentUserID int) (*models.Invite, error)
	AcceptInvite(ctx context.Context, token string, currentUserID int) (*models.Group, error)
	ListGroupInvites(ctx context.Context, groupID, currentUserID int) ([]*models.Invite, error)
	DeleteInvite(ctx context.Context, inviteID, currentUserID int) error
}

type inviteService struct {
	inviteRepo repositories.InviteRepository
	groupRepo  repositories.GroupRepository
}

func NewInviteService(inviteRepo repositories.InviteRepository, groupRepo repositories.GroupRepository) InviteService {
	return &inviteService{
		inviteRepo: inviteRepo,
		groupRepo:  groupRepo,
	}
}

func generateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func (s *inviteService) CreateInvite(ctx context.Context, groupID, currentUserID int) (*models.Invite, error) {
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

	// Token collisions are possible in theory, so retry a few times before
	// giving up.
	const maxAttempts = 3
	for attempt := 0; attempt < maxAttempts; attempt++ {
		token, err := generateSecureToken(inviteTokenLength)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInviteTokenGeneration, err)
		}

		invite := &models.Invite{
			GroupID:   groupID,
			Token:     token,
			ExpiresAt: time.Now().Add(inviteDuration),
		}
		err = s.inviteRepo.Create(ctx, invite)
		if err == nil {
			return invite, nil
		}
		if !errors.Is(err, repositories.ErrInviteTokenConflict) {
			if errors.Is(err, repositories.ErrInviteGroupInvalid) {
				return nil, ErrGroupNotFound
			}
			return nil, fmt.Errorf("failed to create invite: %w", err)
		}
	}
	return nil, fmt.Errorf("%w after %d attempts", ErrInviteTokenGeneration, maxAttempts)
}

func (s *inviteService) AcceptInvite(ctx context.Context, token string, currentUserID int) (*models.Group, error) {
	invite, err := s.inviteRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrInviteNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to get invite by token: %w", err)
	}
	if time.Now().After(invite.ExpiresAt) {
		return nil, ErrInviteExpired
	}

	group, err := s.groupRepo.GetByID(ctx, invite.GroupID)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group %d: %w", invite.GroupID, err)
	}

	member, err := s.groupRepo.GetMember(ctx, invite.GroupID, currentUserID)
	switch {
	case err == nil:
		if member.Status == models.MembershipJoined {
			return nil, ErrAlreadyMember
		}
		// A user who left or is pending rejoins through the same row.
		if err := s.groupRepo.UpdateMemberStatus(ctx, invite.GroupID, currentUserID, models.MembershipJoined); err != nil {
			return nil, fmt.Errorf("failed to rejoin group: %w", err)
		}
	case errors.Is(err, repositories.ErrMembershipNotFound):
		newMember := &models.GroupMember{
			GroupID: invite.GroupID,
			UserID:  currentUserID,
			Status:  models.MembershipJoined,
		}
		if err := s.groupRepo.CreateMember(ctx, nil, newMember); err != nil {
			return nil, fmt.Errorf("failed to create membership: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	return group, nil
}

func (s *inviteService) ListGroupInvites(ctx context.Context, groupID, currentUserID int) ([]*models.Invite, error) {
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

	// Opportunistic cleanup keeps the listing free of dead links.
	if _, err := s.inviteRepo.DeleteExpired(ctx); err != nil {
		return nil, fmt.Errorf("failed to prune expired invites: %w", err)
	}

	invites, err := s.inviteRepo.ListByGroupID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invites for group %d: %w", groupID, err)
	}
	return invites, nil
}

func (s *inviteService) DeleteInvite(ctx context.Context, inviteID, currentUserID int) error {
	invite, err := s.inviteRepo.GetByID(ctx, inviteID)
	if err != nil {
		if errors.Is(err, repositories.ErrInviteNotFound) {
			return ErrInviteNotFound
		}
		return fmt.Errorf("failed to get invite %d: %w", inviteID, err)
	}

	group, err := s.groupRepo.GetByID(ctx, invite.GroupID)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return ErrGroupNotFound
		}
		return fmt.Errorf("failed to get group %d: %w", invite.GroupID, err)
	}
	if group.OwnerID != currentUserID {
		return ErrOwnerActionForbidden
	}

	if err := s.inviteRepo.Delete(ctx, inviteID); err != nil {
		if errors.Is(err, repositories.ErrInviteNotFound) {
			return ErrInviteNotFound
		}
		return fmt.Errorf("failed to delete invite %d: %w", inviteID, err)
	}
	return nil
}
