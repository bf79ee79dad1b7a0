package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/channel-descriptions-api/internal/cache"
	"github.com/yukikurage/channel-descriptions-api/internal/constants"
	"github.com/yukikurage/channel-descriptions-api/internal/models"
	"github.com/yukikurage/channel-descriptions-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyDeleted = errors.New("user already deleted")
	ErrUserAlreadyExists  = errors.New("user with this channel id already exists")
)

// UserService handles user (channel) business logic
type UserService struct {
	userRepo     repository.UserRepository
	contentCache cache.ContentCache
}

// NewUserService creates a new UserService. contentCache may be nil
// when no cache is configured.
func NewUserService(userRepo repository.UserRepository, contentCache cache.ContentCache) *UserService {
	return &UserService{
		userRepo:     userRepo,
		contentCache: contentCache,
	}
}

// CreateUser registers a channel so descriptions can reference it
func (s *UserService) CreateUser(channelID string) (*models.User, error) {
	if len(channelID) != constants.ChannelIDLength {
		return nil, ErrInvalidChannelID
	}

	if _, err := s.userRepo.FindByChannelID(channelID); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user := &models.User{ChannelID: channelID}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// DeleteUser soft deletes a user and all of its descriptions in one
// transaction. The user and its descriptions are retired together or
// not at all; a partially deleted channel is never observable. Cached
// content of the retired descriptions is invalidated once the cascade
// commits, so stale reads cannot outlive the delete.
func (s *UserService) DeleteUser(ctx context.Context, channelID string) (*repository.DeletedUser, error) {
	if len(channelID) != constants.ChannelIDLength {
		return nil, ErrInvalidChannelID
	}

	user, err := s.userRepo.FindByChannelID(channelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.IsDeleted() {
		return nil, ErrUserAlreadyDeleted
	}

	deleted, descriptionIDs, err := s.userRepo.SoftDeleteWithDescriptions(channelID)
	if err != nil {
		if errors.Is(err, repository.ErrUserDeleteConflict) {
			// A concurrent delete committed between the read above and
			// the guarded update; its transaction already retired the
			// channel.
			return nil, ErrUserAlreadyDeleted
		}
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	if s.contentCache != nil {
		for _, id := range descriptionIDs {
			s.contentCache.DeleteContent(ctx, id)
		}
	}

	return deleted, nil
}
