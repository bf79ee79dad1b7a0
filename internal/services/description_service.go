package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/channel-descriptions-api/internal/cache"
	"github.com/yukikurage/channel-descriptions-api/internal/constants"
	"github.com/yukikurage/channel-descriptions-api/internal/models"
	"github.com/yukikurage/channel-descriptions-api/internal/repository"
	"github.com/yukikurage/channel-descriptions-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrDescriptionNotFound       = errors.New("description not found")
	ErrDescriptionAlreadyDeleted = errors.New("description already deleted")
	ErrPermissionDenied          = errors.New("channel does not own this description")
	ErrChannelNotFound           = errors.New("channel not found")
	ErrInvalidTitle              = errors.New("title must be between 1 and 100 characters")
	ErrInvalidContent            = errors.New("content must be between 1 and 5000 characters")
	ErrInvalidChannelID          = errors.New("channel id must be exactly 24 characters")
	ErrInvalidCategory           = errors.New("unknown description category")
)

// DescriptionService handles description business logic
type DescriptionService struct {
	descriptionRepo repository.DescriptionRepository
	userRepo        repository.UserRepository
	contentCache    cache.ContentCache
}

// NewDescriptionService creates a new DescriptionService. contentCache
// may be nil, in which case content reads always hit the store.
func NewDescriptionService(descriptionRepo repository.DescriptionRepository, userRepo repository.UserRepository, contentCache cache.ContentCache) *DescriptionService {
	return &DescriptionService{
		descriptionRepo: descriptionRepo,
		userRepo:        userRepo,
		contentCache:    contentCache,
	}
}

// CreateDescriptionInput represents input for creating a description
type CreateDescriptionInput struct {
	Title     string
	Content   string
	Category  *models.DescriptionCategory
	ChannelID string
}

// ListDescriptionsInput represents filters for listing descriptions
type ListDescriptionsInput struct {
	ChannelID string
	Category  repository.CategoryFilter
	Cursor    string
}

// UpdateDescriptionInput represents input for updating a description.
// Nil fields are left unchanged; ClearCategory resets the category to
// null.
type UpdateDescriptionInput struct {
	ID            string
	ChannelID     string
	Title         *string
	Content       *string
	Category      *models.DescriptionCategory
	ClearCategory bool
}

// CreateDescription validates the draft and persists it. The owning
// channel must exist and be active; id and created_at are assigned by
// the store.
func (s *DescriptionService) CreateDescription(input CreateDescriptionInput) (*models.Description, error) {
	if len(input.ChannelID) != constants.ChannelIDLength {
		return nil, ErrInvalidChannelID
	}
	if len(input.Title) < constants.TitleMinLength || len(input.Title) > constants.TitleMaxLength {
		return nil, ErrInvalidTitle
	}
	if len(input.Content) < constants.ContentMinLength || len(input.Content) > constants.ContentMaxLength {
		return nil, ErrInvalidContent
	}
	if input.Category != nil && !input.Category.IsValid() {
		return nil, ErrInvalidCategory
	}

	user, err := s.userRepo.FindByChannelID(input.ChannelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, fmt.Errorf("failed to find channel: %w", err)
	}
	if user.IsDeleted() {
		return nil, ErrChannelNotFound
	}

	description := &models.Description{
		Title:     input.Title,
		Content:   input.Content,
		Category:  input.Category,
		ChannelID: input.ChannelID,
	}

	if err := s.descriptionRepo.Create(description); err != nil {
		return nil, fmt.Errorf("failed to create description: %w", err)
	}

	return description, nil
}

// ListDescriptions returns one page of active descriptions for a
// channel in (created_at DESC, id DESC) order, with an opaque cursor
// for the next page when more rows remain.
//
// The repository is asked for one row more than the page size: an
// extra row means another page exists, and the cursor anchors to the
// last returned row so rows inserted after the first page was served
// can never shift or reappear in later pages.
func (s *DescriptionService) ListDescriptions(input ListDescriptionsInput) ([]models.Description, *string, error) {
	if len(input.ChannelID) != constants.ChannelIDLength {
		return nil, nil, ErrInvalidChannelID
	}

	filter := repository.DescriptionFilter{
		ChannelID: input.ChannelID,
		Category:  input.Category,
		Limit:     constants.PageSize + 1,
	}

	// A cursor that fails to decode is treated as absent; pagination
	// restarts from the first page.
	if cursorCreatedAt, cursorID, ok := utils.DecodeCursor(input.Cursor); ok {
		filter.HasCursor = true
		filter.CursorCreatedAt = cursorCreatedAt
		filter.CursorID = cursorID
	}

	descriptions, err := s.descriptionRepo.ListByChannel(filter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list descriptions: %w", err)
	}

	if len(descriptions) <= constants.PageSize {
		return descriptions, nil, nil
	}

	page := descriptions[:constants.PageSize]
	last := page[len(page)-1]
	nextCursor := utils.EncodeCursor(last.CreatedAt, last.ID)

	return page, &nextCursor, nil
}

// GetContent returns the content of an active description, consulting
// the cache first when one is configured.
func (s *DescriptionService) GetContent(ctx context.Context, id string) (string, error) {
	if s.contentCache != nil {
		if content, ok := s.contentCache.GetContent(ctx, id); ok {
			return content, nil
		}
	}

	content, err := s.descriptionRepo.FindContentByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrDescriptionNotFound
		}
		return "", fmt.Errorf("failed to get description content: %w", err)
	}

	if s.contentCache != nil {
		s.contentCache.SetContent(ctx, id, content)
	}

	return content, nil
}

// UpdateDescription updates title, content or category of an active
// description owned by the requesting channel.
func (s *DescriptionService) UpdateDescription(ctx context.Context, input UpdateDescriptionInput) (*models.Description, error) {
	description, err := s.findOwnedActive(input.ID, input.ChannelID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		description.Title = *input.Title
	}
	if input.Content != nil {
		description.Content = *input.Content
	}
	if input.ClearCategory {
		description.Category = nil
	} else if input.Category != nil {
		description.Category = input.Category
	}

	if len(description.Title) < constants.TitleMinLength || len(description.Title) > constants.TitleMaxLength {
		return nil, ErrInvalidTitle
	}
	if len(description.Content) < constants.ContentMinLength || len(description.Content) > constants.ContentMaxLength {
		return nil, ErrInvalidContent
	}
	if description.Category != nil && !description.Category.IsValid() {
		return nil, ErrInvalidCategory
	}

	rows, err := s.descriptionRepo.Update(description)
	if err != nil {
		return nil, fmt.Errorf("failed to update description: %w", err)
	}
	if rows == 0 {
		// Row vanished between read and write: a concurrent delete won.
		return nil, ErrDescriptionAlreadyDeleted
	}

	if s.contentCache != nil {
		s.contentCache.DeleteContent(ctx, description.ID)
	}

	return description, nil
}

// DeleteDescription soft deletes a description owned by the requesting
// channel. Deletion is terminal: a deleted description can never be
// restored, and deleting it again reports AlreadyDeleted with the
// original deletion timestamp untouched.
func (s *DescriptionService) DeleteDescription(ctx context.Context, id string, requestingChannelID string) (*models.Description, error) {
	description, err := s.findOwnedActive(id, requestingChannelID)
	if err != nil {
		return nil, err
	}

	// The in-memory checks above give precise error classification; the
	// deleted_at IS NULL guard on the write is what actually prevents a
	// lost update when two deletes race.
	now := time.Now()
	rows, err := s.descriptionRepo.SoftDelete(description.ID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to delete description: %w", err)
	}
	if rows == 0 {
		return nil, ErrDescriptionAlreadyDeleted
	}

	if s.contentCache != nil {
		s.contentCache.DeleteContent(ctx, description.ID)
	}

	description.DeletedAt = &now
	return description, nil
}

// findOwnedActive fetches a description and verifies, in order, that
// it exists, that the requesting channel owns it, and that it has not
// been deleted. Ownership violations are reported as PermissionDenied
// rather than NotFound on purpose: the caller referenced a real record
// it does not own.
func (s *DescriptionService) findOwnedActive(id string, requestingChannelID string) (*models.Description, error) {
	description, err := s.descriptionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDescriptionNotFound
		}
		return nil, fmt.Errorf("failed to find description: %w", err)
	}

	if description.ChannelID != requestingChannelID {
		return nil, ErrPermissionDenied
	}

	if description.IsDeleted() {
		return nil, ErrDescriptionAlreadyDeleted
	}

	return description, nil
}
