package repository

import (
	"time"

	"github.com/yukikurage/channel-descriptions-api/internal/models"
)

// DescriptionRepository defines the interface for description data access
type DescriptionRepository interface {
	// Create inserts a new description; id and created_at are assigned server-side
	Create(description *models.Description) error

	// FindByID finds a description by ID, including soft-deleted rows
	FindByID(id string) (*models.Description, error)

	// FindContentByID returns the content of an active description
	FindContentByID(id string) (string, error)

	// ListByChannel retrieves active descriptions of a channel in
	// (created_at DESC, id DESC) order, up to filter.Limit rows
	ListByChannel(filter DescriptionFilter) ([]models.Description, error)

	// Update persists title/content/category changes to an active
	// description and returns the number of rows matched
	Update(description *models.Description) (int64, error)

	// SoftDelete marks an active description deleted at the given
	// instant and returns the number of rows matched
	SoftDelete(id string, deletedAt time.Time) (int64, error)
}

// CategoryFilter expresses the three-state category predicate: not set
// (no filtering), explicitly null (only uncategorized rows), or an
// explicit value (only rows with that category).
type CategoryFilter struct {
	Set   bool
	Null  bool
	Value models.DescriptionCategory
}

// DescriptionFilter holds query options for listing descriptions
type DescriptionFilter struct {
	ChannelID string
	Category  CategoryFilter

	// Cursor position: when HasCursor is true, only rows strictly
	// before (CursorCreatedAt, CursorID) in descending order match
	HasCursor       bool
	CursorCreatedAt time.Time
	CursorID        string

	Limit int
}

// DeletedUser is the result of a cascading user delete
type DeletedUser struct {
	ChannelID string     `json:"channel_id"`
	DeletedAt *time.Time `json:"deleted_at"`
}

// UserRepository defines the interface for user (channel) data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByChannelID finds a user by channel ID, including soft-deleted rows
	FindByChannelID(channelID string) (*models.User, error)

	// SoftDeleteWithDescriptions soft deletes the user and all of its
	// active descriptions in one transaction, stamping every row with
	// the same deletion instant. The ids of the descriptions retired by
	// the cascade are returned so callers can invalidate derived state
	// such as caches.
	SoftDeleteWithDescriptions(channelID string) (*DeletedUser, []string, error)
}
