package repository

import (
	"time"

	"github.com/yukikurage/channel-descriptions-api/internal/database"
	"github.com/yukikurage/channel-descriptions-api/internal/models"
	"gorm.io/gorm"
)

// GormDescriptionRepository is a GORM implementation of DescriptionRepository
type GormDescriptionRepository struct {
	db *gorm.DB
}

// NewDescriptionRepository creates a new DescriptionRepository
func NewDescriptionRepository(db *gorm.DB) DescriptionRepository {
	return &GormDescriptionRepository{db: db}
}

// Create inserts a new description
func (r *GormDescriptionRepository) Create(description *models.Description) error {
	return r.db.Create(description).Error
}

// FindByID finds a description by ID, including soft-deleted rows.
// Deleted rows are returned on purpose so callers can distinguish
// "never existed" from "already deleted".
func (r *GormDescriptionRepository) FindByID(id string) (*models.Description, error) {
	var description models.Description
	if err := r.db.Where("id = ?", id).First(&description).Error; err != nil {
		return nil, err
	}
	return &description, nil
}

// FindContentByID returns the content of an active description
func (r *GormDescriptionRepository) FindContentByID(id string) (string, error) {
	var description models.Description
	err := r.db.Select("content").
		Scopes(database.Active()).
		Where("id = ?", id).
		First(&description).Error
	if err != nil {
		return "", err
	}
	return description.Content, nil
}

// ListByChannel retrieves active descriptions of a channel ordered by
// (created_at DESC, id DESC), optionally filtered by category and
// resumed from a cursor position.
func (r *GormDescriptionRepository) ListByChannel(filter DescriptionFilter) ([]models.Description, error) {
	query := r.db.Model(&models.Description{}).
		Scopes(database.Active()).
		Where("channel_id = ?", filter.ChannelID)

	if filter.Category.Set {
		if filter.Category.Null {
			query = query.Where("category IS NULL")
		} else {
			query = query.Where("category = ?", filter.Category.Value)
		}
	}

	if filter.HasCursor {
		query = query.Scopes(database.CursorBefore(filter.CursorCreatedAt, filter.CursorID))
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var descriptions []models.Description
	if err := query.Order("created_at DESC, id DESC").Find(&descriptions).Error; err != nil {
		return nil, err
	}

	return descriptions, nil
}

// Update persists title/content/category changes to an active
// description. The deleted_at IS NULL guard keeps updates off rows that
// were soft deleted after the caller last read them.
func (r *GormDescriptionRepository) Update(description *models.Description) (int64, error) {
	result := r.db.Model(&models.Description{}).
		Scopes(database.Active()).
		Where("id = ?", description.ID).
		Updates(map[string]interface{}{
			"title":    description.Title,
			"content":  description.Content,
			"category": description.Category,
		})
	return result.RowsAffected, result.Error
}

// SoftDelete marks an active description deleted. The conditional
// WHERE deleted_at IS NULL is the optimistic guard: of two concurrent
// deletes exactly one matches the row, the other sees zero rows.
func (r *GormDescriptionRepository) SoftDelete(id string, deletedAt time.Time) (int64, error) {
	result := r.db.Model(&models.Description{}).
		Scopes(database.Active()).
		Where("id = ?", id).
		Update("deleted_at", deletedAt)
	return result.RowsAffected, result.Error
}
