package repository

import (
	"errors"
	"time"

	"github.com/yukikurage/channel-descriptions-api/internal/database"
	"github.com/yukikurage/channel-descriptions-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// ErrUserDeleteConflict is returned when the guarded user update inside
// the cascading delete matches zero rows, i.e. a concurrent delete won
// the race after the caller's initial read.
var ErrUserDeleteConflict = errors.New("user repository: user not found or already deleted")

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByChannelID finds a user by channel ID, including soft-deleted rows
func (r *GormUserRepository) FindByChannelID(channelID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("channel_id = ?", channelID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SoftDeleteWithDescriptions soft deletes the user and every active
// description of the channel inside a single transaction. Parent and
// children share one deletion instant. If the guarded parent update
// matches no row (a concurrent delete committed first) the whole
// transaction rolls back, so a half-deleted channel is never visible.
// The affected description ids are collected inside the transaction,
// before the children update, and returned to the caller.
func (r *GormUserRepository) SoftDeleteWithDescriptions(channelID string) (*DeletedUser, []string, error) {
	now := time.Now()
	var descriptionIDs []string

	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).
			Scopes(database.Active()).
			Where("channel_id = ?", channelID).
			Update("deleted_at", now)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserDeleteConflict
		}

		if err := tx.Model(&models.Description{}).
			Scopes(database.Active()).
			Where("channel_id = ?", channelID).
			Pluck("id", &descriptionIDs).Error; err != nil {
			return err
		}

		return tx.Model(&models.Description{}).
			Scopes(database.Active()).
			Where("channel_id = ?", channelID).
			Update("deleted_at", now).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return &DeletedUser{ChannelID: channelID, DeletedAt: &now}, descriptionIDs, nil
}
