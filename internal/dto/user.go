package dto

import (
	"time"

	"github.com/yukikurage/channel-descriptions-api/internal/models"
	"github.com/yukikurage/channel-descriptions-api/internal/repository"
)

// UserDTO represents a user (channel) in API responses
type UserDTO struct {
	ID        uint64    `json:"id"`
	ChannelID string    `json:"channel_id"`
	CreatedAt time.Time `json:"created_at"`
}

// DeletedUserDTO represents the result of a cascading user delete
type DeletedUserDTO struct {
	ChannelID string     `json:"channel_id"`
	DeletedAt *time.Time `json:"deleted_at"`
}

// ToUserDTO converts a user model to its API representation
func ToUserDTO(u models.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		ChannelID: u.ChannelID,
		CreatedAt: u.CreatedAt,
	}
}

// ToDeletedUserDTO converts a cascading delete result
func ToDeletedUserDTO(d repository.DeletedUser) DeletedUserDTO {
	return DeletedUserDTO{
		ChannelID: d.ChannelID,
		DeletedAt: d.DeletedAt,
	}
}
