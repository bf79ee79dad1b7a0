package models

import (
	"time"
)

// User is the owning channel of descriptions. ChannelID is the natural
// key used throughout the API; ID is a surrogate assigned by the store.
type User struct {
	ID        uint64     `gorm:"primarykey" json:"id"`
	ChannelID string     `gorm:"type:varchar(24);uniqueIndex;not null" json:"channel_id"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`

	// Relations
	Descriptions []Description `gorm:"foreignKey:ChannelID;references:ChannelID" json:"-"`
}

// IsDeleted reports whether the user has been soft deleted.
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}
