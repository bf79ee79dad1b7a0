package models

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type DescriptionCategory string

const (
	CategoryGeneral DescriptionCategory = "GENERAL"
	CategoryGaming  DescriptionCategory = "GAMING"
	CategoryChat    DescriptionCategory = "CHAT"
	CategoryMusic   DescriptionCategory = "MUSIC"
	CategoryEvent   DescriptionCategory = "EVENT"
	CategoryCollab  DescriptionCategory = "COLLAB"
)

// IsValid reports whether c is one of the known categories.
func (c DescriptionCategory) IsValid() bool {
	switch c {
	case CategoryGeneral, CategoryGaming, CategoryChat, CategoryMusic, CategoryEvent, CategoryCollab:
		return true
	}
	return false
}

// Description is a short text record owned by a channel.
//
// DeletedAt is managed by the application, not by gorm.DeletedAt: the
// delete flow has to observe already-deleted rows to classify errors,
// and the cascading user delete stamps parent and children with one
// shared instant. Once set, DeletedAt is never cleared.
type Description struct {
	ID        string               `gorm:"type:uuid;primarykey" json:"id"`
	Title     string               `gorm:"type:varchar(100);not null" json:"title"`
	Content   string               `gorm:"type:text;not null" json:"content"`
	Category  *DescriptionCategory `gorm:"type:varchar(20)" json:"category"`
	ChannelID string               `gorm:"type:varchar(24);not null;index" json:"channel_id"`
	CreatedAt time.Time            `json:"created_at"`
	DeletedAt *time.Time           `gorm:"index" json:"deleted_at,omitempty"`

	// Relations
	User User `gorm:"foreignKey:ChannelID;references:ChannelID" json:"user,omitempty"`
}

// BeforeCreate assigns a server-generated UUID when none is set.
func (d *Description) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		id, err := uuid.NewV4()
		if err != nil {
			return err
		}
		d.ID = id.String()
	}
	return nil
}

// IsDeleted reports whether the description has been soft deleted.
func (d *Description) IsDeleted() bool {
	return d.DeletedAt != nil
}
