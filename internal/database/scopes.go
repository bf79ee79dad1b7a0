package database

import (
	"time"

	"gorm.io/gorm"
)

// Active limits a query to rows that have not been soft deleted.
func Active() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("deleted_at IS NULL")
	}
}

// CursorBefore limits a query to rows strictly before the given
// (created_at, id) position in (created_at DESC, id DESC) order. Ties
// on created_at are broken by id, so rows sharing a timestamp are
// neither skipped nor repeated across pages.
func CursorBefore(createdAt time.Time, id string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("created_at < ? OR (created_at = ? AND id < ?)", createdAt, createdAt, id)
	}
}
