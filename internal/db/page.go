package db

import (
	"time"

	"gorm.io/datatypes"
)

// Page statuses. Only published pages are visible on the public API.
const (
	PageStatusDraft     = "draft"
	PageStatusPublished = "published"
)

// Page is a standalone site page assembled from an ordered sequence of
// content blocks. Content holds that sequence as JSON; the block order is
// authoring order and must never be changed by the system itself.
//
// Pages are deleted hard, so no DeletedAt here — unlike Article and News.
type Page struct {
	ID        uint   `gorm:"primarykey"`
	Title     string `gorm:"not null"`
	Slug      string `gorm:"uniqueIndex;not null"`
	Status    string `gorm:"size:20;not null;default:draft"`
	SortOrder int    `gorm:"not null;default:0"` // exposed as "order" in the API and exports
	Content   datatypes.JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}
