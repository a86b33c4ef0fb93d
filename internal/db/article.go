package db

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Article is a long-form post. Content is markdown; the read API renders it
// to sanitized HTML. Tags is a flat JSON array of strings.
type Article struct {
	gorm.Model
	Title      string `gorm:"not null"`
	Slug       string `gorm:"uniqueIndex;not null"`
	Excerpt    string
	Content    string `gorm:"type:text"`
	Image      string `gorm:"size:512"`
	Tags       datatypes.JSON
	CategoryID *uint
	Category   *Category
}
