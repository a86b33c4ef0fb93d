package db

import "gorm.io/gorm"

// Category groups articles. Looked up by slug on the public API.
type Category struct {
	gorm.Model
	Name        string `gorm:"not null"`
	Slug        string `gorm:"uniqueIndex;not null"`
	Description string
	Articles    []Article
}
