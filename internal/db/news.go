package db

import "gorm.io/gorm"

// News is a short announcement item.
type News struct {
	gorm.Model
	Title   string `gorm:"not null"`
	Slug    string `gorm:"uniqueIndex;not null"`
	Excerpt string
	Content string `gorm:"type:text"`
	Image   string `gorm:"size:512"`
}
