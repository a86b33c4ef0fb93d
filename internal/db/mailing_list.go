package db

import "gorm.io/gorm"

// MailingListEntry is one subscriber address. Email is unique; a duplicate
// subscribe attempt is rejected at validation time and the storage index is
// the backstop for races.
type MailingListEntry struct {
	gorm.Model
	Email string `gorm:"size:255;uniqueIndex;not null"`
}

// TableName keeps the historical table name.
func (MailingListEntry) TableName() string {
	return "mailing_list"
}
