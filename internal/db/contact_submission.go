package db

import "gorm.io/gorm"

// Contact submission statuses, advanced by admins as they work the inbox.
const (
	ContactStatusNew        = "new"
	ContactStatusInProgress = "in_progress"
	ContactStatusResolved   = "resolved"
)

// ContactSubmission is one message sent through the public contact form.
// Reference is a uuid handed back to the sender for follow-up.
type ContactSubmission struct {
	gorm.Model
	Reference string `gorm:"size:36;uniqueIndex;not null"`
	Name      string `gorm:"size:255;not null"`
	Phone     string `gorm:"size:255;not null"`
	Email     string `gorm:"size:255;not null"`
	Message   string `gorm:"type:text;not null"`
	Status    string `gorm:"size:20;not null;default:new"`
}
