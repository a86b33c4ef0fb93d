package service

import (
	"errors"
	"strings"

	"github.com/pagecms/internal/db"
	"gorm.io/gorm"
)

// MailingService manages the public mailing list.
type MailingService struct {
	db *gorm.DB
}

// NewMailingService creates a MailingService instance.
func NewMailingService(gdb *gorm.DB) *MailingService {
	return &MailingService{db: gdb}
}

// Subscribe validates and stores one subscriber address. Duplicates are a
// validation error; the unique index backs the check up under races.
func (s *MailingService) Subscribe(email string) (*db.MailingListEntry, error) {
	violations := make(ValidationErrors)

	trimmed := strings.TrimSpace(email)
	checkRequiredBounded(violations, "email", trimmed, 255)
	if trimmed != "" && !validEmail(trimmed) {
		violations.Add("email", "must be a valid email address")
	}

	if violations.Empty() {
		var count int64
		if err := s.db.Model(&db.MailingListEntry{}).Where("email = ?", trimmed).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			violations.Add("email", "is already subscribed")
		}
	}

	if !violations.Empty() {
		return nil, violations
	}

	entry := db.MailingListEntry{Email: trimmed}
	if err := s.db.Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			violations.Add("email", "is already subscribed")
			return nil, violations
		}
		return nil, err
	}
	return &entry, nil
}

// List returns subscribers newest first.
func (s *MailingService) List() ([]db.MailingListEntry, error) {
	var entries []db.MailingListEntry
	if err := s.db.Order("created_at desc, id desc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Unsubscribe removes a subscriber by address.
func (s *MailingService) Unsubscribe(email string) error {
	result := s.db.Where("email = ?", strings.TrimSpace(email)).Delete(&db.MailingListEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
