package service

import (
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pagecms/internal/db"
	"gorm.io/gorm"
)

var ErrContactNotFound = errors.New("contact submission not found")

// ErrInvalidContactStatus rejects status values outside the closed set.
var ErrInvalidContactStatus = errors.New("invalid contact status")

const contactMessageMaxLen = 5000

// ContactService handles public contact form submissions.
type ContactService struct {
	db *gorm.DB
}

// NewContactService creates a ContactService instance.
func NewContactService(gdb *gorm.DB) *ContactService {
	return &ContactService{db: gdb}
}

// ContactInput carries the public contact form fields.
type ContactInput struct {
	Name    string
	Phone   string
	Email   string
	Message string
}

// Submit validates and stores one contact submission. A ValidationErrors
// return means nothing was written.
func (s *ContactService) Submit(input ContactInput) (*db.ContactSubmission, error) {
	violations := make(ValidationErrors)

	name := strings.TrimSpace(input.Name)
	checkRequiredBounded(violations, "name", name, 255)

	phone := strings.TrimSpace(input.Phone)
	checkRequiredBounded(violations, "phone", phone, 255)

	email := strings.TrimSpace(input.Email)
	checkRequiredBounded(violations, "email", email, 255)
	if email != "" && !validEmail(email) {
		violations.Add("email", "must be a valid email address")
	}

	message := strings.TrimSpace(input.Message)
	checkRequiredBounded(violations, "message", message, contactMessageMaxLen)

	if !violations.Empty() {
		return nil, violations
	}

	submission := db.ContactSubmission{
		Reference: uuid.New().String(),
		Name:      name,
		Phone:     phone,
		Email:     email,
		Message:   message,
		Status:    db.ContactStatusNew,
	}

	if err := s.db.Create(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// List returns submissions newest first, optionally filtered by status.
func (s *ContactService) List(status string) ([]db.ContactSubmission, error) {
	query := s.db.Model(&db.ContactSubmission{}).Order("created_at desc, id desc")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var submissions []db.ContactSubmission
	if err := query.Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

// UpdateStatus advances a submission through the admin workflow.
func (s *ContactService) UpdateStatus(id uint, status string) (*db.ContactSubmission, error) {
	switch status {
	case db.ContactStatusNew, db.ContactStatusInProgress, db.ContactStatusResolved:
	default:
		return nil, ErrInvalidContactStatus
	}

	var submission db.ContactSubmission
	if err := s.db.First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}

	submission.Status = status
	if err := s.db.Save(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func checkRequiredBounded(violations ValidationErrors, field, value string, maxLen int) {
	if value == "" {
		violations.Add(field, "is required")
		return
	}
	if utf8.RuneCountInString(value) > maxLen {
		violations.Add(field, "is too long")
	}
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
