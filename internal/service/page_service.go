package service

import (
	"errors"
	"strings"

	"github.com/pagecms/internal/content"
	"github.com/pagecms/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPageNotFound = errors.New("page not found")
	ErrSlugTaken    = errors.New("page slug already exists")
)

// PageService provides CRUD access to pages keyed by slug.
type PageService struct {
	db *gorm.DB
}

// NewPageService returns a new PageService instance.
func NewPageService(gdb *gorm.DB) *PageService {
	return &PageService{db: gdb}
}

// PageInput represents fields accepted when creating a page.
type PageInput struct {
	Title   string
	Slug    string
	Status  string
	Order   int
	Content content.Blocks
}

// PageUpdate carries partial updates; nil fields are left untouched.
// The slug is never part of an update, it is the page's external identity.
type PageUpdate struct {
	Title   *string
	Status  *string
	Order   *int
	Content *content.Blocks
}

// Create persists a new page. The slug must be unused.
func (s *PageService) Create(input PageInput) (*db.Page, error) {
	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = db.PageStatusDraft
	}

	raw, err := input.Content.JSON()
	if err != nil {
		return nil, err
	}

	page := db.Page{
		Title:     strings.TrimSpace(input.Title),
		Slug:      strings.TrimSpace(input.Slug),
		Status:    status,
		SortOrder: input.Order,
		Content:   raw,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&db.Page{}).Where("slug = ?", page.Slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrSlugTaken
		}
		return tx.Create(&page).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	return &page, nil
}

// Update applies the supplied fields to an existing page in a single
// transaction.
func (s *PageService) Update(id uint, update PageUpdate) (*db.Page, error) {
	var page db.Page
	if err := s.db.First(&page, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}

	if update.Title != nil {
		page.Title = strings.TrimSpace(*update.Title)
	}
	if update.Status != nil {
		page.Status = strings.TrimSpace(*update.Status)
	}
	if update.Order != nil {
		page.SortOrder = *update.Order
	}
	if update.Content != nil {
		raw, err := update.Content.JSON()
		if err != nil {
			return nil, err
		}
		page.Content = raw
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Save(&page).Error
	}); err != nil {
		return nil, err
	}

	return &page, nil
}

// GetBySlug fetches a page regardless of status.
func (s *PageService) GetBySlug(slug string) (*db.Page, error) {
	var page db.Page
	if err := s.db.Where("slug = ?", slug).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// Get fetches a page by id.
func (s *PageService) Get(id uint) (*db.Page, error) {
	var page db.Page
	if err := s.db.First(&page, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// List returns pages ordered ascending by their sort order. An empty status
// returns every page.
func (s *PageService) List(status string) ([]db.Page, error) {
	query := s.db.Model(&db.Page{}).Order("sort_order asc, id asc")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var pages []db.Page
	if err := query.Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

// Delete removes a page permanently.
func (s *PageService) Delete(id uint) error {
	result := s.db.Delete(&db.Page{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPageNotFound
	}
	return nil
}
