package service

import (
	"errors"
	"strings"

	"github.com/pagecms/internal/db"
	"gorm.io/gorm"
)

var (
	ErrNewsNotFound  = errors.New("news item not found")
	ErrNewsSlugTaken = errors.New("news slug already exists")
)

// NewsService wraps news related database operations.
type NewsService struct {
	db *gorm.DB
}

// NewNewsService creates a NewsService instance.
func NewNewsService(gdb *gorm.DB) *NewsService {
	return &NewsService{db: gdb}
}

// NewsListResult aggregates paginated list data.
type NewsListResult struct {
	News       []db.News
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// NewsInput represents fields accepted when creating or updating a news
// item.
type NewsInput struct {
	Title   string
	Slug    string
	Excerpt string
	Content string
	Image   string
}

// List provides news items newest first.
func (s *NewsService) List(page, perPage int) (*NewsListResult, error) {
	result := &NewsListResult{Page: page, PerPage: perPage}
	if result.Page <= 0 {
		result.Page = 1
	}
	if result.PerPage <= 0 {
		result.PerPage = 15
	}

	query := s.db.Model(&db.News{})
	if err := query.Count(&result.Total).Error; err != nil {
		return nil, err
	}

	offset := (result.Page - 1) * result.PerPage
	if err := query.
		Order("created_at desc, id desc").
		Limit(result.PerPage).
		Offset(offset).
		Find(&result.News).Error; err != nil {
		return nil, err
	}

	if result.Total == 0 {
		result.TotalPages = 1
	} else {
		result.TotalPages = int((result.Total + int64(result.PerPage) - 1) / int64(result.PerPage))
	}
	return result, nil
}

// GetBySlug fetches a news item by slug.
func (s *NewsService) GetBySlug(slug string) (*db.News, error) {
	var item db.News
	if err := s.db.Where("slug = ?", slug).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create persists a new news item.
func (s *NewsService) Create(input NewsInput) (*db.News, error) {
	item := db.News{
		Title:   strings.TrimSpace(input.Title),
		Slug:    strings.TrimSpace(input.Slug),
		Excerpt: strings.TrimSpace(input.Excerpt),
		Content: input.Content,
		Image:   strings.TrimSpace(input.Image),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&db.News{}).Where("slug = ?", item.Slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrNewsSlugTaken
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Update applies updates to an existing news item.
func (s *NewsService) Update(id uint, input NewsInput) (*db.News, error) {
	var existing db.News
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}

	existing.Title = strings.TrimSpace(input.Title)
	existing.Excerpt = strings.TrimSpace(input.Excerpt)
	existing.Content = input.Content
	existing.Image = strings.TrimSpace(input.Image)

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Save(&existing).Error
	}); err != nil {
		return nil, err
	}
	return &existing, nil
}

// Delete soft-deletes a news item.
func (s *NewsService) Delete(id uint) error {
	result := s.db.Delete(&db.News{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNewsNotFound
	}
	return nil
}
