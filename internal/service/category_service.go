package service

import (
	"errors"
	"strings"

	"github.com/pagecms/internal/db"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategorySlugTaken = errors.New("category slug already exists")
)

// CategoryService wraps category related database operations.
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a CategoryService instance.
func NewCategoryService(gdb *gorm.DB) *CategoryService {
	return &CategoryService{db: gdb}
}

// CategoryWithCount carries a category together with its article count.
type CategoryWithCount struct {
	db.Category
	ArticlesCount int64 `json:"articles_count"`
}

// CategoryInput represents fields accepted when creating or updating a
// category.
type CategoryInput struct {
	Name        string
	Slug        string
	Description string
}

const categoryCountSelect = "categories.*, " +
	"(select count(*) from articles where articles.category_id = categories.id and articles.deleted_at is null) as articles_count"

// List returns every category ordered by name with article counts.
func (s *CategoryService) List() ([]CategoryWithCount, error) {
	var categories []CategoryWithCount
	if err := s.db.Model(&db.Category{}).
		Select(categoryCountSelect).
		Order("name asc").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetBySlug fetches a category with its article count.
func (s *CategoryService) GetBySlug(slug string) (*CategoryWithCount, error) {
	var category CategoryWithCount
	err := s.db.Model(&db.Category{}).
		Select(categoryCountSelect).
		Where("categories.slug = ?", slug).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// Create persists a new category.
func (s *CategoryService) Create(input CategoryInput) (*db.Category, error) {
	category := db.Category{
		Name:        strings.TrimSpace(input.Name),
		Slug:        strings.TrimSpace(input.Slug),
		Description: strings.TrimSpace(input.Description),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&db.Category{}).Where("slug = ?", category.Slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrCategorySlugTaken
		}
		return tx.Create(&category).Error
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Update applies updates to an existing category.
func (s *CategoryService) Update(id uint, input CategoryInput) (*db.Category, error) {
	var existing db.Category
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	existing.Name = strings.TrimSpace(input.Name)
	existing.Description = strings.TrimSpace(input.Description)

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Save(&existing).Error
	}); err != nil {
		return nil, err
	}
	return &existing, nil
}

// Delete soft-deletes a category. Its articles keep their category_id and
// simply lose the association on reads.
func (s *CategoryService) Delete(id uint) error {
	result := s.db.Delete(&db.Category{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
