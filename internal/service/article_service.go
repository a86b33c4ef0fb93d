package service

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/pagecms/internal/db"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrArticleNotFound  = errors.New("article not found")
	ErrArticleSlugTaken = errors.New("article slug already exists")
)

// ArticleService wraps article related database operations.
type ArticleService struct {
	db *gorm.DB
}

// NewArticleService creates an ArticleService instance.
func NewArticleService(gdb *gorm.DB) *ArticleService {
	return &ArticleService{db: gdb}
}

// ArticleListResult aggregates paginated list data.
type ArticleListResult struct {
	Articles   []db.Article
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// ArticleInput represents fields accepted when creating or updating an
// article.
type ArticleInput struct {
	Title      string
	Slug       string
	Excerpt    string
	Content    string
	Image      string
	Tags       []string
	CategoryID *uint
}

// List provides articles newest first with their category preloaded.
func (s *ArticleService) List(page, perPage int) (*ArticleListResult, error) {
	return s.list(s.db.Model(&db.Article{}), page, perPage)
}

// ListByTag provides articles whose tag array contains the given tag.
func (s *ArticleService) ListByTag(tag string, page, perPage int) (*ArticleListResult, error) {
	// Tags are stored as a JSON string array; matching the quoted literal
	// inside the serialized column keeps the query portable on sqlite.
	quoted, err := json.Marshal(tag)
	if err != nil {
		return nil, err
	}
	query := s.db.Model(&db.Article{}).Where("tags LIKE ?", "%"+string(quoted)+"%")
	return s.list(query, page, perPage)
}

// ListByCategory provides the articles of one category newest first.
func (s *ArticleService) ListByCategory(categoryID uint, page, perPage int) (*ArticleListResult, error) {
	query := s.db.Model(&db.Article{}).Where("category_id = ?", categoryID)
	return s.list(query, page, perPage)
}

func (s *ArticleService) list(query *gorm.DB, page, perPage int) (*ArticleListResult, error) {
	result := &ArticleListResult{Page: page, PerPage: perPage}
	if result.Page <= 0 {
		result.Page = 1
	}
	if result.PerPage <= 0 {
		result.PerPage = 15
	}

	if err := query.Count(&result.Total).Error; err != nil {
		return nil, err
	}

	offset := (result.Page - 1) * result.PerPage
	if err := query.
		Preload("Category").
		Order("created_at desc, id desc").
		Limit(result.PerPage).
		Offset(offset).
		Find(&result.Articles).Error; err != nil {
		return nil, err
	}

	if result.Total == 0 {
		result.TotalPages = 1
	} else {
		result.TotalPages = int((result.Total + int64(result.PerPage) - 1) / int64(result.PerPage))
	}
	return result, nil
}

// GetBySlug fetches an article with its category preloaded.
func (s *ArticleService) GetBySlug(slug string) (*db.Article, error) {
	var article db.Article
	if err := s.db.Preload("Category").Where("slug = ?", slug).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return &article, nil
}

// Create persists a new article.
func (s *ArticleService) Create(input ArticleInput) (*db.Article, error) {
	tags, err := marshalTags(input.Tags)
	if err != nil {
		return nil, err
	}

	article := db.Article{
		Title:      strings.TrimSpace(input.Title),
		Slug:       strings.TrimSpace(input.Slug),
		Excerpt:    strings.TrimSpace(input.Excerpt),
		Content:    input.Content,
		Image:      strings.TrimSpace(input.Image),
		Tags:       tags,
		CategoryID: input.CategoryID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&db.Article{}).Where("slug = ?", article.Slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrArticleSlugTaken
		}
		return tx.Create(&article).Error
	})
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// Update applies updates to an existing article.
func (s *ArticleService) Update(id uint, input ArticleInput) (*db.Article, error) {
	var existing db.Article
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}

	tags, err := marshalTags(input.Tags)
	if err != nil {
		return nil, err
	}

	existing.Title = strings.TrimSpace(input.Title)
	existing.Excerpt = strings.TrimSpace(input.Excerpt)
	existing.Content = input.Content
	existing.Image = strings.TrimSpace(input.Image)
	existing.Tags = tags
	existing.CategoryID = input.CategoryID

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Save(&existing).Error
	}); err != nil {
		return nil, err
	}
	return &existing, nil
}

// Delete soft-deletes an article.
func (s *ArticleService) Delete(id uint) error {
	result := s.db.Delete(&db.Article{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrArticleNotFound
	}
	return nil
}

func marshalTags(tags []string) (datatypes.JSON, error) {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
