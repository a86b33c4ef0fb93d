package service

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/pagecms/internal/content"
	"github.com/pagecms/internal/db"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PageRenderService produces the externally servable form of a published
// page, expanding model_list blocks against live data. Stored content is
// never mutated; the resolved copy exists only in the response.
type PageRenderService struct {
	db       *gorm.DB
	fetchers map[string]modelFetcher
}

// NewPageRenderService returns a renderer with the closed fetcher registry
// for the three referencable collections.
func NewPageRenderService(gdb *gorm.DB) *PageRenderService {
	s := &PageRenderService{db: gdb}
	s.fetchers = map[string]modelFetcher{
		content.ModelArticles:   (*PageRenderService).fetchArticles,
		content.ModelNews:       (*PageRenderService).fetchNews,
		content.ModelCategories: (*PageRenderService).fetchCategories,
	}
	return s
}

type modelFetcher func(*PageRenderService, int, string) (any, error)

// RenderedPage is the read-API shape of a page.
type RenderedPage struct {
	ID        uint            `json:"id"`
	Title     string          `json:"title"`
	Slug      string          `json:"slug"`
	Content   []RenderedBlock `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// RenderedBlock mirrors a stored block. For model_list blocks Data carries
// the reference fields plus a transient "items" key; every other type is the
// stored payload verbatim.
type RenderedBlock struct {
	Type content.BlockType `json:"type"`
	Data any               `json:"data,omitempty"`
}

// Render resolves the page behind slug for public consumption. Draft pages
// are indistinguishable from missing ones.
func (s *PageRenderService) Render(slug string) (*RenderedPage, error) {
	var page db.Page
	err := s.db.Where("slug = ? AND status = ?", slug, db.PageStatusPublished).First(&page).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}

	rendered, err := s.renderContent(page.Content)
	if err != nil {
		return nil, err
	}

	return &RenderedPage{
		ID:        page.ID,
		Title:     page.Title,
		Slug:      page.Slug,
		Content:   rendered,
		CreatedAt: page.CreatedAt,
		UpdatedAt: page.UpdatedAt,
	}, nil
}

func (s *PageRenderService) renderContent(stored datatypes.JSON) ([]RenderedBlock, error) {
	blocks, err := content.ParseBlocks(stored)
	if err != nil {
		return nil, err
	}

	rendered := make([]RenderedBlock, 0, len(blocks))
	for _, block := range blocks {
		if block.Type != content.BlockModelList {
			rendered = append(rendered, RenderedBlock{Type: block.Type, Data: block.Data})
			continue
		}

		resolved, err := s.resolveModelList(block.Data)
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, RenderedBlock{Type: block.Type, Data: resolved})
	}
	return rendered, nil
}

// resolveModelList expands one model_list reference. Unknown models resolve
// to an empty item list and unknown orderings fall back to newest first;
// neither is an error.
func (s *PageRenderService) resolveModelList(raw json.RawMessage) (map[string]any, error) {
	data := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, err
		}
	}

	var ref content.ModelListData
	if len(raw) > 0 {
		// A malformed reference keeps the permissive path: zero values
		// below resolve to defaults and an empty item list.
		_ = json.Unmarshal(raw, &ref)
	}
	ref.ApplyDefaults()

	items := any([]any{})
	if fetch, ok := s.fetchers[ref.Model]; ok {
		fetched, err := fetch(s, ref.Limit, ref.OrderBy)
		if err != nil {
			return nil, err
		}
		items = fetched
	}

	data["items"] = items
	return data, nil
}

// ArticleItem is one resolved entry of an articles model_list.
type ArticleItem struct {
	ID         uint           `json:"id"`
	Title      string         `json:"title"`
	Slug       string         `json:"slug"`
	Excerpt    string         `json:"excerpt,omitempty"`
	Image      string         `json:"image,omitempty"`
	Tags       datatypes.JSON `json:"tags,omitempty"`
	CategoryID *uint          `json:"category_id,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// NewsItem is one resolved entry of a news model_list.
type NewsItem struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Excerpt   string    `json:"excerpt,omitempty"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryItem is one resolved entry of a categories model_list.
type CategoryItem struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (s *PageRenderService) fetchArticles(limit int, orderBy string) (any, error) {
	var articles []db.Article
	if err := s.db.Order(resolveOrder(orderBy, "title")).Limit(limit).Find(&articles).Error; err != nil {
		return nil, err
	}

	items := make([]ArticleItem, 0, len(articles))
	for _, a := range articles {
		items = append(items, ArticleItem{
			ID:         a.ID,
			Title:      a.Title,
			Slug:       a.Slug,
			Excerpt:    a.Excerpt,
			Image:      a.Image,
			Tags:       a.Tags,
			CategoryID: a.CategoryID,
			CreatedAt:  a.CreatedAt,
		})
	}
	return items, nil
}

func (s *PageRenderService) fetchNews(limit int, orderBy string) (any, error) {
	var news []db.News
	if err := s.db.Order(resolveOrder(orderBy, "title")).Limit(limit).Find(&news).Error; err != nil {
		return nil, err
	}

	items := make([]NewsItem, 0, len(news))
	for _, n := range news {
		items = append(items, NewsItem{
			ID:        n.ID,
			Title:     n.Title,
			Slug:      n.Slug,
			Excerpt:   n.Excerpt,
			Image:     n.Image,
			CreatedAt: n.CreatedAt,
		})
	}
	return items, nil
}

func (s *PageRenderService) fetchCategories(limit int, orderBy string) (any, error) {
	// Categories carry a name instead of a title; the title orderings map
	// onto it.
	var categories []db.Category
	if err := s.db.Order(resolveOrder(orderBy, "name")).Limit(limit).Find(&categories).Error; err != nil {
		return nil, err
	}

	items := make([]CategoryItem, 0, len(categories))
	for _, c := range categories {
		items = append(items, CategoryItem{
			ID:          c.ID,
			Name:        c.Name,
			Slug:        c.Slug,
			Description: c.Description,
			CreatedAt:   c.CreatedAt,
		})
	}
	return items, nil
}

func resolveOrder(orderBy, titleColumn string) string {
	switch orderBy {
	case content.OrderCreatedAtAsc:
		return "created_at asc"
	case content.OrderTitleAsc:
		return titleColumn + " asc"
	case content.OrderTitleDesc:
		return titleColumn + " desc"
	default:
		return "created_at desc"
	}
}
