package handler

import (
	"errors"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/pagecms/internal/db"
	"github.com/pagecms/internal/service"
	"gorm.io/datatypes"
)

type categoryRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type articleSummary struct {
	ID        uint           `json:"id"`
	Title     string         `json:"title"`
	Slug      string         `json:"slug"`
	Excerpt   string         `json:"excerpt,omitempty"`
	Image     string         `json:"image,omitempty"`
	Tags      datatypes.JSON `json:"tags,omitempty"`
	Category  *categoryRef   `json:"category,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type articleDetail struct {
	articleSummary
	Content     string `json:"content"`
	ContentHTML string `json:"content_html"`
}

type pagedList struct {
	Items      any   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
}

func newArticleSummary(article *db.Article) articleSummary {
	summary := articleSummary{
		ID:        article.ID,
		Title:     article.Title,
		Slug:      article.Slug,
		Excerpt:   article.Excerpt,
		Image:     article.Image,
		Tags:      article.Tags,
		CreatedAt: article.CreatedAt,
		UpdatedAt: article.UpdatedAt,
	}
	if article.Category != nil {
		summary.Category = &categoryRef{
			ID:   article.Category.ID,
			Name: article.Category.Name,
			Slug: article.Category.Slug,
		}
	}
	return summary
}

func newArticleDetail(article *db.Article) articleDetail {
	return articleDetail{
		articleSummary: newArticleSummary(article),
		Content:        article.Content,
		ContentHTML:    service.RenderMarkdown(article.Content),
	}
}

func articlePage(result *service.ArticleListResult) pagedList {
	items := make([]articleSummary, 0, len(result.Articles))
	for i := range result.Articles {
		items = append(items, newArticleSummary(&result.Articles[i]))
	}
	return pagedList{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PerPage:    result.PerPage,
		TotalPages: result.TotalPages,
	}
}

// ListArticles returns paginated articles newest first.
func (a *API) ListArticles(c *gin.Context) {
	page, perPage := paginationQuery(c)
	result, err := a.articles.List(page, perPage)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, articlePage(result))
}

// ListArticlesByTag returns paginated articles carrying the given tag.
func (a *API) ListArticlesByTag(c *gin.Context) {
	page, perPage := paginationQuery(c)
	tag := c.Param("tag")

	result, err := a.articles.ListByTag(tag, page, perPage)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    articlePage(result),
		"tag":     tag,
	})
}

// ShowArticle returns one article with its rendered body.
func (a *API) ShowArticle(c *gin.Context) {
	article, err := a.articles.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			respondError(c, http.StatusNotFound, "Article not found")
			return
		}
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, newArticleDetail(article))
}

type articlePayload struct {
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Excerpt    string   `json:"excerpt"`
	Content    string   `json:"content"`
	Image      string   `json:"image"`
	Tags       []string `json:"tags"`
	CategoryID *uint    `json:"category_id"`
}

func validateArticlePayload(payload articlePayload, withSlug bool) service.ValidationErrors {
	violations := make(service.ValidationErrors)

	if payload.Title == "" {
		violations.Add("title", "is required")
	} else if utf8.RuneCountInString(payload.Title) > 255 {
		violations.Add("title", "must be at most 255 characters")
	}

	if withSlug {
		switch {
		case payload.Slug == "":
			violations.Add("slug", "is required")
		case !slugPattern.MatchString(payload.Slug):
			violations.Add("slug", "must contain only lowercase letters, digits and hyphens")
		}
	}

	return violations
}

// AdminCreateArticle creates an article.
func (a *API) AdminCreateArticle(c *gin.Context) {
	var payload articlePayload
	if !bindJSON(c, &payload) {
		return
	}

	if violations := validateArticlePayload(payload, true); !violations.Empty() {
		respondValidation(c, violations)
		return
	}

	article, err := a.articles.Create(service.ArticleInput{
		Title:      payload.Title,
		Slug:       payload.Slug,
		Excerpt:    payload.Excerpt,
		Content:    payload.Content,
		Image:      payload.Image,
		Tags:       payload.Tags,
		CategoryID: payload.CategoryID,
	})
	if err != nil {
		if errors.Is(err, service.ErrArticleSlugTaken) {
			violations := make(service.ValidationErrors)
			violations.Add("slug", "is already in use")
			respondValidation(c, violations)
			return
		}
		respondServiceError(c, err)
		return
	}

	respondCreated(c, "Article created", newArticleDetail(article))
}

// AdminUpdateArticle applies updates to an existing article.
func (a *API) AdminUpdateArticle(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var payload articlePayload
	if !bindJSON(c, &payload) {
		return
	}

	if violations := validateArticlePayload(payload, false); !violations.Empty() {
		respondValidation(c, violations)
		return
	}

	article, err := a.articles.Update(id, service.ArticleInput{
		Title:      payload.Title,
		Excerpt:    payload.Excerpt,
		Content:    payload.Content,
		Image:      payload.Image,
		Tags:       payload.Tags,
		CategoryID: payload.CategoryID,
	})
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			respondError(c, http.StatusNotFound, "Article not found")
			return
		}
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, newArticleDetail(article))
}

// AdminDeleteArticle soft-deletes an article.
func (a *API) AdminDeleteArticle(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.articles.Delete(id); err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			respondError(c, http.StatusNotFound, "Article not found")
			return
		}
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Article deleted")
}
