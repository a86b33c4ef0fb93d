package handler

import (
	"errors"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/pagecms/internal/db"
	"github.com/pagecms/internal/service"
)

type newsSummary struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Excerpt   string    `json:"excerpt,omitempty"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type newsDetail struct {
	newsSummary
	Content     string `json:"content"`
	ContentHTML string `json:"content_html"`
}

func newNewsSummary(item *db.News) newsSummary {
	return newsSummary{
		ID:        item.ID,
		Title:     item.Title,
		Slug:      item.Slug,
		Excerpt:   item.Excerpt,
		Image:     item.Image,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func newNewsDetail(item *db.News) newsDetail {
	return newsDetail{
		newsSummary: newNewsSummary(item),
		Content:     item.Content,
		ContentHTML: service.RenderMarkdown(item.Content),
	}
}

// ListNews returns paginated news items newest first.
func (a *API) ListNews(c *gin.Context) {
	page, perPage := paginationQuery(c)
	result, err := a.news.List(page, perPage)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	items := make([]newsSummary, 0, len(result.News))
	for i := range result.News {
		items = append(items, newNewsSummary(&result.News[i]))
	}

	respondData(c, http.StatusOK, pagedList{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PerPage:    result.PerPage,
		TotalPages: result.TotalPages,
	})
}

// ShowNews returns one news item with its rendered body.
func (a *API) ShowNews(c *gin.Context) {
	item, err := a.news.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrNewsNotFound) {
			respondError(c, http.StatusNotFound, "News not found")
			return
		}
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, newNewsDetail(item))
}

type newsPayload struct {
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Excerpt string `json:"excerpt"`
	Content string `json:"content"`
	Image   string `json:"image"`
}

func validateNewsPayload(payload newsPayload, withSlug bool) service.ValidationErrors {
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

// AdminCreateNews creates a news item.
func (a *API) AdminCreateNews(c *gin.Context) {
	var payload newsPayload
	if !bindJSON(c, &payload) {
		return
	}

	if violations := validateNewsPayload(payload, true); !violations.Empty() {
		respondValidation(c, violations)
		return
	}

	item, err := a.news.Create(service.NewsInput{
		Title:   payload.Title,
		Slug:    payload.Slug,
		Excerpt: payload.Excerpt,
		Content: payload.Content,
		Image:   payload.Image,
	})
	if err != nil {
		if errors.Is(err, service.ErrNewsSlugTaken) {
			violations := make(service.ValidationErrors)
			violations.Add("slug", "is already in use")
			respondValidation(c, violations)
			return
		}
		respondServiceError(c, err)
		return
	}

	respondCreated(c, "News created", newNewsDetail(item))
}

// AdminUpdateNews applies updates to an existing news item.
func (a *API) AdminUpdateNews(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var payload newsPayload
	if !bindJSON(c, &payload) {
		return
	}

	if violations := validateNewsPayload(payload, false); !violations.Empty() {
		respondValidation(c, violations)
		return
	}

	item, err := a.news.Update(id, service.NewsInput{
		Title:   payload.Title,
		Excerpt: payload.Excerpt,
		Content: payload.Content,
		Image:   payload.Image,
	})
	if err != nil {
		if errors.Is(err, service.ErrNewsNotFound) {
			respondError(c, http.StatusNotFound, "News not found")
			return
		}
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, newNewsDetail(item))
}

// AdminDeleteNews soft-deletes a news item.
func (a *API) AdminDeleteNews(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.news.Delete(id); err != nil {
		if errors.Is(err, service.ErrNewsNotFound) {
			respondError(c, http.StatusNotFound, "News not found")
			return
		}
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "News deleted")
}
