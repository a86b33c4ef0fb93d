package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pagecms/internal/service"
)

// ListCategories returns every category ordered by name with article
// counts.
func (a *API) ListCategories(c *gin.Context) {
	categories, err := a.categories.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, categories)
}

// ShowCategory returns one category by slug.
func (a *API) ShowCategory(c *gin.Context) {
	category, err := a.categories.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "Category not found")
			return
		}
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, category)
}

// ListCategoryArticles returns the paginated articles of one category.
func (a *API) ListCategoryArticles(c *gin.Context) {
	category, err := a.categories.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "Category not found")
			return
		}
		respondServiceError(c, err)
		return
	}

	page, perPage := paginationQuery(c)
	result, err := a.articles.ListByCategory(category.ID, page, perPage)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    articlePage(result),
		"category": gin.H{
			"id":          category.ID,
			"name":        category.Name,
			"slug":        category.Slug,
			"description": category.Description,
		},
	})
}

type categoryPayload struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// AdminCreateCategory creates a category.
func (a *API) AdminCreateCategory(c *gin.Context) {
	var payload categoryPayload
	if !bindJSON(c, &payload) {
		return
	}

	violations := make(service.ValidationErrors)
	if payload.Name == "" {
		violations.Add("name", "is required")
	}
	switch {
	case payload.Slug == "":
		violations.Add("slug", "is required")
	case !slugPattern.MatchString(payload.Slug):
		violations.Add("slug", "must contain only lowercase letters, digits and hyphens")
	}
	if !violations.Empty() {
		respondValidation(c, violations)
		return
	}

	category, err := a.categories.Create(service.CategoryInput{
		Name:        payload.Name,
		Slug:        payload.Slug,
		Description: payload.Description,
	})
	if err != nil {
		if errors.Is(err, service.ErrCategorySlugTaken) {
			violations := make(service.ValidationErrors)
			violations.Add("slug", "is already in use")
			respondValidation(c, violations)
			return
		}
		respondServiceError(c, err)
		return
	}

	respondCreated(c, "Category created", category)
}

// AdminUpdateCategory applies updates to an existing category.
func (a *API) AdminUpdateCategory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var payload categoryPayload
	if !bindJSON(c, &payload) {
		return
	}

	if payload.Name == "" {
		violations := make(service.ValidationErrors)
		violations.Add("name", "is required")
		respondValidation(c, violations)
		return
	}

	category, err := a.categories.Update(id, service.CategoryInput{
		Name:        payload.Name,
		Description: payload.Description,
	})
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "Category not found")
			return
		}
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, category)
}

// AdminDeleteCategory soft-deletes a category.
func (a *API) AdminDeleteCategory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.categories.Delete(id); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "Category not found")
			return
		}
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Category deleted")
}
