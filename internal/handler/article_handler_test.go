package handler

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pagecms/internal/db"
	"github.com/pagecms/internal/service"
)

func seedArticle(t *testing.T, api *API, input service.ArticleInput) *db.Article {
	t.Helper()
	article, err := service.NewArticleService(api.DB()).Create(input)
	if err != nil {
		t.Fatalf("failed to seed article %s: %v", input.Slug, err)
	}
	return article
}

func TestListArticles(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	seedArticle(t, api, service.ArticleInput{Title: "One", Slug: "one"})
	seedArticle(t, api, service.ArticleInput{Title: "Two", Slug: "two"})

	w, c := jsonRequest(t, http.MethodGet, "/api/v1/articles", nil)
	api.ListArticles(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	envelope := decodeEnvelope(t, w)
	data := envelope["data"].(map[string]any)
	if data["total"] != float64(2) {
		t.Errorf("expected total 2, got %v", data["total"])
	}
	items := data["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if _, ok := items[0].(map[string]any)["content"]; ok {
		t.Error("expected list entries to omit the article body")
	}
}

func TestShowArticleRendersMarkdown(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	seedArticle(t, api, service.ArticleInput{
		Title:   "Post",
		Slug:    "post",
		Content: "# Heading\n\nSome **bold** text.",
	})

	w, c := jsonRequest(t, http.MethodGet, "/api/v1/articles/post", nil)
	c.Params = gin.Params{{Key: "slug", Value: "post"}}
	api.ShowArticle(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	envelope := decodeEnvelope(t, w)
	data := envelope["data"].(map[string]any)
	if data["content"] != "# Heading\n\nSome **bold** text." {
		t.Errorf("expected raw markdown preserved, got %v", data["content"])
	}
	html := data["content_html"].(string)
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("expected rendered markdown, got %s", html)
	}
}

func TestShowArticleNotFound(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	w, c := jsonRequest(t, http.MethodGet, "/api/v1/articles/missing", nil)
	c.Params = gin.Params{{Key: "slug", Value: "missing"}}
	api.ShowArticle(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestListArticlesByTag(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	seedArticle(t, api, service.ArticleInput{Title: "Tagged", Slug: "tagged", Tags: []string{"go"}})
	seedArticle(t, api, service.ArticleInput{Title: "Other", Slug: "other"})

	w, c := jsonRequest(t, http.MethodGet, "/api/v1/articles/tag/go", nil)
	c.Params = gin.Params{{Key: "tag", Value: "go"}}
	api.ListArticlesByTag(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	envelope := decodeEnvelope(t, w)
	if envelope["tag"] != "go" {
		t.Errorf("expected tag echoed, got %v", envelope["tag"])
	}
	data := envelope["data"].(map[string]any)
	if data["total"] != float64(1) {
		t.Errorf("expected 1 tagged article, got %v", data["total"])
	}
}

func TestAdminCreateArticle(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	category := db.Category{Name: "Guides", Slug: "guides"}
	if err := api.DB().Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	payload := map[string]any{
		"title":       "New Post",
		"slug":        "new-post",
		"excerpt":     "short",
		"content":     "body",
		"tags":        []string{"go"},
		"category_id": category.ID,
	}
	w, c := jsonRequest(t, http.MethodPost, "/admin/api/articles", payload)
	api.AdminCreateArticle(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	api.DB().Model(&db.Article{}).Where("slug = ?", "new-post").Count(&count)
	if count != 1 {
		t.Fatalf("expected article created, found %d", count)
	}
}

func TestAdminCreateArticleDuplicateSlug(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	seedArticle(t, api, service.ArticleInput{Title: "One", Slug: "dup"})

	w, c := jsonRequest(t, http.MethodPost, "/admin/api/articles", map[string]any{"title": "Two", "slug": "dup"})
	api.AdminCreateArticle(c)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", w.Code)
	}
}

func TestAdminUpdateAndDeleteArticle(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	article := seedArticle(t, api, service.ArticleInput{Title: "Old", Slug: "post"})

	w, c := jsonRequest(t, http.MethodPut, fmt.Sprintf("/admin/api/articles/%d", article.ID), map[string]any{"title": "New"})
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(article.ID)}}
	api.AdminUpdateArticle(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	w, c = jsonRequest(t, http.MethodDelete, fmt.Sprintf("/admin/api/articles/%d", article.ID), nil)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(article.ID)}}
	api.AdminDeleteArticle(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var count int64
	api.DB().Model(&db.Article{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no visible articles, found %d", count)
	}
}
