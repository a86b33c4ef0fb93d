package service

import (
	"errors"
	"testing"

	"github.com/pagecms/internal/db"
)

func TestCategoryListWithCounts(t *testing.T) {
	gdb := setupServiceTestDB(t)
	categories := NewCategoryService(gdb)
	articles := NewArticleService(gdb)

	guides, err := categories.Create(CategoryInput{Name: "Guides", Slug: "guides"})
	if err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	if _, err := categories.Create(CategoryInput{Name: "Announcements", Slug: "announcements"}); err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	for _, slug := range []string{"a", "b"} {
		if _, err := articles.Create(ArticleInput{Title: "T " + slug, Slug: slug, CategoryID: &guides.ID}); err != nil {
			t.Fatalf("failed to create article %s: %v", slug, err)
		}
	}

	list, err := categories.List()
	if err != nil {
		t.Fatalf("failed to list categories: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(list))
	}
	if list[0].Name != "Announcements" || list[1].Name != "Guides" {
		t.Errorf("expected name ordering, got %s, %s", list[0].Name, list[1].Name)
	}
	if list[1].ArticlesCount != 2 {
		t.Errorf("expected 2 articles in Guides, got %d", list[1].ArticlesCount)
	}
	if list[0].ArticlesCount != 0 {
		t.Errorf("expected 0 articles in Announcements, got %d", list[0].ArticlesCount)
	}
}

func TestCategoryCountExcludesSoftDeletedArticles(t *testing.T) {
	gdb := setupServiceTestDB(t)
	categories := NewCategoryService(gdb)
	articles := NewArticleService(gdb)

	guides, err := categories.Create(CategoryInput{Name: "Guides", Slug: "guides"})
	if err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	article, err := articles.Create(ArticleInput{Title: "T", Slug: "t", CategoryID: &guides.ID})
	if err != nil {
		t.Fatalf("failed to create article: %v", err)
	}
	if err := articles.Delete(article.ID); err != nil {
		t.Fatalf("failed to delete article: %v", err)
	}

	got, err := categories.GetBySlug("guides")
	if err != nil {
		t.Fatalf("failed to fetch category: %v", err)
	}
	if got.ArticlesCount != 0 {
		t.Errorf("expected deleted articles excluded from count, got %d", got.ArticlesCount)
	}
}

func TestCategoryCreateRejectsDuplicateSlug(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewCategoryService(gdb)

	if _, err := svc.Create(CategoryInput{Name: "One", Slug: "dup"}); err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	if _, err := svc.Create(CategoryInput{Name: "Two", Slug: "dup"}); !errors.Is(err, ErrCategorySlugTaken) {
		t.Fatalf("expected ErrCategorySlugTaken, got %v", err)
	}
}

func TestCategoryUpdateAndDelete(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewCategoryService(gdb)

	category, err := svc.Create(CategoryInput{Name: "Old", Slug: "cat", Description: "before"})
	if err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	updated, err := svc.Update(category.ID, CategoryInput{Name: "New", Description: "after"})
	if err != nil {
		t.Fatalf("failed to update category: %v", err)
	}
	if updated.Name != "New" || updated.Description != "after" || updated.Slug != "cat" {
		t.Errorf("unexpected updated category: %+v", updated)
	}

	if err := svc.Delete(category.ID); err != nil {
		t.Fatalf("failed to delete category: %v", err)
	}
	if _, err := svc.GetBySlug("cat"); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
	if err := svc.Delete(category.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound on second delete, got %v", err)
	}

	var count int64
	if err := gdb.Unscoped().Model(&db.Category{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count unscoped: %v", err)
	}
	if count != 1 {
		t.Errorf("expected soft-deleted row to remain, got %d", count)
	}
}
