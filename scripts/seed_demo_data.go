package main

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/pagecms/internal/config"
	"github.com/pagecms/internal/content"
	"github.com/pagecms/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// Demo data generator: an admin account, a few categories, articles and news
// items, and a home page exercising every block type.
func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("failed to initialize database:", err)
	}

	fmt.Println("seeding demo data...")

	createAdminUser()
	createCategories()
	createArticles()
	createNews()
	createPages()

	fmt.Println("done")
	fmt.Println("admin user: admin (password: admin123)")
}

func createAdminUser() {
	var count int64
	db.DB.Model(&db.User{}).Count(&count)
	if count > 0 {
		fmt.Println("users already exist, skipping")
		return
	}

	hashed, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	db.DB.Create(&db.User{Username: "admin", Password: string(hashed)})
}

func createCategories() {
	var count int64
	db.DB.Model(&db.Category{}).Count(&count)
	if count > 0 {
		fmt.Println("categories already exist, skipping")
		return
	}

	categories := []db.Category{
		{Name: "Engineering", Slug: "engineering", Description: "Technical deep dives"},
		{Name: "Company", Slug: "company", Description: "Announcements and culture"},
		{Name: "Guides", Slug: "guides", Description: "How-to material"},
	}
	for i := range categories {
		db.DB.Create(&categories[i])
	}
}

func createArticles() {
	var count int64
	db.DB.Model(&db.Article{}).Count(&count)
	if count > 0 {
		fmt.Println("articles already exist, skipping")
		return
	}

	var engineering db.Category
	db.DB.Where("slug = ?", "engineering").First(&engineering)

	articles := []db.Article{
		{
			Title:      "Designing a Block-Based Page Model",
			Slug:       "designing-a-block-based-page-model",
			Excerpt:    "Why pages are sequences of typed sections.",
			Content:    "# Blocks\n\nPages compose **typed blocks** in authoring order.",
			Tags:       datatypes.JSON(`["architecture","cms"]`),
			CategoryID: &engineering.ID,
		},
		{
			Title:      "Migrating Content Between Environments",
			Slug:       "migrating-content-between-environments",
			Excerpt:    "Export, carry, import.",
			Content:    "Snapshots are plain JSON files you can diff and ship.",
			Tags:       datatypes.JSON(`["operations","cms"]`),
			CategoryID: &engineering.ID,
		},
		{
			Title:   "Welcome to the New Site",
			Slug:    "welcome-to-the-new-site",
			Excerpt: "A fresh start.",
			Content: "We rebuilt the site on a headless backend.",
			Tags:    datatypes.JSON(`["announcement"]`),
		},
	}
	for i := range articles {
		db.DB.Create(&articles[i])
	}
}

func createNews() {
	var count int64
	db.DB.Model(&db.News{}).Count(&count)
	if count > 0 {
		fmt.Println("news already exist, skipping")
		return
	}

	items := []db.News{
		{Title: "Office Hours Announced", Slug: "office-hours-announced", Content: "Every Friday afternoon."},
		{Title: "Platform Maintenance Window", Slug: "platform-maintenance-window", Content: "Sunday 02:00-04:00 UTC."},
	}
	for i := range items {
		db.DB.Create(&items[i])
	}
}

func createPages() {
	var count int64
	db.DB.Model(&db.Page{}).Count(&count)
	if count > 0 {
		fmt.Println("pages already exist, skipping")
		return
	}

	blocks := content.Blocks{
		block(content.BlockHero, map[string]any{
			"title": "We build reliable software",
			"text":  "<p>From idea to production.</p>",
		}),
		block(content.BlockTextSection, map[string]any{
			"title": "What we do",
			"text":  "<p>Consulting, engineering, training.</p>",
		}),
		block(content.BlockFAQ, map[string]any{
			"section_title": "Frequently Asked Questions",
			"items": []map[string]any{
				{"question": "Where are you based?", "answer": "<p>Everywhere remote.</p>"},
			},
		}),
		block(content.BlockModelList, map[string]any{
			"title":    "Latest articles",
			"model":    content.ModelArticles,
			"limit":    4,
			"order_by": content.OrderCreatedAtDesc,
		}),
	}

	raw, err := blocks.JSON()
	if err != nil {
		log.Fatal("failed to serialize demo blocks:", err)
	}

	db.DB.Create(&db.Page{
		Title:     "Home",
		Slug:      "home",
		Status:    db.PageStatusPublished,
		SortOrder: 1,
		Content:   raw,
	})
	db.DB.Create(&db.Page{
		Title:     "About (draft)",
		Slug:      "about",
		Status:    db.PageStatusDraft,
		SortOrder: 2,
	})
}

func block(t content.BlockType, data map[string]any) content.Block {
	raw, err := json.Marshal(data)
	if err != nil {
		log.Fatal("failed to marshal block data:", err)
	}
	return content.Block{Type: t, Data: raw}
}
