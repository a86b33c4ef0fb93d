package handler

import (
	"github.com/pagecms/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	pages      *service.PageService
	renderer   *service.PageRenderService
	articles   *service.ArticleService
	news       *service.NewsService
	categories *service.CategoryService
	contacts   *service.ContactService
	mailing    *service.MailingService
	uploadDir  string
	uploadURL  string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, uploadDir, uploadURL string) *API {
	return &API{
		db:         gdb,
		pages:      service.NewPageService(gdb),
		renderer:   service.NewPageRenderService(gdb),
		articles:   service.NewArticleService(gdb),
		news:       service.NewNewsService(gdb),
		categories: service.NewCategoryService(gdb),
		contacts:   service.NewContactService(gdb),
		mailing:    service.NewMailingService(gdb),
		uploadDir:  uploadDir,
		uploadURL:  uploadURL,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}
