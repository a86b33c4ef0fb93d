package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/pagecms/internal/handler"
)

// Options carries what route wiring needs beyond the handler set.
type Options struct {
	SessionSecret string
	UploadDir     string
	UploadURLPath string
}

// SetupRouter wires the public read API and the session-guarded admin API.
func SetupRouter(api *handler.API, opts Options) *gin.Engine {
	r := gin.Default()

	secret := opts.SessionSecret
	if secret == "" {
		secret = "pagecms-dev-secret"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("pagecms_session", store))

	if opts.UploadDir != "" && opts.UploadURLPath != "" {
		r.Static(opts.UploadURLPath, opts.UploadDir)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// 公开只读 API，供独立前端消费
	v1 := r.Group("/api/v1")
	{
		v1.GET("/pages", api.ListPages)
		v1.GET("/pages/:slug", api.ShowPage)

		v1.GET("/articles", api.ListArticles)
		v1.GET("/articles/tag/:tag", api.ListArticlesByTag)
		v1.GET("/articles/:slug", api.ShowArticle)

		v1.GET("/categories", api.ListCategories)
		v1.GET("/categories/:slug", api.ShowCategory)
		v1.GET("/categories/:slug/articles", api.ListCategoryArticles)

		v1.GET("/news", api.ListNews)
		v1.GET("/news/:slug", api.ShowNews)

		v1.POST("/contact", api.SubmitContact)
		v1.POST("/subscribe", api.Subscribe)
	}

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.POST("/login", api.Login)
		admin.POST("/logout", api.Logout)

		// 需要认证的后台路由
		auth := admin.Group("/api")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/blocks", api.BlockSpecs)

			auth.GET("/pages", api.AdminListPages)
			auth.GET("/pages/:id", api.AdminGetPage)
			auth.POST("/pages", api.CreatePage)
			auth.PUT("/pages/:id", api.UpdatePage)
			auth.DELETE("/pages/:id", api.DeletePage)

			auth.POST("/articles", api.AdminCreateArticle)
			auth.PUT("/articles/:id", api.AdminUpdateArticle)
			auth.DELETE("/articles/:id", api.AdminDeleteArticle)

			auth.POST("/news", api.AdminCreateNews)
			auth.PUT("/news/:id", api.AdminUpdateNews)
			auth.DELETE("/news/:id", api.AdminDeleteNews)

			auth.POST("/categories", api.AdminCreateCategory)
			auth.PUT("/categories/:id", api.AdminUpdateCategory)
			auth.DELETE("/categories/:id", api.AdminDeleteCategory)

			auth.GET("/contacts", api.AdminListContacts)
			auth.PUT("/contacts/:id/status", api.AdminUpdateContactStatus)

			auth.GET("/mailing-list", api.AdminListMailingList)

			auth.POST("/uploads", api.UploadImage)
		}
	}

	return r
}
