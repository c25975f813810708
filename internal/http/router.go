package http

import (
	"html/template"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Book titles appear in URL paths, so templates need a path-safe
	// escaper (urlquery encodes spaces as '+', which is wrong in a path).
	funcMap := template.FuncMap{
		"pathEscape": url.PathEscape,
	}

	tmpl := template.Must(template.New("").Funcs(funcMap).ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)

	router.Static("/static", cfg.StaticPath)

	catalogController := NewCatalogController(cfg.Store)
	booksController := NewBooksController(cfg.Store, cfg.AuditService)
	genresController := NewGenresController(cfg.Store)
	authorsController := NewAuthorsController(cfg.Store)
	healthController := NewHealthController(cfg.AuditDB, cfg.LibraryPath, cfg.Version)

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/catalog")
	})
	router.GET("/health", healthController.Status)

	cat := router.Group("/catalog")
	{
		cat.GET("", catalogController.Index)
		cat.GET("/books", catalogController.BookList)
		cat.GET("/books/available", catalogController.AvailableBooks)
		cat.GET("/books/overdue", catalogController.OverdueBooks)

		cat.GET("/book/create", booksController.CreateForm)
		cat.POST("/book/create", booksController.Create)
		cat.GET("/book/:title", booksController.Detail)
		cat.GET("/book/:title/update", booksController.UpdateForm)
		cat.POST("/book/:title/update", booksController.Update)
		cat.GET("/book/:title/delete", booksController.DeleteForm)
		cat.POST("/book/:title/delete", booksController.Delete)
		cat.GET("/book/:title/take", booksController.TakeForm)
		cat.POST("/book/:title/take", booksController.Take)
		cat.GET("/book/:title/return", booksController.Return)

		cat.GET("/genres", genresController.List)
		cat.GET("/genre/:genre", genresController.Detail)

		cat.GET("/authors", authorsController.List)
		cat.GET("/author/:author", authorsController.Detail)
	}

	if cfg.AuditService != nil {
		auditController := NewAuditController(cfg.AuditService)
		router.GET("/audit", auditController.AuditLogPage)
	}

	return router
}
