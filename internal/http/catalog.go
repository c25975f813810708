package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CatalogController renders the index page and the title listings.
type CatalogController struct {
	store CatalogReader
}

func NewCatalogController(store CatalogReader) *CatalogController {
	return &CatalogController{store: store}
}

// Index renders the catalog front page with the five summary counts.
func (cc *CatalogController) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index", gin.H{
		"Title":          "Home Library",
		"BookCount":      cc.store.Books().Count,
		"AvailableCount": cc.store.Available().Count,
		"OverdueCount":   cc.store.Overdue().Count,
		"AuthorCount":    cc.store.Authors().Count,
		"GenreCount":     cc.store.Genres().Count,
	})
}

// BookList renders every title in the catalog.
func (cc *CatalogController) BookList(c *gin.Context) {
	list := cc.store.Books()
	c.HTML(http.StatusOK, "book_list", gin.H{
		"Title": "All Books",
		"Books": list.Items,
		"Count": list.Count,
	})
}

// AvailableBooks renders the titles currently on the shelf.
func (cc *CatalogController) AvailableBooks(c *gin.Context) {
	list := cc.store.Available()
	c.HTML(http.StatusOK, "book_list", gin.H{
		"Title": "Available Books",
		"Books": list.Items,
		"Count": list.Count,
	})
}

// OverdueBooks renders the titles whose due date has passed.
func (cc *CatalogController) OverdueBooks(c *gin.Context) {
	list := cc.store.Overdue()
	c.HTML(http.StatusOK, "book_list", gin.H{
		"Title": "Overdue Books",
		"Books": list.Items,
		"Count": list.Count,
	})
}
