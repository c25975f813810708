package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthorsController renders the author listing and per-author pages.
type AuthorsController struct {
	store CatalogReader
}

func NewAuthorsController(store CatalogReader) *AuthorsController {
	return &AuthorsController{store: store}
}

// List renders every distinct author.
func (ac *AuthorsController) List(c *gin.Context) {
	list := ac.store.Authors()
	c.HTML(http.StatusOK, "author_list", gin.H{
		"Title":   "All Authors",
		"Authors": list.Items,
		"Count":   list.Count,
	})
}

// Detail renders the titles by one author, 404 when none match.
func (ac *AuthorsController) Detail(c *gin.Context) {
	result := ac.store.BooksByAuthor(c.Param("author"))
	if len(result.Titles) == 0 {
		c.HTML(http.StatusNotFound, "error", gin.H{"Error": "Author not found"})
		return
	}

	c.HTML(http.StatusOK, "author_detail", gin.H{
		"Title":  "Books by Author",
		"Author": result.Author,
		"Books":  result.Titles,
	})
}
