package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GenresController renders the genre listing and per-genre pages.
type GenresController struct {
	store CatalogReader
}

func NewGenresController(store CatalogReader) *GenresController {
	return &GenresController{store: store}
}

// List renders every distinct genre.
func (gc *GenresController) List(c *gin.Context) {
	list := gc.store.Genres()
	c.HTML(http.StatusOK, "genre_list", gin.H{
		"Title":  "All Genres",
		"Genres": list.Items,
		"Count":  list.Count,
	})
}

// Detail renders the titles in one genre. The store reports an empty
// match set rather than a not-found; treating emptiness as a 404 is this
// layer's decision.
func (gc *GenresController) Detail(c *gin.Context) {
	result := gc.store.BooksByGenre(c.Param("genre"))
	if len(result.Titles) == 0 {
		c.HTML(http.StatusNotFound, "error", gin.H{"Error": "Genre not found"})
		return
	}

	c.HTML(http.StatusOK, "genre_detail", gin.H{
		"Title": "Books in Genre",
		"Genre": result.Genre,
		"Books": result.Titles,
	})
}
