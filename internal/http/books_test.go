package http

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/librarium/internal/catalog"
)

func newBooksRouter(t *testing.T, store *catalog.Store) (*gin.Engine, *BooksController) {
	t.Helper()

	engine := newTestEngine(t)
	bc := NewBooksController(store, nil)

	cat := engine.Group("/catalog")
	cat.GET("/book/create", bc.CreateForm)
	cat.POST("/book/create", bc.Create)
	cat.GET("/book/:title", bc.Detail)
	cat.GET("/book/:title/update", bc.UpdateForm)
	cat.POST("/book/:title/update", bc.Update)
	cat.GET("/book/:title/delete", bc.DeleteForm)
	cat.POST("/book/:title/delete", bc.Delete)
	cat.GET("/book/:title/take", bc.TakeForm)
	cat.POST("/book/:title/take", bc.Take)
	cat.GET("/book/:title/return", bc.Return)
	return engine, bc
}

func TestBooksController_Detail(t *testing.T) {
	store := newTestStore(t, catalog.Book{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction"})
	router, _ := newBooksRouter(t, store)

	t.Run("renders record for any casing", func(t *testing.T) {
		w := get(router, "/catalog/book/dune")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Dune")
		assert.Contains(t, w.Body.String(), "Frank Herbert")
	})

	t.Run("unknown title is a 404", func(t *testing.T) {
		w := get(router, "/catalog/book/Ubik")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Book not found")
	})
}

func TestBooksController_Create(t *testing.T) {
	t.Run("valid form adds the book and redirects", func(t *testing.T) {
		store := newTestStore(t)
		router, _ := newBooksRouter(t, store)

		w := postForm(router, "/catalog/book/create", url.Values{
			"title":  {"Dune"},
			"author": {"Frank Herbert"},
			"genre":  {"Science Fiction"},
		})

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/catalog/book/Dune", w.Header().Get("Location"))

		book, ok := store.Get("Dune")
		require.True(t, ok)
		assert.Equal(t, "Frank Herbert", book.Author)
		assert.True(t, book.OnShelf())
	})

	t.Run("empty fields re-render the form", func(t *testing.T) {
		store := newTestStore(t)
		router, _ := newBooksRouter(t, store)

		w := postForm(router, "/catalog/book/create", url.Values{
			"title": {"   "},
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Title must not be empty")
		assert.Contains(t, w.Body.String(), "Author must not be empty")
		assert.Equal(t, 0, store.Books().Count)
	})

	t.Run("duplicate title is rejected case-insensitively", func(t *testing.T) {
		store := newTestStore(t, catalog.Book{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction"})
		router, _ := newBooksRouter(t, store)

		w := postForm(router, "/catalog/book/create", url.Values{
			"title":  {"DUNE"},
			"author": {"Someone Else"},
			"genre":  {"Fantasy"},
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "already exists")
		assert.Equal(t, 1, store.Books().Count)
	})
}

func TestBooksController_Update(t *testing.T) {
	t.Run("overwrites bibliographic fields, keeps loan state", func(t *testing.T) {
		store := newTestStore(t, catalog.Book{
			Title: "Dun", Author: "F. Herbert", Genre: "Sci-Fi",
			IssueDate: "2024-01-10", DueDate: "2024-03-31", Reader: "alice",
		})
		router, _ := newBooksRouter(t, store)

		w := postForm(router, "/catalog/book/dun/update", url.Values{
			"title":  {"Dune"},
			"author": {"Frank Herbert"},
			"genre":  {"Science Fiction"},
		})

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/catalog/book/Dune", w.Header().Get("Location"))

		book, ok := store.Get("Dune")
		require.True(t, ok)
		assert.Equal(t, "Frank Herbert", book.Author)
		assert.Equal(t, "alice", book.Reader)
		assert.Equal(t, "2024-01-10", book.IssueDate)
	})

	t.Run("renaming onto another title is rejected", func(t *testing.T) {
		store := newTestStore(t,
			catalog.Book{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction"},
			catalog.Book{Title: "Emma", Author: "Jane Austen", Genre: "Romance"},
		)
		router, _ := newBooksRouter(t, store)

		w := postForm(router, "/catalog/book/Emma/update", url.Values{
			"title":  {"dune"},
			"author": {"Jane Austen"},
			"genre":  {"Romance"},
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "already exists")

		_, ok := store.Get("Emma")
		assert.True(t, ok, "Emma should be unchanged")
	})

	t.Run("keeping the same title is not a duplicate", func(t *testing.T) {
		store := newTestStore(t, catalog.Book{Title: "Dune", Author: "F. Herbert", Genre: "Sci-Fi"})
		router, _ := newBooksRouter(t, store)

		w := postForm(router, "/catalog/book/Dune/update", url.Values{
			"title":  {"Dune"},
			"author": {"Frank Herbert"},
			"genre":  {"Science Fiction"},
		})

		assert.Equal(t, http.StatusFound, w.Code)
		book, _ := store.Get("Dune")
		assert.Equal(t, "Frank Herbert", book.Author)
	})

	t.Run("unknown title redirects to the book list", func(t *testing.T) {
		store := newTestStore(t)
		router, _ := newBooksRouter(t, store)

		w := postForm(router, "/catalog/book/Ubik/update", url.Values{
			"title": {"Ubik"}, "author": {"Philip K. Dick"}, "genre": {"Science Fiction"},
		})
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/catalog/books", w.Header().Get("Location"))
	})
}

func TestBooksController_Delete(t *testing.T) {
	store := newTestStore(t, catalog.Book{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction"})
	router, _ := newBooksRouter(t, store)

	w := get(router, "/catalog/book/Dune/delete")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dune")

	w = postForm(router, "/catalog/book/DUNE/delete", url.Values{})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/catalog/books", w.Header().Get("Location"))

	_, ok := store.Get("Dune")
	assert.False(t, ok)

	// Deleting again just bounces back to the list.
	w = postForm(router, "/catalog/book/Dune/delete", url.Values{})
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestBooksController_TakeAndReturn(t *testing.T) {
	store := newTestStore(t, catalog.Book{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction"})
	router, bc := newBooksRouter(t, store)
	bc.now = func() time.Time {
		return time.Date(2024, time.January, 20, 12, 0, 0, 0, time.UTC)
	}

	t.Run("take sets loan fields with the rollover due date", func(t *testing.T) {
		w := postForm(router, "/catalog/book/Dune/take", url.Values{
			"username": {"alice"},
		})

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/catalog/book/Dune", w.Header().Get("Location"))

		book, ok := store.Get("dune")
		require.True(t, ok)
		assert.Equal(t, "alice", book.Reader)
		assert.Equal(t, "2024-01-20", book.IssueDate)
		assert.Equal(t, "2024-03-31", book.DueDate)
	})

	t.Run("taking a taken book re-renders the form", func(t *testing.T) {
		w := postForm(router, "/catalog/book/Dune/take", url.Values{
			"username": {"bob"},
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "currently with another reader")

		book, _ := store.Get("Dune")
		assert.Equal(t, "alice", book.Reader, "the original reader keeps the book")
	})

	t.Run("empty reader name is rejected", func(t *testing.T) {
		w := postForm(router, "/catalog/book/Dune/take", url.Values{})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Reader name must not be empty")
	})

	t.Run("return clears the loan fields", func(t *testing.T) {
		w := get(router, "/catalog/book/Dune/return")
		assert.Equal(t, http.StatusFound, w.Code)

		book, _ := store.Get("Dune")
		assert.True(t, book.OnShelf())
		assert.Empty(t, book.Reader)
		assert.Empty(t, book.DueDate)
	})
}
