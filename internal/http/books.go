package http

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarium/internal/audit"
	"github.com/mrlokans/librarium/internal/catalog"
)

const dateLayout = "2006-01-02"

// BooksController handles the per-book pages: detail, create, update,
// delete, take and return.
//
// Title uniqueness (on create/update) and availability (on take) are
// validated here against a read of the store before the mutation is
// issued. The store applies mutations as given, so two requests racing
// through the same check can both pass it; with a single user behind the
// forms that window is acceptable, and it mirrors how the catalog always
// behaved.
type BooksController struct {
	store CatalogStore
	audit AuditRecorder

	// now is swapped out in tests to pin checkout dates.
	now func() time.Time
}

func NewBooksController(store CatalogStore, recorder AuditRecorder) *BooksController {
	return &BooksController{
		store: store,
		audit: recorder,
		now:   time.Now,
	}
}

func (bc *BooksController) record(action audit.Action, title, detail string) {
	if bc.audit != nil {
		bc.audit.LogMutation(action, title, detail)
	}
}

func bookURL(title string) string {
	return "/catalog/book/" + url.PathEscape(title)
}

// Detail renders the full record for one book, or a 404 page.
func (bc *BooksController) Detail(c *gin.Context) {
	book, ok := bc.store.Get(c.Param("title"))
	if !ok {
		c.HTML(http.StatusNotFound, "error", gin.H{"Error": "Book not found"})
		return
	}

	c.HTML(http.StatusOK, "book_detail", gin.H{
		"Title": book.Title,
		"Book":  book,
	})
}

// CreateForm renders an empty creation form.
func (bc *BooksController) CreateForm(c *gin.Context) {
	c.HTML(http.StatusOK, "book_form", gin.H{
		"Title":  "Create a Book",
		"Errors": []string{},
	})
}

// Create validates the submitted form and appends a new record. The
// duplicate-title check happens here, not in the store.
func (bc *BooksController) Create(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	author := strings.TrimSpace(c.PostForm("author"))
	genre := strings.TrimSpace(c.PostForm("genre"))

	errors := validateBookForm(title, author, genre)
	if title != "" {
		if _, exists := bc.store.Get(title); exists {
			errors = append(errors, "A book with this title already exists")
		}
	}

	if len(errors) > 0 {
		c.HTML(http.StatusOK, "book_form", gin.H{
			"Title":  "Create a Book",
			"Book":   title,
			"Author": author,
			"Genre":  genre,
			"Errors": errors,
		})
		return
	}

	bc.store.Add(title, author, genre)
	bc.record(audit.ActionBookCreate, title, "")
	c.Redirect(http.StatusFound, bookURL(title))
}

// UpdateForm renders the update form prefilled with the current record.
func (bc *BooksController) UpdateForm(c *gin.Context) {
	book, ok := bc.store.Get(c.Param("title"))
	if !ok {
		c.Redirect(http.StatusFound, "/catalog/books")
		return
	}

	c.HTML(http.StatusOK, "book_update", gin.H{
		"Title":  "Update a Book",
		"Book":   book.Title,
		"Author": book.Author,
		"Genre":  book.Genre,
		"Errors": []string{},
	})
}

// Update validates the form and overwrites title, author and genre. The
// duplicate check only applies when the title actually changes.
func (bc *BooksController) Update(c *gin.Context) {
	book, ok := bc.store.Get(c.Param("title"))
	if !ok {
		c.Redirect(http.StatusFound, "/catalog/books")
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	author := strings.TrimSpace(c.PostForm("author"))
	genre := strings.TrimSpace(c.PostForm("genre"))

	errors := validateBookForm(title, author, genre)
	if title != "" && !strings.EqualFold(title, book.Title) {
		if _, exists := bc.store.Get(title); exists {
			errors = append(errors, "A book with this title already exists")
		}
	}

	if len(errors) > 0 {
		c.HTML(http.StatusOK, "book_update", gin.H{
			"Title":  "Update a Book",
			"Book":   book.Title,
			"Author": book.Author,
			"Genre":  book.Genre,
			"Errors": errors,
		})
		return
	}

	bc.store.Update(book.Title, title, author, genre)
	bc.record(audit.ActionBookUpdate, title, "was "+book.Title)
	c.Redirect(http.StatusFound, bookURL(title))
}

// DeleteForm renders the deletion confirmation page.
func (bc *BooksController) DeleteForm(c *gin.Context) {
	book, ok := bc.store.Get(c.Param("title"))
	if !ok {
		c.Redirect(http.StatusFound, "/catalog/books")
		return
	}

	c.HTML(http.StatusOK, "book_delete", gin.H{
		"Title": "Delete a Book",
		"Book":  book,
	})
}

// Delete removes the record and returns to the book list.
func (bc *BooksController) Delete(c *gin.Context) {
	book, ok := bc.store.Get(c.Param("title"))
	if !ok {
		c.Redirect(http.StatusFound, "/catalog/books")
		return
	}

	bc.store.Delete(book.Title)
	bc.record(audit.ActionBookDelete, book.Title, "")
	c.Redirect(http.StatusFound, "/catalog/books")
}

// TakeForm renders the checkout form asking for the reader's name.
func (bc *BooksController) TakeForm(c *gin.Context) {
	book, ok := bc.store.Get(c.Param("title"))
	if !ok {
		c.Redirect(http.StatusFound, "/catalog/books")
		return
	}

	c.HTML(http.StatusOK, "take_book", gin.H{
		"Title":  "Take a Book",
		"Book":   book.Title,
		"Errors": []string{},
	})
}

// Take checks the book out. Availability is validated here against the
// current record; the due date is derived from today's date by the
// two-step month rollover.
func (bc *BooksController) Take(c *gin.Context) {
	book, ok := bc.store.Get(c.Param("title"))
	if !ok {
		c.Redirect(http.StatusFound, "/catalog/books")
		return
	}

	reader := strings.TrimSpace(c.PostForm("username"))

	var errors []string
	if reader == "" {
		errors = append(errors, "Reader name must not be empty")
	}
	if book.Reader != "" {
		errors = append(errors, "The book is currently with another reader")
	}

	if len(errors) > 0 {
		c.HTML(http.StatusOK, "take_book", gin.H{
			"Title":  "Take a Book",
			"Book":   book.Title,
			"Errors": errors,
		})
		return
	}

	issued := bc.now()
	issueDate := issued.Format(dateLayout)
	dueDate := catalog.DueDate(issued).Format(dateLayout)

	bc.store.Checkout(book.Title, issueDate, dueDate, reader)
	bc.record(audit.ActionBookCheckout, book.Title, "reader="+reader)
	c.Redirect(http.StatusFound, bookURL(book.Title))
}

// Return puts the book back on the shelf and shows its detail page.
// Returning a book that is not checked out is a no-op in the store.
func (bc *BooksController) Return(c *gin.Context) {
	book, ok := bc.store.Get(c.Param("title"))
	if !ok {
		c.Redirect(http.StatusFound, "/catalog/books")
		return
	}

	bc.store.Return(book.Title)
	bc.record(audit.ActionBookReturn, book.Title, "")
	c.Redirect(http.StatusFound, bookURL(book.Title))
}

func validateBookForm(title, author, genre string) []string {
	var errors []string
	if title == "" {
		errors = append(errors, "Title must not be empty")
	}
	if author == "" {
		errors = append(errors, "Author must not be empty")
	}
	if genre == "" {
		errors = append(errors, "Genre must not be empty")
	}
	return errors
}
