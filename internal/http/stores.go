package http

import (
	"github.com/mrlokans/librarium/internal/audit"
	"github.com/mrlokans/librarium/internal/catalog"
)

// This file consolidates the store interface definitions used by the HTTP
// controllers. Each controller depends only on the operations it calls.

// CatalogReader provides the read-only catalog queries.
type CatalogReader interface {
	Books() catalog.List
	Authors() catalog.List
	Genres() catalog.List
	Available() catalog.List
	Overdue() catalog.List
	BooksByGenre(genre string) catalog.GenreBooks
	BooksByAuthor(author string) catalog.AuthorBooks
	Get(title string) (catalog.Book, bool)
}

// CatalogWriter provides the catalog mutations. Uniqueness and
// availability preconditions are checked by the controllers before
// calling; the writer applies the mutation as given.
type CatalogWriter interface {
	Add(title, author, genre string)
	Delete(title string)
	Update(oldTitle, title, author, genre string)
	Checkout(title, issueDate, dueDate, reader string)
	Return(title string)
}

// CatalogStore combines reads and writes for controllers that need both.
type CatalogStore interface {
	CatalogReader
	CatalogWriter
}

// AuditRecorder records catalog mutations to the audit trail.
// Implemented by audit.Service; controllers tolerate a nil recorder.
type AuditRecorder interface {
	LogMutation(action audit.Action, bookTitle, detail string)
}
