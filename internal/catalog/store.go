package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

const dateLayout = "2006-01-02"

// Store holds the authoritative in-memory collection of book records and
// keeps a persisted JSON copy in sync. The in-memory state is updated
// synchronously; the file write-back after each mutation is fire-and-forget,
// so the memory copy wins over the file on any disagreement.
//
// The store deliberately does not enforce title uniqueness on Add or
// availability on Checkout; those checks belong to the calling layer,
// which inspects Get before mutating. See the handler code in
// internal/http for where they happen.
type Store struct {
	mu    sync.RWMutex
	path  string
	books []Book

	// writeMu serializes the asynchronous file writes; seq/written keep a
	// stale snapshot from overwriting a newer one when writes complete
	// out of order.
	writeMu sync.Mutex
	seq     uint64
	written uint64

	// now is swapped out in tests to pin the overdue predicate.
	now func() time.Time
}

// Open loads the collection from the JSON file at path. A missing file
// starts an empty catalog; any other read or parse failure is an error.
func Open(path string) (*Store, error) {
	s := &Store{path: path, now: time.Now}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Printf("Library file %s does not exist, starting with an empty catalog", path)
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read library file: %w", err)
	}

	if err := json.Unmarshal(data, &s.books); err != nil {
		return nil, fmt.Errorf("failed to parse library file %s: %w", path, err)
	}

	log.Printf("Loaded %d books from %s", len(s.books), path)
	return s, nil
}

// Books returns every title in collection order.
func (s *Store) Books() List {
	s.mu.RLock()
	defer s.mu.RUnlock()

	titles := make([]string, 0, len(s.books))
	for _, b := range s.books {
		titles = append(titles, b.Title)
	}
	return List{Count: len(titles), Items: titles}
}

// Authors returns the distinct author names in first-seen order.
// Distinctness is case-sensitive, exactly as stored.
func (s *Store) Authors() List {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return distinct(s.books, func(b Book) string { return b.Author })
}

// Genres returns the distinct genre names in first-seen order.
func (s *Store) Genres() List {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return distinct(s.books, func(b Book) string { return b.Genre })
}

// Available returns the titles of books that are not checked out.
func (s *Store) Available() List {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var titles []string
	for _, b := range s.books {
		if b.OnShelf() {
			titles = append(titles, b.Title)
		}
	}
	return List{Count: len(titles), Items: titles}
}

// Overdue returns the titles of books whose due date is strictly before
// today. Comparison is date-only: a book due today is not yet overdue.
// Records with empty or malformed due dates never count as overdue.
func (s *Store) Overdue() List {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var titles []string
	for _, b := range s.books {
		if b.DueDate == "" {
			continue
		}
		due, err := time.Parse(dateLayout, b.DueDate)
		if err != nil {
			continue
		}
		if due.Before(today) {
			titles = append(titles, b.Title)
		}
	}
	return List{Count: len(titles), Items: titles}
}

// BooksByGenre returns the titles whose genre matches case-insensitively.
// The queried genre is echoed back even for an empty match set.
func (s *Store) BooksByGenre(genre string) GenreBooks {
	s.mu.RLock()
	defer s.mu.RUnlock()

	titles := []string{}
	for _, b := range s.books {
		if strings.EqualFold(b.Genre, genre) {
			titles = append(titles, b.Title)
		}
	}
	return GenreBooks{Genre: genre, Titles: titles}
}

// BooksByAuthor returns the titles whose author matches case-insensitively.
func (s *Store) BooksByAuthor(author string) AuthorBooks {
	s.mu.RLock()
	defer s.mu.RUnlock()

	titles := []string{}
	for _, b := range s.books {
		if strings.EqualFold(b.Author, author) {
			titles = append(titles, b.Title)
		}
	}
	return AuthorBooks{Author: author, Titles: titles}
}

// Get looks up a book by title, case-insensitively. The second return
// value reports whether a record was found.
func (s *Store) Get(title string) (Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.index(title); i >= 0 {
		return s.books[i], true
	}
	return Book{}, false
}

// Add appends a new record with empty loan fields. The store does not
// reject duplicate titles; callers check uniqueness before calling.
func (s *Store) Add(title, author, genre string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.books = append(s.books, Book{
		Title:  title,
		Author: author,
		Genre:  genre,
	})
	s.persistLocked()
}

// Delete removes the first record matching the title. A missing title is
// a logged no-op.
func (s *Store) Delete(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(title)
	if i < 0 {
		log.Printf("Book %q not found, nothing to delete", title)
		return
	}

	s.books = append(s.books[:i], s.books[i+1:]...)
	log.Printf("Book %q removed from the catalog", title)
	s.persistLocked()
}

// Update overwrites title, author and genre of the record matching
// oldTitle. Loan fields are left untouched. A missing title is a logged
// no-op.
func (s *Store) Update(oldTitle, title, author, genre string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(oldTitle)
	if i < 0 {
		log.Printf("Book %q not found, nothing to update", oldTitle)
		return
	}

	s.books[i].Title = title
	s.books[i].Author = author
	s.books[i].Genre = genre
	s.persistLocked()
}

// Checkout marks the book as held by reader, setting all three loan
// fields together. It does not verify the book was available; callers
// check Get first. A missing title is a logged no-op.
func (s *Store) Checkout(title, issueDate, dueDate, reader string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(title)
	if i < 0 {
		log.Printf("Book %q not found, cannot check out", title)
		return
	}

	s.books[i].IssueDate = issueDate
	s.books[i].DueDate = dueDate
	s.books[i].Reader = reader
	s.persistLocked()
}

// Return clears all three loan fields if the book is currently held.
// Returning an on-shelf or unknown book is a logged no-op, which makes
// Return idempotent.
func (s *Store) Return(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(title)
	if i < 0 {
		log.Printf("Book %q not found, cannot return", title)
		return
	}
	if s.books[i].Reader == "" {
		log.Printf("Book %q is not checked out, nothing to return", title)
		return
	}

	s.books[i].Reader = ""
	s.books[i].IssueDate = ""
	s.books[i].DueDate = ""
	s.persistLocked()
}

// index returns the position of the first record whose title matches
// case-insensitively, or -1. Callers must hold at least a read lock.
func (s *Store) index(title string) int {
	for i, b := range s.books {
		if strings.EqualFold(b.Title, title) {
			return i
		}
	}
	return -1
}

// persistLocked snapshots the collection and schedules a full rewrite of
// the library file. Callers must hold the write lock. The write is not
// awaited; a failure is logged and the in-memory state stands.
func (s *Store) persistLocked() {
	snapshot := make([]Book, len(s.books))
	copy(snapshot, s.books)
	s.seq++
	seq := s.seq

	go func() {
		s.writeMu.Lock()
		defer s.writeMu.Unlock()
		if seq <= s.written {
			// A later snapshot already reached the file.
			return
		}
		if err := writeLibrary(s.path, snapshot); err != nil {
			log.Printf("Failed to persist library to %s: %v", s.path, err)
			return
		}
		s.written = seq
	}()
}

// writeLibrary serializes the collection as indented JSON and swaps it
// into place with a rename, so a crash mid-write never truncates the file.
func writeLibrary(path string, books []Book) error {
	data, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize library: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write library file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace library file: %w", err)
	}
	return nil
}

func distinct(books []Book, key func(Book) string) List {
	seen := make(map[string]struct{}, len(books))
	var items []string
	for _, b := range books {
		k := key(b)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		items = append(items, k)
	}
	return List{Count: len(items), Items: items}
}
