package catalog

// Book is a single catalog record. The title doubles as the record's
// identity: lookups are case-insensitive and no separate numeric ID exists.
//
// IssueDate, DueDate and Reader are either all empty (the book is on the
// shelf) or all populated (the book is with a reader). Dates are stored as
// ISO date strings ("2006-01-02") to match the persisted file format.
type Book struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	IssueDate string `json:"issue_date"`
	DueDate   string `json:"due_date"`
	Reader    string `json:"reader"`
	Genre     string `json:"genre"`
}

// OnShelf reports whether the book is currently available for checkout.
func (b Book) OnShelf() bool {
	return b.IssueDate == ""
}

// List is the result of an aggregate query: how many items matched and
// the items themselves, in collection (or first-seen) order.
type List struct {
	Count int
	Items []string
}

// GenreBooks holds the titles matching a genre query. The genre is
// reported back even when no titles matched; treating an empty match set
// as "not found" is the caller's decision, not the store's.
type GenreBooks struct {
	Genre  string
	Titles []string
}

// AuthorBooks holds the titles matching an author query.
type AuthorBooks struct {
	Author string
	Titles []string
}
