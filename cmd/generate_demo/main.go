// Command generate_demo creates a demo library file with sample data from public domain books.
// Usage: go run cmd/generate_demo/main.go [-library path/to/library.json]
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/mrlokans/librarium/internal/catalog"
)

const defaultDemoLibraryPath = "./library.json"

func main() {
	libraryPath := flag.String("library", defaultDemoLibraryPath, "path to the demo library file")
	flag.Parse()

	log.Printf("Generating demo library at %s...", *libraryPath)

	books := demoBooks(time.Now())

	data, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		log.Fatalf("Failed to serialize demo library: %v", err)
	}

	if err := os.WriteFile(*libraryPath, data, 0o644); err != nil {
		log.Fatalf("Failed to write demo library: %v", err)
	}

	log.Printf("Demo library generated with %d books", len(books))
}

// demoBooks returns a mix of shelved, loaned and overdue books so every
// catalog page has something to show.
func demoBooks(now time.Time) []catalog.Book {
	const layout = "2006-01-02"

	recentIssue := now.AddDate(0, 0, -10)
	staleIssue := now.AddDate(0, -4, 0)

	return []catalog.Book{
		{
			Title:  "The Time Machine",
			Author: "H. G. Wells",
			Genre:  "Science Fiction",
		},
		{
			Title:  "Pride and Prejudice",
			Author: "Jane Austen",
			Genre:  "Romance",
		},
		{
			Title:  "The War of the Worlds",
			Author: "H. G. Wells",
			Genre:  "Science Fiction",
		},
		{
			Title:     "Crime and Punishment",
			Author:    "Fyodor Dostoevsky",
			Genre:     "Classic",
			IssueDate: recentIssue.Format(layout),
			DueDate:   catalog.DueDate(recentIssue).Format(layout),
			Reader:    "marcus",
		},
		{
			Title:     "Meditations",
			Author:    "Marcus Aurelius",
			Genre:     "Philosophy",
			IssueDate: staleIssue.Format(layout),
			DueDate:   catalog.DueDate(staleIssue).Format(layout),
			Reader:    "helena",
		},
		{
			Title:  "The Picture of Dorian Gray",
			Author: "Oscar Wilde",
			Genre:  "Classic",
		},
	}
}
