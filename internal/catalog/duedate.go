package catalog

import "time"

// DueDate computes the return deadline for a book issued on the given
// date: roll forward to the first day of the next month, then take the
// last day of the month after that. The two-step rollover means the loan
// window is not simply "one month" — a book issued on 2024-01-20 is due
// 2024-03-31, not 2024-02-20.
func DueDate(issue time.Time) time.Time {
	firstOfNext := time.Date(issue.Year(), issue.Month()+1, 1, 0, 0, 0, 0, issue.Location())
	// Day zero of the month after next, which Go normalizes to the last
	// day of the month in between.
	return firstOfNext.AddDate(0, 2, -1)
}
