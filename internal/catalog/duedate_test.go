package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDueDate(t *testing.T) {
	tests := []struct {
		name  string
		issue string
		want  string
	}{
		{"mid-january leap year", "2024-01-20", "2024-03-31"},
		{"first of month", "2024-01-01", "2024-03-31"},
		{"last of january", "2024-01-31", "2024-03-31"},
		{"february into april", "2024-02-10", "2024-04-30"},
		{"lands on leap february", "2023-12-05", "2024-02-29"},
		{"lands on plain february", "2024-12-05", "2025-02-28"},
		{"november across the year boundary", "2024-11-15", "2025-01-31"},
		{"october into december", "2024-10-02", "2024-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issue, err := time.Parse(dateLayout, tt.issue)
			assert.NoError(t, err)

			got := DueDate(issue).Format(dateLayout)
			assert.Equal(t, tt.want, got)
		})
	}
}
