package audit

import "time"

type Action string

const (
	ActionBookCreate   Action = "book_create"
	ActionBookUpdate   Action = "book_update"
	ActionBookDelete   Action = "book_delete"
	ActionBookCheckout Action = "book_checkout"
	ActionBookReturn   Action = "book_return"
)

// Event is one recorded catalog mutation.
type Event struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Action    Action    `gorm:"index;size:50" json:"action"`
	BookTitle string    `gorm:"size:300" json:"book_title"`
	Detail    string    `gorm:"size:500" json:"detail,omitempty"` // e.g. reader name, new title
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Event) TableName() string {
	return "audit_events"
}
