package audit

import (
	"log"
	"time"
)

// Service provides high-level audit logging for catalog mutations.
type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Log records an audit event synchronously.
func (s *Service) Log(event *Event) error {
	return s.repo.LogEvent(event)
}

// LogMutation records a catalog mutation in the background. The catalog
// store never blocks on the audit trail; a failed insert is only logged.
func (s *Service) LogMutation(action Action, bookTitle, detail string) {
	event := &Event{
		Action:    action,
		BookTitle: bookTitle,
		Detail:    detail,
	}
	go func() {
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event %s for %q: %v", action, bookTitle, err)
		}
	}()
}

// GetEvents returns paginated audit events, most recent first.
func (s *Service) GetEvents(limit, offset int) ([]Event, int64, error) {
	return s.repo.GetEvents(limit, offset)
}

// GetEventsByAction returns paginated audit events for one action.
func (s *Service) GetEventsByAction(action Action, limit, offset int) ([]Event, int64, error) {
	return s.repo.GetEventsByAction(action, limit, offset)
}

// DeleteOldEvents removes events older than the retention window.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	return s.repo.DeleteOldEvents(time.Now().Add(-retention))
}
