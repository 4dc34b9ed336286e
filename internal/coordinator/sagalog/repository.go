package sagalog

import "context"

// Repository persists checkout log entries. Save appends; entries are never
// updated.
type Repository interface {
	Save(ctx context.Context, entry *Entry) error
	History(ctx context.Context, sagaID string) ([]Entry, error)
}
