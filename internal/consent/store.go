package consent

import "context"

// Store persists acceptances. Records are append-only; a newer acceptance is
// a new record, never an update. Remove exists only to undo a Save whose
// audit event could not be recorded.
type Store interface {
	Save(ctx context.Context, record Record) error
	Remove(ctx context.Context, record Record) error
	ListByUser(ctx context.Context, userID string) ([]Record, error)
}
