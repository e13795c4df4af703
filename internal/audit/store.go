package audit

import "context"

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks Store

// Store is the append-only audit sink. Implementations must never modify an
// event after Append returns.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByActor(ctx context.Context, actorID string) ([]Event, error)
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}
