package audit

import (
	"context"
	"log/slog"

	dErrors "serviceheft/pkg/domain-errors"
)

// Worker drains proposed events from a channel into a Publisher, for callers
// that record audit events off the request path. Malformed events are logged
// and skipped; a persistence failure stops the worker.
type Worker struct {
	publisher *Publisher
	inbox     <-chan EventInput
	logger    *slog.Logger
}

func NewWorker(publisher *Publisher, inbox <-chan EventInput, logger *slog.Logger) *Worker {
	return &Worker{publisher: publisher, inbox: inbox, logger: logger}
}

// Run processes events until ctx is done or the inbox is closed.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in, ok := <-w.inbox:
			if !ok {
				return nil
			}
			if _, err := w.publisher.Emit(ctx, in); err != nil {
				if isRejection(err) {
					if w.logger != nil {
						w.logger.WarnContext(ctx, "audit worker skipped malformed event", "error", err)
					}
					continue
				}
				return err
			}
		}
	}
}

func isRejection(err error) bool {
	return dErrors.CodeOf(err) == dErrors.CodeBadRequest
}
