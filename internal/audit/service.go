package audit

import (
	"context"

	"serviceheft/internal/authz"
	"serviceheft/pkg/domain"
	dErrors "serviceheft/pkg/domain-errors"
)

// Service serves audit trails to their owners, and to admins, through the
// authorization engine.
type Service struct {
	store Store
	guard *authz.Guard
}

func NewService(store Store, guard *authz.Guard) *Service {
	if guard == nil {
		guard = authz.NewGuard()
	}
	return &Service{store: store, guard: guard}
}

// ListForActor returns the events recorded for actorID. Subjects may read
// their own trail (audit.read.own); reading anyone's needs audit.read.any.
func (s *Service) ListForActor(ctx context.Context, subject domain.Subject, actorID string) ([]Event, error) {
	if actorID == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "actor id is required")
	}
	if !authz.Can(subject, authz.PermAuditReadAny, nil) {
		trail := &authz.Resource{Type: string(TargetUser), ID: actorID, OwnerUserID: actorID}
		err := s.guard.Check(ctx, authz.Input{Subject: subject, Permission: authz.PermAuditReadOwn, Resource: trail})
		if err != nil {
			return nil, err
		}
	}
	events, err := s.store.ListByActor(ctx, actorID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit events")
	}
	return events, nil
}

// ListRecent returns the newest events across all actors. It needs
// audit.read.any.
func (s *Service) ListRecent(ctx context.Context, subject domain.Subject, limit int) ([]Event, error) {
	if err := s.guard.Check(ctx, authz.Input{Subject: subject, Permission: authz.PermAuditReadAny}); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "limit must be positive")
	}
	events, err := s.store.ListRecent(ctx, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit events")
	}
	return events, nil
}
