package consent

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"serviceheft/internal/audit"
	"serviceheft/internal/pseudonym"
	"serviceheft/pkg/domain"
	dErrors "serviceheft/pkg/domain-errors"
	"serviceheft/pkg/requestcontext"
)

// Service records acceptances and answers whether a user may proceed under
// the currently published document versions.
type Service struct {
	store     Store
	required  RequiredVersions
	hasher    *pseudonym.Hasher
	publisher *audit.Publisher
	logger    *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithHasher pseudonymizes the caller's IP and User-Agent into the record.
// Without it those fields are left empty.
func WithHasher(h *pseudonym.Hasher) Option {
	return func(s *Service) {
		s.hasher = h
	}
}

// WithAuditPublisher emits consent_accepted for every stored acceptance.
func WithAuditPublisher(p *audit.Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(store Store, required RequiredVersions, opts ...Option) *Service {
	s := &Service{store: store, required: required}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AcceptInput is an acceptance as captured by a transport. IP and UserAgent
// are raw and never stored; when empty, UserAgent falls back to the request
// context.
type AcceptInput struct {
	UserID       string
	DocType      DocType
	DocVersion   string
	Source       Source
	IP           string
	UserAgent    string
	EvidenceHash string
}

// Accept validates and stores one acceptance. The audit event is part of the
// operation: it is built before the record is saved, and if it cannot be
// appended the record is removed again and Accept fails.
func (s *Service) Accept(ctx context.Context, in AcceptInput) (Record, error) {
	record := Record{
		UserID:       in.UserID,
		DocType:      in.DocType,
		DocVersion:   strings.TrimSpace(in.DocVersion),
		AcceptedAt:   requestcontext.Now(ctx).UTC().Format(time.RFC3339Nano),
		Source:       in.Source,
		EvidenceHash: in.EvidenceHash,
	}
	if err := s.pseudonymize(ctx, in, &record); err != nil {
		return Record{}, err
	}
	if err := record.Validate(); err != nil {
		return Record{}, err
	}

	var event audit.Event
	if s.publisher != nil {
		prepared, err := s.publisher.Prepare(ctx, s.auditInput(ctx, record))
		if err != nil {
			return Record{}, err
		}
		event = prepared
	}

	if err := s.store.Save(ctx, record); err != nil {
		return Record{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save consent")
	}

	if s.publisher != nil {
		if err := s.publisher.Commit(ctx, event); err != nil {
			if rmErr := s.store.Remove(ctx, record); rmErr != nil && s.logger != nil {
				s.logger.ErrorContext(ctx, "failed to remove unaudited consent",
					"user_id", record.UserID,
					"doc_type", record.DocType,
					"request_id", requestcontext.RequestID(ctx),
					"error", rmErr,
				)
			}
			return Record{}, err
		}
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "consent accepted",
			"doc_type", record.DocType,
			"doc_version", record.DocVersion,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	return record, nil
}

// auditInput attributes the acceptance to the authenticated subject, or to
// the consenting user when the request carries no session.
func (s *Service) auditInput(ctx context.Context, record Record) audit.EventInput {
	in := audit.EventInput{
		Action:     string(audit.ActionConsentAccepted),
		TargetType: string(audit.TargetConsent),
		TargetID:   record.UserID,
		Scope:      string(audit.ScopeOwn),
		Result:     string(audit.ResultSuccess),
		Metadata: map[string]any{
			"doc_type":    string(record.DocType),
			"doc_version": record.DocVersion,
			"source":      string(record.Source),
		},
	}
	if !requestcontext.Subject(ctx).IsAuthenticated() {
		in.ActorType = string(audit.ActorUser)
		in.ActorID = record.UserID
		in.ActorRole = string(domain.RoleUser)
	}
	return in
}

func (s *Service) pseudonymize(ctx context.Context, in AcceptInput, record *Record) error {
	if s.hasher == nil {
		return nil
	}
	if ip := strings.TrimSpace(in.IP); ip != "" {
		h, err := s.hasher.IP(ip)
		if err != nil {
			return err
		}
		record.IPHMAC = h
	}
	ua := strings.TrimSpace(in.UserAgent)
	if ua == "" {
		ua = strings.TrimSpace(requestcontext.UserAgent(ctx))
	}
	if ua != "" {
		h, err := s.hasher.UserAgent(ua)
		if err != nil {
			return err
		}
		record.UserAgentHMAC = h
	}
	return nil
}

// Require fails with CodeBadRequest unless userID has accepted the required
// version of every document.
func (s *Service) Require(ctx context.Context, userID string) error {
	records, err := s.records(ctx, userID)
	if err != nil {
		return err
	}
	return AssertMeetsRequirements(records, s.required)
}

// Outstanding lists the documents userID still has to accept.
func (s *Service) Outstanding(ctx context.Context, userID string) ([]DocType, error) {
	records, err := s.records(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Missing(records, s.required), nil
}

func (s *Service) records(ctx context.Context, userID string) ([]Record, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "user id is required")
	}
	records, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list consent records")
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}
