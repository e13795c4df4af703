package audit

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	dErrors "serviceheft/pkg/domain-errors"
	"serviceheft/pkg/requestcontext"
)

// Publisher builds audit events and appends them to a Store.
//
// Emit is fail-closed: if the event cannot be built or persisted the error is
// returned and the calling operation must fail.
type Publisher struct {
	store          Store
	logger         *slog.Logger
	metrics        *Metrics
	tracer         trace.Tracer
	deviceMetadata bool
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithLogger sets a logger for rejections and persistence failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(p *Publisher) {
		p.tracer = t
	}
}

// WithDeviceMetadata enriches events with DeviceMetadata derived from the
// request's User-Agent. Caller-supplied metadata keys take precedence.
func WithDeviceMetadata() Option {
	return func(p *Publisher) {
		p.deviceMetadata = true
	}
}

// NewPublisher creates a publisher over store.
func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{
		store:  store,
		tracer: otel.Tracer("serviceheft/internal/audit"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit fills request-scoped defaults, builds the event and appends it.
//
// Defaults apply only to empty fields: event_id (new UUIDv7), created_at
// (request time), request_id and correlation_id (from ctx), and the actor
// fields (from the authenticated subject in ctx).
func (p *Publisher) Emit(ctx context.Context, in EventInput) (Event, error) {
	ctx, span := p.tracer.Start(ctx, "audit.Emit", trace.WithAttributes(
		attribute.String("audit.action", in.Action),
	))
	defer span.End()

	event, err := p.Prepare(ctx, in)
	if err != nil {
		span.SetStatus(codes.Error, "rejected")
		return Event{}, err
	}
	if err := p.Commit(ctx, event); err != nil {
		span.SetStatus(codes.Error, "persist failed")
		return Event{}, err
	}
	span.SetAttributes(attribute.String("audit.event_id", event.EventID))
	return event, nil
}

// Prepare applies the same defaults as Emit and builds the event without
// appending it. Operations that must not change state unless their audit
// event is valid call Prepare first and Commit once the change is made.
func (p *Publisher) Prepare(ctx context.Context, in EventInput) (Event, error) {
	in = p.withDefaults(ctx, in)

	event, err := Build(in)
	if err != nil {
		p.metrics.incRejected()
		if p.logger != nil {
			p.logger.WarnContext(ctx, "audit event rejected",
				"action", in.Action,
				"request_id", in.RequestID,
				"error", err,
			)
		}
		return Event{}, err
	}
	p.metrics.addMetadataDropped(len(in.Metadata) - len(event.RedactedMetadata))
	return event, nil
}

// Commit appends an event returned by Prepare.
func (p *Publisher) Commit(ctx context.Context, event Event) error {
	start := time.Now()
	if err := p.store.Append(ctx, event); err != nil {
		p.metrics.incPersistFailures()
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "CRITICAL: audit persistence failed",
				"event_id", event.EventID,
				"action", event.Action,
				"request_id", event.RequestID,
				"error", err,
			)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "audit persistence failed")
	}
	p.metrics.observePersistDuration(time.Since(start).Seconds())
	p.metrics.incEmitted(event.Action, event.Result)
	return nil
}

func (p *Publisher) withDefaults(ctx context.Context, in EventInput) EventInput {
	if in.EventID == "" {
		in.EventID = NewEventID()
	}
	if in.CreatedAt == "" {
		in.CreatedAt = requestcontext.Now(ctx).UTC().Format(time.RFC3339Nano)
	}
	if in.RequestID == "" {
		in.RequestID = requestcontext.RequestID(ctx)
	}
	if in.CorrelationID == "" {
		in.CorrelationID = requestcontext.CorrelationID(ctx)
	}
	if in.ActorType == "" && in.ActorID == "" {
		if subject := requestcontext.Subject(ctx); subject.IsAuthenticated() {
			in.ActorType = string(ActorUser)
			in.ActorID = subject.UserID
			if in.ActorRole == "" {
				in.ActorRole = string(subject.Role)
			}
		}
	}
	if p.deviceMetadata {
		if device := DeviceMetadata(requestcontext.UserAgent(ctx)); len(device) > 0 {
			merged := make(map[string]any, len(in.Metadata)+len(device))
			for k, v := range device {
				merged[k] = v
			}
			for k, v := range in.Metadata {
				merged[k] = v
			}
			in.Metadata = merged
		}
	}
	return in
}
