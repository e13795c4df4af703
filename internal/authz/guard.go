package authz

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"serviceheft/internal/authz/metrics"
	dErrors "serviceheft/pkg/domain-errors"
	"serviceheft/pkg/requestcontext"
)

const (
	resultAllow        = "allow"
	resultUnauthorized = "unauthorized"
	resultForbidden    = "forbidden"
)

// Guard runs AssertCan and reports each decision to the configured logger,
// metrics and tracer. The decision itself is exactly AssertCan's.
type Guard struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithLogger sets the logger used for denials.
func WithLogger(logger *slog.Logger) GuardOption {
	return func(g *Guard) {
		g.logger = logger
	}
}

// WithMetrics sets the decision metrics.
func WithMetrics(m *metrics.Metrics) GuardOption {
	return func(g *Guard) {
		g.metrics = m
	}
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) GuardOption {
	return func(g *Guard) {
		g.tracer = t
	}
}

// NewGuard creates a Guard.
func NewGuard(opts ...GuardOption) *Guard {
	g := &Guard{
		tracer: otel.Tracer("serviceheft/internal/authz"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check authorizes in and returns AssertCan's error on denial.
func (g *Guard) Check(ctx context.Context, in Input) error {
	ctx, span := g.tracer.Start(ctx, "authz.Check", trace.WithAttributes(
		attribute.String("authz.permission", string(in.Permission)),
		attribute.String("authz.role", string(in.Subject.Role)),
	))
	defer span.End()

	err := AssertCan(in)
	result := resultAllow
	switch {
	case err == nil:
	case dErrors.HasCode(err, dErrors.CodeUnauthorized):
		result = resultUnauthorized
	default:
		result = resultForbidden
	}
	g.metrics.IncrementDecision(permissionLabel(in.Permission), result)
	span.SetAttributes(attribute.String("authz.result", result))

	if err != nil {
		span.SetStatus(codes.Error, result)
		if g.logger != nil {
			attrs := []any{
				"permission", in.Permission,
				"role", in.Subject.Role,
				"result", result,
				"request_id", requestcontext.RequestID(ctx),
			}
			if in.Subject.IsAuthenticated() {
				attrs = append(attrs, "user_id", in.Subject.UserID)
			}
			if in.Resource != nil {
				attrs = append(attrs, "resource_type", in.Resource.Type, "resource_id", in.Resource.ID)
			}
			g.logger.WarnContext(ctx, "authorization denied", attrs...)
		}
	}
	return err
}

// Can is the boolean form of Check.
func (g *Guard) Can(ctx context.Context, in Input) bool {
	return g.Check(ctx, in) == nil
}

// permissionLabel bounds the metric label to the known permission set.
func permissionLabel(p Permission) string {
	if !p.IsKnown() {
		return "unknown"
	}
	return string(p)
}
