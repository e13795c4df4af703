// Package requestcontext provides HTTP-independent context accessors for request-scoped values.
//
// Middleware owned by the calling transport sets these values; the audit
// publisher reads them to fill event defaults. Keeping the package free of
// net/http lets core modules import it without pulling in transport code.
//
// Usage in middleware (set values):
//
//	ctx = requestcontext.WithSubject(ctx, subject)
//	ctx = requestcontext.WithRequestID(ctx, requestID)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"

	"serviceheft/pkg/domain"
)

// Context key types (unexported for encapsulation).
type (
	subjectKey       struct{}
	requestIDKey     struct{}
	correlationIDKey struct{}
	userAgentKey     struct{}
	requestTimeKey   struct{}
)

// Subject retrieves the resolved subject from the context.
// Returns the anonymous subject if none is set.
func Subject(ctx context.Context) domain.Subject {
	if s, ok := ctx.Value(subjectKey{}).(domain.Subject); ok {
		return s
	}
	return domain.Anonymous()
}

// WithSubject injects the resolved subject into the context.
func WithSubject(ctx context.Context, subject domain.Subject) context.Context {
	return context.WithValue(ctx, subjectKey{}, subject)
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// CorrelationID retrieves the cross-request correlation ID from the context.
func CorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return id
	}
	return ""
}

// WithCorrelationID injects a correlation ID into the context.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, correlationID)
}

// UserAgent retrieves the raw User-Agent from the context.
// Never store or log this value directly; pseudonymize or summarize it first.
func UserAgent(ctx context.Context) string {
	if ua, ok := ctx.Value(userAgentKey{}).(string); ok {
		return ua
	}
	return ""
}

// WithUserAgent injects the User-Agent into the context.
func WithUserAgent(ctx context.Context, userAgent string) context.Context {
	return context.WithValue(ctx, userAgentKey{}, userAgent)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set (workers, CLI, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
