// Package testutil builds request contexts the way transport middleware
// would, for tests of code that reads pkg/requestcontext.
package testutil

import (
	"context"
	"time"

	"serviceheft/pkg/domain"
	"serviceheft/pkg/requestcontext"
)

// RequestTime is the fixed clock used by RequestContext.
var RequestTime = time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)

// RequestContext returns a context carrying subject, a request ID and the
// fixed RequestTime. This is the typical state of an authenticated request.
func RequestContext(subject domain.Subject) context.Context {
	ctx := requestcontext.WithSubject(context.Background(), subject)
	ctx = requestcontext.WithRequestID(ctx, "req-test")
	return requestcontext.WithTime(ctx, RequestTime)
}

// WithUserAgent adds a raw User-Agent to ctx.
func WithUserAgent(ctx context.Context, userAgent string) context.Context {
	return requestcontext.WithUserAgent(ctx, userAgent)
}
