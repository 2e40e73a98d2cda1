// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middleware sets values; services read them. Keeping this package free of
// net/http lets services import only what they need.
//
// Usage in services (read values):
//
//	requestID := requestcontext.RequestID(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in middleware (set values):
//
//	ctx = requestcontext.WithRequestID(ctx, requestID)
//	ctx = requestcontext.WithLocale(ctx, locale)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"
)

// Context key types (unexported for encapsulation).
type (
	requestIDKey   struct{}
	requestTimeKey struct{}
	localeKey      struct{}
	caregiverIDKey struct{}
)

// WithRequestID attaches the correlation id for the current request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the correlation id, or empty when unset.
func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey{}).(string)
	return v
}

// WithTime pins the evaluation clock for the request. All age, display-state,
// and timeline computations read the clock through Now so tests can freeze it.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}

// Now returns the pinned request time, falling back to the wall clock.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithLocale attaches the resolved locale tag for the request.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey{}, locale)
}

// Locale returns the resolved locale tag, or empty when unset.
func Locale(ctx context.Context) string {
	v, _ := ctx.Value(localeKey{}).(string)
	return v
}

// WithCaregiverID attaches the acting caregiver for audit attribution.
func WithCaregiverID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, caregiverIDKey{}, id)
}

// CaregiverID returns the acting caregiver id, or empty when unset.
func CaregiverID(ctx context.Context) string {
	v, _ := ctx.Value(caregiverIDKey{}).(string)
	return v
}
