// Package requestcontext provides HTTP-independent accessors for
// request-scoped values. Middleware sets them, services read them, and tests
// inject them without running the middleware chain.
package requestcontext

import (
	"context"
	"time"
)

type (
	requestIDKey   struct{}
	adminUserKey   struct{}
	requestTimeKey struct{}
)

// Exported context keys for tests that need context.WithValue directly.
var (
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyAdminUser   = adminUserKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// RequestID retrieves the request ID from the context, or "" when unset.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return id
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, id)
}

// AdminUser retrieves the authenticated admin username, or "" when the
// request did not pass the admin gate.
func AdminUser(ctx context.Context) string {
	if u, ok := ctx.Value(ContextKeyAdminUser).(string); ok {
		return u
	}
	return ""
}

// WithAdminUser marks the context as carrying an authenticated admin.
func WithAdminUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, ContextKeyAdminUser, username)
}

// Now retrieves the request-scoped time, falling back to time.Now for
// non-HTTP contexts such as tests and CLI use.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a fixed time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
