// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

// OperatorKey is the context key for the operator name.
// Exported so it can be used consistently across packages.
type OperatorKey struct{}

// RequestIDKey is the context key for the request id of the current action.
type RequestIDKey struct{}

// WithOperator returns a context with the operator name embedded.
func WithOperator(ctx context.Context, operator string) context.Context {
	return context.WithValue(ctx, OperatorKey{}, operator)
}

// OperatorFromContext returns the operator name from context, or empty string if not set.
func OperatorFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(OperatorKey{}).(string); ok {
		return v
	}
	return ""
}

// WithRequestID returns a context carrying the request id sent as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey{}, id)
}

// RequestIDFromContext returns the request id from context, or empty string if not set.
func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(RequestIDKey{}).(string); ok {
		return v
	}
	return ""
}
