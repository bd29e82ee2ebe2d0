package trace

import "context"

// requestIDKey is an unexported type to avoid context key collisions.
type requestIDKey struct{}

// WithRequestID returns a copy of ctx carrying the given request/run ID.
//
// sched.Composition uses this to thread a per-run github.com/google/uuid
// value through every log line emitted during a single Run call, so that
// Begin/End operation logs for that run can be correlated.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the request ID stored in ctx, if any.
//
// The empty string is a valid request ID and is distinguishable from "not
// set": ok is true whenever WithRequestID was previously called on an
// ancestor of ctx, regardless of the value passed.
func RequestIDFrom(ctx context.Context) (string, bool) {
	v := ctx.Value(requestIDKey{})
	if v == nil {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
