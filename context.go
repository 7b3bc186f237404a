package authsession

import "context"

type requestIDContextKey struct{}

// WithRequestID attaches a caller-chosen request identifier to ctx. The CRM
// client sends it as X-Request-ID instead of generating one, which lets a
// screen correlate its own retries in the server logs.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, requestID)
}

// RequestIDFromContext reports the request identifier attached by
// WithRequestID, if any.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	requestID, _ := ctx.Value(requestIDContextKey{}).(string)
	return requestID, requestID != ""
}
