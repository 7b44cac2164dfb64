package api

import "context"

type requestIDContextKey struct{}

// WithRequestID attaches a request ID to ctx. The client forwards it on the
// X-Request-ID header instead of generating one, which lets callers correlate
// a UI action with its backend logs.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, id)
}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDContextKey{}).(string)
	return id
}
