package observability

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const RequestIDKey contextKey = "request_id"

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

func NewRequestID() string {
	return uuid.New().String()
}

// requestIDFromHeader keeps a caller-supplied id only when it is a UUID, so
// arbitrary header content never reaches logs.
func requestIDFromHeader(v string) string {
	id, err := uuid.Parse(v)
	if err != nil {
		return NewRequestID()
	}
	return id.String()
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, ok := ctx.Value(RequestIDKey).(string)
	if !ok {
		return ""
	}
	return id
}
