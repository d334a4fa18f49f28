// Package requestid contains utilities for handling the request id.
package requestid

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type requestIDKeyType struct{}

var requestIDKey requestIDKeyType

// InjectRequestID injects a given requestID into a context.
func InjectRequestID(ctx context.Context, requestID ulid.ULID) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// ExtractRequestID extracts a requestID from a context if it exists.
// If none is found, then the zero ULID is returned.
func ExtractRequestID(ctx context.Context) ulid.ULID {
	if v, ok := ctx.Value(requestIDKey).(ulid.ULID); ok {
		return v
	}
	return ulid.ULID{}
}

// String returns the request id in ctx as text, or "" if there is none.
func String(ctx context.Context) string {
	id, ok := ctx.Value(requestIDKey).(ulid.ULID)
	if !ok {
		return ""
	}
	return id.String()
}
