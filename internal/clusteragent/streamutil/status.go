// Package streamutil holds the small pieces of plumbing shared by every
// streaming core component: a cancellation-aware reader wrap and the
// shutdown-wrap goroutine.
package streamutil

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/grpc/codes"
)

// StatusError is a terminal stream error carrying a transport status
// code. The core never imports the transport package itself; codes.Code
// is used here purely as a well-known, already-wired enum for "what kind
// of terminal condition is this" (UNAUTHENTICATED, PERMISSION_DENIED,
// NOT_FOUND, UNAVAILABLE, UNKNOWN).
type StatusError struct {
	Code    codes.Code
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewStatusError builds a StatusError.
func NewStatusError(code codes.Code, format string, args ...any) *StatusError {
	return &StatusError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ShuttingDown is the fixed terminal error emitted whenever a stream is
// ended by cancellation.
func ShuttingDown() *StatusError {
	return NewStatusError(codes.Unavailable, "Server is shutting down")
}

// CancelAwareReader wraps an io.Reader so that Read returns (0, nil) once
// ctx is done, without blocking on the underlying reader beyond a single
// call. The downstream line scanner interprets a 0-byte, nil-error read
// as end-of-stream.
type CancelAwareReader struct {
	ctx   context.Context
	inner io.Reader
}

// NewCancelAwareReader wraps inner with a cancellation check.
func NewCancelAwareReader(ctx context.Context, inner io.Reader) *CancelAwareReader {
	return &CancelAwareReader{ctx: ctx, inner: inner}
}

func (r *CancelAwareReader) Read(p []byte) (int, error) {
	select {
	case <-r.ctx.Done():
		return 0, nil
	default:
	}
	return r.inner.Read(p)
}
