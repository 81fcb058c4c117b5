package request

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"syscall"
)

// Error is the cause handed to OnFail.
type Error struct {
	Kind     Kind
	Attempts int
	Err      error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s after %d attempt(s)", e.Kind, e.Attempts)
	}
	return fmt.Sprintf("%s after %d attempt(s): %v", e.Kind, e.Attempts, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// DecodeError reports a response body that could not be interpreted as JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// KindOf returns the classification carried by err, or KindUnclassified.
func KindOf(err error) Kind {
	var reqErr *Error
	if errors.As(err, &reqErr) {
		return reqErr.Kind
	}
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return KindParseFailure
	}
	return KindUnclassified
}

// classifyError decides whether a failed exchange is a transport failure.
func classifyError(err error) Kind {
	if err == nil {
		return KindUnclassified
	}
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return KindParseFailure
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, io.EOF),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.EPIPE):
		return KindTransportFailure
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return KindTransportFailure
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindTransportFailure
	}
	return KindUnclassified
}
