package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a detail load that produced no record.
	ErrNotFound = errors.New("not found")
	// ErrMalformed marks a body that decoded badly or lacks an expected field.
	ErrMalformed = errors.New("malformed response")
)

// FetchError describes a failed upstream request.
// Status is zero when no response was received.
type FetchError struct {
	URL     string
	Status  int
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("fetch %s: %s", e.URL, e.Message)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}
