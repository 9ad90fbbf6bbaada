package analysis

import (
	"errors"
	"fmt"
)

// ErrUnknownAction reports an action string outside the supported set.
var ErrUnknownAction = errors.New("unknown action")

// ErrMissingAnnotation reports that the requested output needs an
// annotation layer the configured engine did not compute.
var ErrMissingAnnotation = errors.New("annotation layer not available")

// FetchError wraps any failure to retrieve a document, keeping the URL
// so callers can report it without inspecting the cause.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
