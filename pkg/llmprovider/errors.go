package llmprovider

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownBackend indicates the configured backend kind is not supported
	ErrUnknownBackend = errors.New("unknown backend")

	// ErrEmptyPrompt indicates Complete was called without a prompt.
	// It is a caller error and is never wrapped in a BackendError.
	ErrEmptyPrompt = errors.New("empty prompt")
)

// ErrorKind classifies a BackendError.
type ErrorKind string

const (
	// KindUpstream: the backend answered outside 2xx.
	KindUpstream ErrorKind = "upstream"
	// KindDecode: the backend answered 2xx with an unusable body.
	KindDecode ErrorKind = "decode"
	// KindTransport: no answer was received.
	KindTransport ErrorKind = "transport"
)

// BackendError wraps every failure of a completion call.
type BackendError struct {
	Provider   string
	Kind       ErrorKind
	StatusCode int    // set for KindUpstream
	Body       string // set for KindUpstream
	Err        error
}

func (e *BackendError) Error() string {
	switch e.Kind {
	case KindUpstream:
		return fmt.Sprintf("provider %s: upstream status %d: %s", e.Provider, e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Kind, e.Err)
	}
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
