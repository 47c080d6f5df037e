package relay

import "errors"

// Domain-specific errors for the relay package.
var (
	ErrEmptyPrompt = errors.New("prompt is empty")
	ErrMissingText = errors.New("message text is missing")
	ErrMissingChat = errors.New("message chat id is missing")
)
