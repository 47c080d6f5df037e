package telegram

import (
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Error is returned when a Bot API call fails, either in transport or with ok=false.
type Error struct {
	Method string
	Code   int
	Err    error
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("telegram %s API error %d: %v", e.Method, e.Code, e.Err)
	}
	return fmt.Sprintf("telegram %s: %v", e.Method, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapError(method string, err error) error {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return &Error{Method: method, Code: apiErr.Code, Err: err}
	}
	return &Error{Method: method, Err: err}
}
