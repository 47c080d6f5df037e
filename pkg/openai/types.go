package openai

import (
	"errors"
	"fmt"
)

// Config configures the chat-completion client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Request is a single-turn chat completion request.
type Request struct {
	Prompt      string
	Temperature float32
	TopP        float32
	MaxTokens   int
}

// Response is the first choice of a chat completion.
type Response struct {
	Content string
	Model   string
	Usage   Usage
}

type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ErrDecode is wrapped when the backend answered 2xx with a body that cannot be used.
var ErrDecode = errors.New("invalid completion response")

// StatusError is returned when the backend answers outside 2xx.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Body)
}
