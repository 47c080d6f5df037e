package llmprovider

import "context"

// Provider turns a prompt into a completion.
type Provider interface {
	// Complete sends a single request and returns the completion text.
	// Failures are *BackendError.
	Complete(ctx context.Context, prompt string) (string, error)

	// Name returns the backend kind (e.g., "openai", "localai")
	Name() string

	// Model returns the model being used
	Model() string
}

// Parameters are the static sampling parameters sent with every request.
type Parameters struct {
	Model       string
	Temperature float64
	TopP        float64
	TopK        int // ignored by chat-completion backends
	MaxContext  int // sent as max_tokens; zero leaves it to the backend
}
