package localai

const (
	// CompletionsPath is appended to the configured base URL.
	CompletionsPath = "/v1/completions"

	// MaxResponseBytes caps how much of a response body is read.
	MaxResponseBytes = 1 << 20
)
