package openai

const (
	// DefaultBaseURL is the OpenAI API host. The client appends APIVersionPath.
	DefaultBaseURL = "https://api.openai.com"

	APIVersionPath = "/v1"

	// maxErrorBody caps how much of a non-2xx response body is kept for StatusError.
	maxErrorBody = 64 << 10
)
