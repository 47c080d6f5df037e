package response

// Resp is the standard JSON response body.
type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Errors    any    `json:"errors,omitempty"`
}

// Err is an error that already knows which HTTP status it maps to.
type Err struct {
	StatusCode int
	Message    string
}

func (e *Err) Error() string {
	return e.Message
}

// NewHTTPError builds an Err for the given status.
func NewHTTPError(statusCode int, message string) *Err {
	return &Err{StatusCode: statusCode, Message: message}
}
