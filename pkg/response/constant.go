package response

const (
	MessageSuccess      = "Success"
	DefaultErrorMessage = "Something went wrong"
	BadGatewayMessage   = "Upstream service unavailable"

	BadRequestErrorCode     = 1
	InternalServerErrorCode = 500
	BadGatewayErrorCode     = 502
)
