package http

import (
	"errors"
	"net/http"

	"llm-telegram-relay/internal/relay"
	"llm-telegram-relay/pkg/llmprovider"
	"llm-telegram-relay/pkg/response"
)

// mapError translates use-case errors into HTTP errors.
func (h *handler) mapError(err error) *response.Err {
	var backendErr *llmprovider.BackendError
	switch {
	case errors.Is(err, relay.ErrEmptyPrompt):
		return response.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.As(err, &backendErr):
		return response.NewHTTPError(http.StatusBadGateway, response.BadGatewayMessage)
	default:
		return response.NewHTTPError(http.StatusInternalServerError, response.DefaultErrorMessage)
	}
}
