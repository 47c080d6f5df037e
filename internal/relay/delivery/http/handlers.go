package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"llm-telegram-relay/pkg/response"
)

// Chat godoc
// @Summary     Complete a prompt
// @Description Sends the prompt to the configured completion backend and returns the completion text.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body body chatReq true "Prompt"
// @Success     200  {object} chatResp
// @Failure     400  {object} response.Resp "Bad Request - malformed JSON or empty prompt"
// @Failure     401  {object} response.Resp "Unauthorized"
// @Failure     502  {object} response.Resp "Bad Gateway - completion backend failed"
// @Router      /chat [POST]
func (h *handler) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processChatReq(c)
	if err != nil {
		h.l.Warnf(ctx, "relay.delivery.http.Chat: invalid request: %v", err)
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Chat(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Chat: %v", err)
		response.HTTPError(c, h.mapError(err))
		return
	}

	c.JSON(http.StatusOK, h.newChatResp(output))
}
