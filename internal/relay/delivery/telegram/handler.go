package telegram

import (
	"errors"

	"github.com/gin-gonic/gin"

	"llm-telegram-relay/internal/metrics"
	"llm-telegram-relay/pkg/llmprovider"
	pkgResponse "llm-telegram-relay/pkg/response"
	pkgTelegram "llm-telegram-relay/pkg/telegram"
)

// HandleWebhook godoc
// @Summary     Telegram webhook
// @Description Receives a Telegram update, completes the message text and replies in the originating chat.
// @Description Internal failures are acknowledged with 200 so Telegram does not redeliver the update.
// @Tags        Telegram
// @Accept      json
// @Produce     json
// @Param       X-Telegram-Bot-Api-Secret-Token header string false "Webhook secret token"
// @Param       body body pkgTelegram.Update true "Telegram update"
// @Success     200  {object} pkgResponse.Resp
// @Failure     400  {object} pkgResponse.Resp "Bad Request - not JSON, or message text/chat id missing"
// @Failure     401  {object} pkgResponse.Resp "Unauthorized - secret token mismatch"
// @Failure     403  {object} pkgResponse.Resp "Forbidden - source IP not allowed"
// @Router      /telegram/webhook [POST]
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.security.ValidateSecretToken(c.GetHeader(pkgTelegram.SecretTokenHeader)); err != nil {
		h.l.Warnf(ctx, "telegram handler: %v", err)
		metrics.RecordWebhookUpdate(metrics.WebhookRejected)
		pkgResponse.Unauthorized(c)
		return
	}
	if err := h.security.ValidateIPAddress(c.Request); err != nil {
		h.l.Warnf(ctx, "telegram handler: %v", err)
		metrics.RecordWebhookUpdate(metrics.WebhookRejected)
		pkgResponse.Forbidden(c)
		return
	}

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Warnf(ctx, "telegram handler: failed to parse update: %v", err)
		metrics.RecordWebhookUpdate(metrics.WebhookInvalid)
		pkgResponse.Error(c, err, nil)
		return
	}

	if err := validateUpdate(update); err != nil {
		h.l.Warnf(ctx, "telegram handler: update %d rejected: %v", update.UpdateID, err)
		metrics.RecordWebhookUpdate(metrics.WebhookInvalid)
		pkgResponse.Error(c, err, nil)
		return
	}

	if !h.security.FirstDelivery(update.UpdateID) {
		h.l.Infof(ctx, "telegram handler: update %d already handled, skipping", update.UpdateID)
		metrics.RecordWebhookUpdate(metrics.WebhookDuplicate)
		pkgResponse.OK(c, ackResp{Status: statusDuplicate})
		return
	}

	if _, err := h.uc.HandleUpdate(ctx, toUpdateInput(update)); err != nil {
		// Telegram redelivers anything that is not acknowledged, so failures still get a 200.
		h.l.Errorf(ctx, "telegram handler: update %d: %v", update.UpdateID, err)
		metrics.RecordWebhookUpdate(h.failureResult(err))
		pkgResponse.OK(c, ackResp{Status: statusFailed})
		return
	}

	metrics.RecordWebhookUpdate(metrics.WebhookProcessed)
	pkgResponse.OK(c, ackResp{Status: statusProcessed})
}

func (h *handler) failureResult(err error) string {
	var backendErr *llmprovider.BackendError
	if errors.As(err, &backendErr) {
		return metrics.WebhookBackendError
	}
	var tgErr *pkgTelegram.Error
	if errors.As(err, &tgErr) {
		return metrics.WebhookSendError
	}
	return metrics.OutcomeError
}
