package telegram

import (
	"llm-telegram-relay/internal/relay"
	pkgTelegram "llm-telegram-relay/pkg/telegram"
)

const (
	statusProcessed = "processed"
	statusDuplicate = "duplicate"
	statusFailed    = "failed"
)

type ackResp struct {
	Status string `json:"status"`
}

func toUpdateInput(u pkgTelegram.Update) relay.UpdateInput {
	return relay.UpdateInput{
		UpdateID: u.UpdateID,
		ChatID:   u.ChatID(),
		Text:     u.Text(),
	}
}

// validateUpdate rejects updates that cannot be answered.
func validateUpdate(u pkgTelegram.Update) error {
	if u.Text() == "" {
		return relay.ErrMissingText
	}
	if u.ChatID() == 0 {
		return relay.ErrMissingChat
	}
	return nil
}
