package usecase

import (
	"context"
	"fmt"

	"llm-telegram-relay/internal/metrics"
	"llm-telegram-relay/internal/relay"
)

// HandleUpdate completes the message text and sends the completion to the chat.
// Nothing is sent when the backend fails.
func (uc *implUseCase) HandleUpdate(ctx context.Context, input relay.UpdateInput) (relay.UpdateOutput, error) {
	if input.Text == "" {
		return relay.UpdateOutput{}, relay.ErrMissingText
	}
	if input.ChatID == 0 {
		return relay.UpdateOutput{}, relay.ErrMissingChat
	}

	reply, err := uc.complete(ctx, input.Text)
	if err != nil {
		uc.l.Errorf(ctx, "relay.usecase.HandleUpdate: update %d: backend failed: %v", input.UpdateID, err)
		return relay.UpdateOutput{}, fmt.Errorf("complete: %w", err)
	}

	output := relay.UpdateOutput{Reply: reply}

	err = uc.sender.SendMessage(ctx, input.ChatID, reply)
	metrics.RecordTelegramSend(err)
	if err != nil {
		uc.l.Errorf(ctx, "relay.usecase.HandleUpdate: update %d: send to chat %d failed: %v", input.UpdateID, input.ChatID, err)
		return output, fmt.Errorf("send message: %w", err)
	}

	output.Delivered = true
	uc.l.Infof(ctx, "relay.usecase.HandleUpdate: update %d answered in chat %d", input.UpdateID, input.ChatID)
	return output, nil
}
