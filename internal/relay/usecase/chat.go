package usecase

import (
	"context"
	"fmt"
	"strings"

	"llm-telegram-relay/internal/relay"
)

// Chat relays a REST prompt to the backend.
func (uc *implUseCase) Chat(ctx context.Context, input relay.ChatInput) (relay.ChatOutput, error) {
	if strings.TrimSpace(input.Prompt) == "" {
		return relay.ChatOutput{}, relay.ErrEmptyPrompt
	}

	reply, err := uc.complete(ctx, input.Prompt)
	if err != nil {
		uc.l.Errorf(ctx, "relay.usecase.Chat: backend failed: %v", err)
		return relay.ChatOutput{}, fmt.Errorf("complete: %w", err)
	}

	return relay.ChatOutput{Reply: reply}, nil
}
