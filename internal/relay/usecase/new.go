package usecase

import (
	"context"

	"llm-telegram-relay/internal/relay"
	"llm-telegram-relay/pkg/llmprovider"
	pkgLog "llm-telegram-relay/pkg/log"
)

// MessageSender delivers text to a Telegram chat. *telegram.Bot satisfies it.
type MessageSender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

type implUseCase struct {
	l        pkgLog.Logger
	provider llmprovider.Provider
	sender   MessageSender
}

// New creates a new relay UseCase instance.
func New(l pkgLog.Logger, provider llmprovider.Provider, sender MessageSender) relay.UseCase {
	return &implUseCase{
		l:        l,
		provider: provider,
		sender:   sender,
	}
}
