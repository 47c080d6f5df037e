package relay

import "context"

// UseCase is the relay pipeline shared by the REST and Telegram entry points.
type UseCase interface {
	// Chat sends the prompt to the completion backend and returns its reply.
	Chat(ctx context.Context, input ChatInput) (ChatOutput, error)

	// HandleUpdate answers a Telegram message: it completes the text and sends
	// the completion back to the originating chat.
	HandleUpdate(ctx context.Context, input UpdateInput) (UpdateOutput, error)
}
