package relay

// ChatInput is the input of UseCase.Chat.
type ChatInput struct {
	Prompt string
}

// ChatOutput is the result of UseCase.Chat.
type ChatOutput struct {
	Reply string
}

// UpdateInput is the part of a Telegram update the pipeline needs.
type UpdateInput struct {
	UpdateID int64
	ChatID   int64
	Text     string
}

// UpdateOutput reports how far an update got through the pipeline.
type UpdateOutput struct {
	Reply     string
	Delivered bool // the reply reached Telegram
}
