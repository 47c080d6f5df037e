package http

import (
	"strings"

	"llm-telegram-relay/internal/relay"
)

// --- Request DTOs ---

type chatReq struct {
	Prompt string `json:"prompt"`
}

func (r chatReq) validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return relay.ErrEmptyPrompt
	}
	return nil
}

func (r chatReq) toInput() relay.ChatInput {
	return relay.ChatInput{Prompt: r.Prompt}
}

// --- Response DTOs ---

type chatResp struct {
	Reply string `json:"reply"`
}

func (h *handler) newChatResp(out relay.ChatOutput) chatResp {
	return chatResp{Reply: out.Reply}
}
