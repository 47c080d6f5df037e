package llmprovider

import (
	"fmt"
	"net/http"
	"strings"

	"llm-telegram-relay/config"
	"llm-telegram-relay/pkg/localai"
	"llm-telegram-relay/pkg/openai"
)

// New creates the Provider selected by cfg.Backend. httpClient may be nil.
func New(cfg config.OpenAIConfig, httpClient *http.Client) (Provider, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("backend URL is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	params := Parameters{
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		TopP:        cfg.TopP,
		TopK:        cfg.TopK,
		MaxContext:  cfg.MaxContext,
	}

	switch strings.ToLower(cfg.Backend) {
	case "", config.BackendOpenAI:
		client, err := openai.New(openai.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.URL,
			Model:   cfg.Model,
		}, httpClient)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai client: %w", err)
		}
		return NewOpenAIAdapter(client, params), nil

	case config.BackendLocalAI:
		client, err := localai.New(localai.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.URL,
			Model:   cfg.Model,
		}, httpClient)
		if err != nil {
			return nil, fmt.Errorf("failed to create localai client: %w", err)
		}
		return NewLocalAIAdapter(client, params), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Backend)
	}
}
