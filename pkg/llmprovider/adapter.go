package llmprovider

import (
	"context"
	"errors"
	"fmt"

	"llm-telegram-relay/pkg/localai"
	"llm-telegram-relay/pkg/openai"
)

// OpenAIAdapter adapts pkg/openai to llmprovider.Provider interface
type OpenAIAdapter struct {
	client openai.IOpenAI
	params Parameters
}

// NewOpenAIAdapter creates a new chat-completion adapter
func NewOpenAIAdapter(client openai.IOpenAI, params Parameters) *OpenAIAdapter {
	return &OpenAIAdapter{client: client, params: params}
}

// Complete implements Provider interface
func (a *OpenAIAdapter) Complete(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	resp, err := a.client.ChatCompletion(ctx, &openai.Request{
		Prompt:      prompt,
		Temperature: float32(a.params.Temperature),
		TopP:        float32(a.params.TopP),
		MaxTokens:   a.params.MaxContext,
	})
	if err != nil {
		var statusErr *openai.StatusError
		switch {
		case errors.As(err, &statusErr):
			return "", &BackendError{Provider: a.Name(), Kind: KindUpstream, StatusCode: statusErr.StatusCode, Body: statusErr.Body, Err: err}
		case errors.Is(err, openai.ErrDecode):
			return "", &BackendError{Provider: a.Name(), Kind: KindDecode, Err: err}
		default:
			return "", &BackendError{Provider: a.Name(), Kind: KindTransport, Err: err}
		}
	}

	if resp == nil || resp.Content == "" {
		return "", &BackendError{Provider: a.Name(), Kind: KindDecode, Err: fmt.Errorf("%w: missing content", openai.ErrDecode)}
	}

	return resp.Content, nil
}

// Name returns provider name
func (a *OpenAIAdapter) Name() string {
	return "openai"
}

// Model returns model name
func (a *OpenAIAdapter) Model() string {
	return a.client.Model()
}

// LocalAIAdapter adapts pkg/localai to llmprovider.Provider interface
type LocalAIAdapter struct {
	client localai.ILocalAI
	params Parameters
}

// NewLocalAIAdapter creates a new LocalAI adapter
func NewLocalAIAdapter(client localai.ILocalAI, params Parameters) *LocalAIAdapter {
	return &LocalAIAdapter{client: client, params: params}
}

// Complete implements Provider interface
func (a *LocalAIAdapter) Complete(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	resp, err := a.client.Complete(ctx, &localai.Request{
		Prompt:      prompt,
		Temperature: a.params.Temperature,
		TopP:        a.params.TopP,
		TopK:        a.params.TopK,
		MaxTokens:   a.params.MaxContext,
	})
	if err != nil {
		var statusErr *localai.StatusError
		switch {
		case errors.As(err, &statusErr):
			return "", &BackendError{Provider: a.Name(), Kind: KindUpstream, StatusCode: statusErr.StatusCode, Body: statusErr.Body, Err: err}
		case errors.Is(err, localai.ErrDecode):
			return "", &BackendError{Provider: a.Name(), Kind: KindDecode, Err: err}
		default:
			return "", &BackendError{Provider: a.Name(), Kind: KindTransport, Err: err}
		}
	}

	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0].Text == "" {
		return "", &BackendError{Provider: a.Name(), Kind: KindDecode, Err: fmt.Errorf("%w: no choices", localai.ErrDecode)}
	}

	return resp.Choices[0].Text, nil
}

// Name returns the provider name
func (a *LocalAIAdapter) Name() string {
	return "localai"
}

// Model returns the model name
func (a *LocalAIAdapter) Model() string {
	return a.client.Model()
}
