package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	sdk "github.com/sashabaranov/go-openai"
)

// Client implements IOpenAI on top of go-openai.
type Client struct {
	client *sdk.Client
	model  string
}

// New creates a chat-completion client. httpClient may be nil.
func New(cfg Config, httpClient *http.Client) (*Client, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	sdkCfg := sdk.DefaultConfig(cfg.APIKey)
	sdkCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/") + APIVersionPath

	hc := &http.Client{}
	if httpClient != nil {
		copied := *httpClient
		hc = &copied
	}
	next := hc.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	if cfg.APIKey == "" {
		// go-openai always sends "Bearer <key>"; keyless LocalAI setups get no header at all.
		next = dropEmptyBearer{next: next}
	}
	hc.Transport = keepErrorBody{next: next}
	sdkCfg.HTTPClient = hc

	return &Client{
		client: sdk.NewClientWithConfig(sdkCfg),
		model:  cfg.Model,
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// ChatCompletion sends the prompt as a single user message.
func (c *Client) ChatCompletion(ctx context.Context, req *Request) (*Response, error) {
	raw := &errorBody{}
	ctx = context.WithValue(ctx, errorBodyKey{}, raw)

	resp, err := c.client.CreateChatCompletion(ctx, sdk.ChatCompletionRequest{
		Model: c.model,
		Messages: []sdk.ChatCompletionMessage{
			{Role: sdk.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: req.Temperature,
		TopP:        req.TopP,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, classify(err, raw.String())
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices", ErrDecode)
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return nil, fmt.Errorf("%w: missing content in the response", ErrDecode)
	}

	return &Response{
		Content: content,
		Model:   resp.Model,
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// classify maps go-openai errors onto StatusError and ErrDecode.
// raw is the upstream body of a non-2xx response, if one was read.
func classify(err error, raw string) error {
	var apiErr *sdk.APIError
	if errors.As(err, &apiErr) {
		body := apiErr.Message
		if body == "" {
			body = raw
		}
		return &StatusError{StatusCode: apiErr.HTTPStatusCode, Body: body}
	}

	// RequestError means the error body was not the OpenAI error envelope.
	var reqErr *sdk.RequestError
	if errors.As(err, &reqErr) {
		body := raw
		if body == "" && reqErr.Err != nil {
			body = reqErr.Err.Error()
		}
		return &StatusError{StatusCode: reqErr.HTTPStatusCode, Body: body}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return fmt.Errorf("failed to send request: %w", err)
}

type dropEmptyBearer struct {
	next http.RoundTripper
}

func (t dropEmptyBearer) RoundTrip(r *http.Request) (*http.Response, error) {
	if strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer")) == "" {
		r = r.Clone(r.Context())
		r.Header.Del("Authorization")
	}
	return t.next.RoundTrip(r)
}

type errorBodyKey struct{}

type errorBody struct {
	data []byte
}

func (b *errorBody) String() string {
	return strings.TrimSpace(string(b.data))
}

// keepErrorBody copies non-2xx response bodies into the errorBody carried by the request context.
type keepErrorBody struct {
	next http.RoundTripper
}

func (t keepErrorBody) RoundTrip(r *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(r)
	if err != nil || (resp.StatusCode >= 200 && resp.StatusCode < 300) {
		return resp, err
	}

	holder, ok := r.Context().Value(errorBodyKey{}).(*errorBody)
	if !ok {
		return resp, nil
	}

	data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	resp.Body.Close()
	if readErr != nil {
		return nil, readErr
	}
	holder.data = data
	resp.Body = io.NopCloser(bytes.NewReader(data))
	return resp, nil
}
