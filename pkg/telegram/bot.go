package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Config configures a Bot.
type Config struct {
	Token string
	// APIBaseURL defaults to DefaultAPIBaseURL. Tests point it at an httptest server.
	APIBaseURL string
	HTTPClient *http.Client
}

// Bot is the Telegram Bot API client.
type Bot struct {
	api *tgbotapi.BotAPI
}

// NewBot creates a Bot. It makes no network call; use Identify to check the token.
func NewBot(cfg Config) (*Bot, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}

	baseURL := strings.TrimRight(cfg.APIBaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	api := &tgbotapi.BotAPI{
		Token:  cfg.Token,
		Client: client,
		Buffer: 100,
	}
	api.SetAPIEndpoint(baseURL + "/bot%s/%s")

	return &Bot{api: api}, nil
}

// Identify calls getMe and remembers the bot's own user.
func (b *Bot) Identify() error {
	me, err := b.api.GetMe()
	if err != nil {
		return wrapError("getMe", err)
	}
	b.api.Self = me
	return nil
}

// Username returns the bot's username, known after a successful Identify.
func (b *Bot) Username() string {
	return b.api.Self.UserName
}

// SetWebhook registers the webhook URL with Telegram.
// A non-empty secretToken is echoed back by Telegram in SecretTokenHeader on every delivery.
func (b *Bot) SetWebhook(webhookURL, secretToken string) error {
	u, err := url.Parse(webhookURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid webhook url %q", webhookURL)
	}

	params := tgbotapi.Params{}
	params["url"] = u.String()
	params.AddNonEmpty("secret_token", secretToken)

	if _, err := b.api.MakeRequest("setWebhook", params); err != nil {
		return wrapError("setWebhook", err)
	}
	return nil
}

// SendMessage sends a plain text message to a Telegram chat.
func (b *Bot) SendMessage(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return wrapError("sendMessage", err)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Request(msg); err != nil {
		return wrapError("sendMessage", err)
	}
	return nil
}
