package telegram

const (
	// DefaultAPIBaseURL is the public Bot API host.
	DefaultAPIBaseURL = "https://api.telegram.org"

	// SecretTokenHeader carries the secret_token given to setWebhook.
	SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"
)
