package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"llm-telegram-relay/config"
	_ "llm-telegram-relay/docs" // Swagger docs
	"llm-telegram-relay/internal/httpserver"
	"llm-telegram-relay/internal/middleware"
	relayHTTP "llm-telegram-relay/internal/relay/delivery/http"
	tgDelivery "llm-telegram-relay/internal/relay/delivery/telegram"
	"llm-telegram-relay/internal/relay/usecase"
	"llm-telegram-relay/internal/webhook"
	"llm-telegram-relay/pkg/llmprovider"
	"llm-telegram-relay/pkg/log"
	"llm-telegram-relay/pkg/telegram"
)

const webhookPath = "/telegram/webhook"

// @title       LLM Telegram Relay API
// @description Relays prompts from a REST endpoint and a Telegram bot webhook to an OpenAI-compatible completion backend.
// @version     1
// @host        localhost:8080
// @schemes     http
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
		FilePath:     cfg.Logger.FilePath,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting LLM Telegram Relay...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Backend: %s %s (model %s)", cfg.OpenAI.Backend, cfg.OpenAI.URL, cfg.OpenAI.Model)

	// 3. Outbound clients
	provider, err := llmprovider.New(cfg.OpenAI, &http.Client{Timeout: 2 * time.Minute})
	if err != nil {
		return fmt.Errorf("failed to initialize completion backend: %w", err)
	}

	bot, err := telegram.NewBot(telegram.Config{
		Token:      cfg.Telegram.BotToken,
		APIBaseURL: cfg.Telegram.APIBaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize telegram bot: %w", err)
	}
	if err := bot.Identify(); err != nil {
		logger.Warnf(ctx, "Telegram getMe failed, continuing: %v", err)
	} else {
		logger.Infof(ctx, "Telegram bot @%s ready", bot.Username())
	}

	registerWebhook(ctx, logger, bot, cfg)

	// 4. Relay domain
	uc := usecase.New(logger, provider, bot)
	mw := middleware.New(logger, cfg.API.Token)
	security := webhook.NewSecurityValidator(webhook.SecurityConfig{
		Secret:     cfg.Telegram.WebhookSecret,
		AllowedIPs: cfg.Telegram.AllowedIPs,
	})

	// 5. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Host:            cfg.HTTPServer.Host,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		CORSOrigins:     cfg.CORS.AllowedOrigins,
		Middleware:      mw,
		ChatHandler:     relayHTTP.New(logger, uc),
		TelegramHandler: tgDelivery.New(logger, uc, security),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	// 6. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Errorf(ctx, "Failed to run server: %v", err)
		return err
	}

	logger.Info(ctx, "Server stopped gracefully")
	return nil
}

// registerWebhook points Telegram at this service: the configured URL wins,
// otherwise the ngrok tunnel is used when NGROK_API_URL is set. Failures are not fatal.
func registerWebhook(ctx context.Context, logger log.Logger, bot *telegram.Bot, cfg *config.Config) {
	webhookURL := cfg.Telegram.WebhookURL
	if webhookURL == "" && cfg.Ngrok.APIURL != "" {
		ngrokURL, err := detectNgrokURL(ctx, cfg.Ngrok.APIURL)
		if err != nil {
			logger.Warnf(ctx, "Could not detect ngrok URL: %v", err)
		} else {
			webhookURL = ngrokURL + webhookPath
			logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
		}
	}

	if webhookURL == "" {
		logger.Info(ctx, "TELEGRAM_WEBHOOK_URL not set, leaving webhook registration as is")
		return
	}

	if err := bot.SetWebhook(webhookURL, cfg.Telegram.WebhookSecret); err != nil {
		logger.Warnf(ctx, "Failed to set Telegram webhook: %v", err)
		return
	}
	logger.Infof(ctx, "Telegram webhook registered at %s", webhookURL)
}
