package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"
)

// Config holds all service configuration. It is built once at startup and never mutated.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	CORS       CORSConfig

	// Relay
	OpenAI   OpenAIConfig
	Telegram TelegramConfig
	API      APIConfig
	Ngrok    NgrokConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Host string
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
	FilePath     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// OpenAIConfig describes the completion backend and its static sampling parameters.
type OpenAIConfig struct {
	URL         string
	Model       string
	APIKey      string // optional; LocalAI usually runs without one
	Backend     string // "openai" or "localai"
	Temperature float64
	TopP        float64
	TopK        int
	MaxContext  int
}

type TelegramConfig struct {
	BotToken      string
	APIBaseURL    string
	WebhookURL    string
	WebhookSecret string
	AllowedIPs    []string
}

// APIConfig holds the bearer secret protecting POST /chat.
type APIConfig struct {
	Token string
}

type NgrokConfig struct {
	APIURL string
}

// required lists the environment variables the process cannot start without.
var required = []struct {
	key string
	env string
}{
	{"open_ai.url", "OPEN_AI_URL"},
	{"open_ai.model", "OPEN_AI_MODEL"},
	{"telegram.bot_token", "TELEGRAM_BOT_TOKEN"},
	{"api.token", "API_TOKEN"},
}

// Load loads configuration using Viper.
// Values come from the environment, optionally seeded by a .env file in the working directory.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/app/")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := validate(v); err != nil {
		return nil, err
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Host = v.GetString("server.host_name")
	cfg.HTTPServer.Port = v.GetInt("server.host_port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")
	cfg.Logger.FilePath = v.GetString("logger.file_path")
	cfg.CORS.AllowedOrigins = splitList(v.GetString("cors.allowed_origins"))

	// Completion backend
	cfg.OpenAI.URL = strings.TrimRight(v.GetString("open_ai.url"), "/")
	cfg.OpenAI.Model = v.GetString("open_ai.model")
	cfg.OpenAI.APIKey = v.GetString("open_ai.api_key")
	cfg.OpenAI.Backend = strings.ToLower(v.GetString("open_ai.backend"))
	cfg.OpenAI.Temperature = v.GetFloat64("open_ai.temperature")
	cfg.OpenAI.TopP = v.GetFloat64("open_ai.top_p")
	cfg.OpenAI.TopK = v.GetInt("open_ai.top_k")
	cfg.OpenAI.MaxContext = v.GetInt("open_ai.max_context")

	// Telegram
	cfg.Telegram.BotToken = v.GetString("telegram.bot_token")
	cfg.Telegram.APIBaseURL = strings.TrimRight(v.GetString("telegram.api_base_url"), "/")
	cfg.Telegram.WebhookURL = v.GetString("telegram.webhook_url")
	cfg.Telegram.WebhookSecret = v.GetString("telegram.webhook_secret")
	cfg.Telegram.AllowedIPs = splitList(v.GetString("telegram.allowed_ips"))

	cfg.API.Token = v.GetString("api.token")
	cfg.Ngrok.APIURL = v.GetString("ngrok.api_url")

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("server.host_name", "127.0.0.1")
	v.SetDefault("server.host_port", 80)
	v.SetDefault("http_server.mode", "release")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", "production")
	v.SetDefault("logger.encoding", "json")
	v.SetDefault("logger.color_enabled", false)

	v.SetDefault("open_ai.backend", BackendOpenAI)
	v.SetDefault("open_ai.temperature", 0.7)
	v.SetDefault("open_ai.top_p", 1.0)
	v.SetDefault("open_ai.top_k", 40)
	v.SetDefault("open_ai.max_context", 0)

	v.SetDefault("telegram.api_base_url", "https://api.telegram.org")
}

const (
	BackendOpenAI  = "openai"
	BackendLocalAI = "localai"
)

// validate reports every missing required variable at once.
func validate(v *viper.Viper) error {
	var result *multierror.Error
	for _, r := range required {
		if strings.TrimSpace(v.GetString(r.key)) == "" {
			result = multierror.Append(result, fmt.Errorf("environment variable %s is not set or empty", r.env))
		}
	}

	switch strings.ToLower(v.GetString("open_ai.backend")) {
	case BackendOpenAI, BackendLocalAI:
	default:
		result = multierror.Append(result, fmt.Errorf("OPEN_AI_BACKEND must be %q or %q, got %q",
			BackendOpenAI, BackendLocalAI, v.GetString("open_ai.backend")))
	}

	if v.GetInt("server.host_port") <= 0 {
		result = multierror.Append(result, fmt.Errorf("SERVER_HOST_PORT must be positive"))
	}

	return result.ErrorOrNil()
}

// loadDotEnv copies KEY=VALUE pairs from path into the process environment.
// Variables that are already set win. A missing file is not an error.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}

	dv := viper.New()
	dv.SetConfigFile(path)
	dv.SetConfigType("env")
	if err := dv.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading %s: %w", path, err)
	}

	for _, key := range dv.AllKeys() {
		env := strings.ToUpper(key)
		if _, set := os.LookupEnv(env); set {
			continue
		}
		if err := os.Setenv(env, dv.GetString(key)); err != nil {
			return fmt.Errorf("setenv %s: %w", env, err)
		}
	}
	return nil
}

// splitList splits a comma separated value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
