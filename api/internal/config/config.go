package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port string

	LLMDefault string
	LLMTimeout time.Duration

	OpenAIAPIKey      string
	OpenAIBaseURL     string
	OpenAIModel       string
	OpenAITemperature float64

	GeminiAPIKey string
	GeminiModel  string

	TelegramBotToken string
	WebhookURL       string
	WebAppURL        string

	CORSAllowedOrigins []string

	LogLevel  string
	LogFormat string
}

var defaults = map[string]any{
	"PORT":                 "8000",
	"LLM_DEFAULT":          "gpt",
	"LLM_TIMEOUT":          "60s",
	"OPENAI_BASE_URL":      "https://api.llm7.io/v1",
	"OPENAI_MODEL":         "gpt-4.1-mini",
	"OPENAI_TEMPERATURE":   1.0,
	"GEMINI_MODEL":         "gemini-2.5-flash",
	"CORS_ALLOWED_ORIGINS": "*",
	"LOG_LEVEL":            "info",
	"LOG_FORMAT":           "console",
}

// Load читает .env (если есть) и переменные окружения.
func Load() (*Config, error) {
	loadEnvFile()
	return FromViper(newViper())
}

func loadEnvFile() {
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	return v
}

// FromViper собирает и проверяет конфиг из уже настроенного viper.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:              strings.TrimSpace(v.GetString("PORT")),
		LLMDefault:        strings.ToLower(strings.TrimSpace(v.GetString("LLM_DEFAULT"))),
		LLMTimeout:        v.GetDuration("LLM_TIMEOUT"),
		OpenAIAPIKey:      strings.TrimSpace(v.GetString("OPENAI_API_KEY")),
		OpenAIBaseURL:     strings.TrimSpace(v.GetString("OPENAI_BASE_URL")),
		OpenAIModel:       strings.TrimSpace(v.GetString("OPENAI_MODEL")),
		OpenAITemperature: v.GetFloat64("OPENAI_TEMPERATURE"),
		GeminiAPIKey:      strings.TrimSpace(v.GetString("GEMINI_API_KEY")),
		GeminiModel:       strings.TrimSpace(v.GetString("GEMINI_MODEL")),
		TelegramBotToken:  strings.TrimSpace(v.GetString("TELEGRAM_BOT_TOKEN")),
		WebhookURL:        strings.TrimSpace(v.GetString("WEBHOOK_URL")),
		WebAppURL:         strings.TrimSpace(v.GetString("WEBAPP_URL")),
		LogLevel:          strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		LogFormat:         strings.ToLower(strings.TrimSpace(v.GetString("LOG_FORMAT"))),
	}
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is empty")
	}
	if c.LLMTimeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive")
	}
	switch c.LLMDefault {
	case "gpt", "openai", "llm7":
		if c.OpenAIModel == "" {
			return fmt.Errorf("OPENAI_MODEL is empty")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when LLM_DEFAULT=gemini")
		}
	default:
		return fmt.Errorf("unknown LLM_DEFAULT %q", c.LLMDefault)
	}
	if c.OpenAITemperature < 0 || c.OpenAITemperature > 2 {
		return fmt.Errorf("OPENAI_TEMPERATURE must be within [0,2]")
	}
	return nil
}

// RequireTelegram — бот без токена не запустится.
func (c *Config) RequireTelegram() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("missing required env TELEGRAM_BOT_TOKEN")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
