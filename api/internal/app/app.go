package app

import (
	"compat-bot/api/internal/compat"
	"compat-bot/api/internal/config"
	"compat-bot/api/internal/llm"
	"compat-bot/api/internal/llm/gemini"
	"compat-bot/api/internal/llm/openai"
	"compat-bot/api/internal/logger"
	"compat-bot/api/internal/metrics"
)

// Deps — общая сборка для API и бота.
type Deps struct {
	Engines *llm.Engines
	Service *compat.Service
	Metrics *metrics.Metrics
}

// NewEngines собирает провайдеров из конфига. Gemini подключается только при наличии ключа.
func NewEngines(cfg *config.Config) *llm.Engines {
	engs := &llm.Engines{
		OpenAI:  openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, cfg.LLMTimeout),
		Default: cfg.LLMDefault,
	}
	if cfg.GeminiAPIKey != "" {
		engs.Gemini = gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel)
	}
	return engs
}

func New(cfg *config.Config, log logger.Logger) *Deps {
	m := metrics.New()
	engs := NewEngines(cfg)
	svc := compat.NewService(engs, log.With(map[string]interface{}{"component": "compat"}),
		compat.WithTimeout(cfg.LLMTimeout),
		compat.WithTemperature(cfg.OpenAITemperature),
		compat.WithMetrics(m),
	)
	return &Deps{Engines: engs, Service: svc, Metrics: m}
}
