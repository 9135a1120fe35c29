package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"compat-bot/api/internal/app"
	"compat-bot/api/internal/config"
	"compat-bot/api/internal/handle"
	"compat-bot/api/internal/httpserver"
	"compat-bot/api/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewStructured("error", "console").Error("config", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.NewStructured(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	deps := app.New(cfg, log)
	h := handle.New(deps.Service, log.With(map[string]interface{}{"component": "http"}), deps.Metrics)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("compat-api starting", map[string]interface{}{
		"port":         cfg.Port,
		"llm_default":  cfg.LLMDefault,
		"openai_model": cfg.OpenAIModel,
		"gemini":       deps.Engines.Gemini != nil,
	})
	srv := httpserver.New("0.0.0.0:"+cfg.Port, h.Routes(cfg.CORSAllowedOrigins))
	if err := httpserver.Run(ctx, srv, log); err != nil {
		log.WithError(err).Error("http server stopped", nil)
		os.Exit(1)
	}
}
