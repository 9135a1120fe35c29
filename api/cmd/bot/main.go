package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"compat-bot/api/internal/app"
	"compat-bot/api/internal/config"
	"compat-bot/api/internal/httpserver"
	"compat-bot/api/internal/llm"
	"compat-bot/api/internal/logger"
	"compat-bot/api/internal/telegram"
)

// одновременных расчётов в боте
const maxInFlight = 8

func main() {
	cfg, err := config.Load()
	if err == nil {
		err = cfg.RequireTelegram()
	}
	if err != nil {
		logger.NewStructured("error", "console").Error("config", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.NewStructured(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.WithError(err).Error("telegram init", nil)
		os.Exit(1)
	}
	bot.Debug = false

	deps := app.New(cfg, log)
	def, err := deps.Engines.GetEngine("")
	if err != nil {
		log.WithError(err).Error("default engine", nil)
		os.Exit(1)
	}

	r := &telegram.Router{
		Bot:        bot,
		Service:    deps.Service,
		EngManager: llm.NewManager(def),
		Engines:    deps.Engines,
		WebAppURL:  cfg.WebAppURL,
		Log:        log.With(map[string]interface{}{"component": "telegram"}),
		Timeout:    cfg.LLMTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sem := make(chan struct{}, maxInFlight)
	dispatch := func(upd tgbotapi.Update) {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			return
		}
		go func() {
			defer func() { <-sem }()
			r.HandleUpdate(ctx, upd)
		}()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", deps.Metrics.Handler())

	addr := "0.0.0.0:" + cfg.Port
	log.Info("bot starting", map[string]interface{}{
		"bot":         bot.Self.UserName,
		"llm_default": cfg.LLMDefault,
		"webhook":     cfg.WebhookURL != "",
	})

	if webhookURL := strings.TrimSpace(cfg.WebhookURL); webhookURL != "" {
		err = startWebhookMode(ctx, addr, bot, mux, webhookURL, dispatch, log)
	} else {
		err = startPollingMode(ctx, addr, bot, mux, dispatch, log)
	}
	if err != nil {
		log.WithError(err).Error("bot stopped", nil)
		os.Exit(1)
	}
}

func startWebhookMode(ctx context.Context, addr string, bot *tgbotapi.BotAPI, mux *http.ServeMux, baseURL string, dispatch func(tgbotapi.Update), log logger.Logger) error {
	path := telegram.WebhookPath(bot.Token)
	public := strings.TrimRight(baseURL, "/") + path

	wh, err := tgbotapi.NewWebhook(public)
	if err != nil {
		return err
	}
	wh.DropPendingUpdates = true
	if _, err := bot.Request(wh); err != nil {
		return err
	}

	mux.HandleFunc(path, func(w http.ResponseWriter, req *http.Request) {
		upd, err := bot.HandleUpdate(req)
		if err != nil {
			log.WithError(err).Warn("bad webhook update", nil)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
		dispatch(*upd)
	})

	log.Info("webhook registered", map[string]interface{}{"addr": addr})
	return httpserver.Run(ctx, httpserver.New(addr, mux), log)
}

func startPollingMode(ctx context.Context, addr string, bot *tgbotapi.BotAPI, mux *http.ServeMux, dispatch func(tgbotapi.Update), log logger.Logger) error {
	if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		log.WithError(err).Warn("delete webhook failed", nil)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpserver.Run(ctx, httpserver.New(addr, mux), log)
		cancel()
	}()

	p := &telegram.Poller{Bot: bot, Log: log.With(map[string]interface{}{"component": "polling"})}
	p.Run(ctx, dispatch)
	return <-errCh
}
