package telegram

import (
	"context"
	"errors"
	"net"
	"regexp"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"compat-bot/api/internal/logger"
)

// UpdatesGetter — long polling часть *tgbotapi.BotAPI.
type UpdatesGetter interface {
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
}

var reRetryAfter = regexp.MustCompile(`(?i)retry after\s+(\d+)`)

func RetryDelayFromError(err error) time.Duration {
	if err == nil {
		return 0
	}
	var tgErr *tgbotapi.Error
	if errors.As(err, &tgErr) && tgErr.RetryAfter > 0 {
		return time.Duration(tgErr.RetryAfter) * time.Second
	}
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "too many requests") { // HTTP 429 от Telegram
		if m := reRetryAfter.FindStringSubmatch(s); len(m) == 2 {
			if n, _ := strconv.Atoi(m[1]); n > 0 {
				return time.Duration(n) * time.Second
			}
		}
		return 3 * time.Second
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return 2 * time.Second
	}
	return 1 * time.Second
}

type Poller struct {
	Bot       UpdatesGetter
	Log       logger.Logger
	BaseDelay time.Duration
	MaxDelay  time.Duration
	// Timeout long polling в секундах.
	Timeout int
	// Idle — пауза после пустой выдачи.
	Idle time.Duration
}

// Run опрашивает getUpdates до отмены ctx, переживая ошибки сети и 429.
func (p *Poller) Run(ctx context.Context, handle func(tgbotapi.Update)) {
	log := p.Log
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	baseDelay, maxDelay := p.BaseDelay, p.MaxDelay
	if baseDelay <= 0 {
		baseDelay = time.Second
	}
	if maxDelay <= 0 {
		maxDelay = 15 * time.Second
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 30
	}
	idle := p.Idle
	if idle <= 0 {
		idle = 200 * time.Millisecond
	}

	offset := 0
	for {
		if ctx.Err() != nil {
			log.Info("polling: context cancelled", nil)
			return
		}

		u := tgbotapi.NewUpdate(offset)
		u.Timeout = timeout

		updates, err := p.Bot.GetUpdates(u)
		if err != nil {
			d := RetryDelayFromError(err)
			if d < baseDelay {
				d = baseDelay
			}
			if d > maxDelay {
				d = maxDelay
			}
			log.WithError(err).Warn("polling error", map[string]interface{}{"retry_in": d.String()})
			if !sleep(ctx, d) {
				return
			}
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			handle(upd)
		}

		if len(updates) == 0 && !sleep(ctx, idle) {
			return
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// WebhookPath — секретный путь вебхука, стабильный для токена.
func WebhookPath(token string) string {
	return "/webhook/" + shortHash(token)
}

func shortHash(s string) string {
	// FNV-1a, не крипто
	h := uint64(1469598103934665603)
	const prime = 1099511628211
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}
	const hexdigits = "0123456789abcdef"
	out := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		out[i] = hexdigits[h&0xF]
		h >>= 4
	}
	return string(out)
}
