package telegram

import (
	"context"
	"errors"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"compat-bot/api/internal/compat"
	"compat-bot/api/internal/llm"
	"compat-bot/api/internal/logger"
)

const maxMessageLen = 3900

// Sender — часть *tgbotapi.BotAPI, которой пользуется роутер.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Calculator — compat.Service с уже выбранным движком.
type Calculator interface {
	CalculateWithEngine(ctx context.Context, eng llm.Engine, req compat.Request) (compat.Result, error)
}

type Router struct {
	Bot        Sender
	Service    Calculator
	EngManager *llm.Manager
	Engines    *llm.Engines
	WebAppURL  string
	Log        logger.Logger

	// Timeout ограничивает обработку одной команды /compat.
	Timeout time.Duration
}

func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	if !upd.Message.IsCommand() {
		r.sendWithApp(upd.Message.Chat.ID, helpText)
		return
	}
	r.HandleCommand(ctx, upd.Message)
}

func (r *Router) HandleCommand(ctx context.Context, m *tgbotapi.Message) {
	cid := m.Chat.ID
	args := m.CommandArguments()
	switch m.Command() {
	case "start":
		r.sendWithApp(cid, startText)
	case "help":
		r.sendWithApp(cid, helpText)
	case "compat":
		r.handleCompat(ctx, m, args)
	case "engine":
		r.handleEngineCommand(cid, args)
	default:
		r.send(cid, "Неизвестная команда. "+usageText)
	}
}

func (r *Router) handleCompat(ctx context.Context, m *tgbotapi.Message, args string) {
	cid := m.Chat.ID
	req, err := ParseCompatArgs(args)
	if err != nil {
		msg := msgNeedTwoDates
		var ae *ArgsError
		if errors.As(err, &ae) {
			msg = ae.Message
		}
		r.send(cid, msg+"\n\n"+usageText)
		return
	}
	if m.From != nil {
		req.TelegramUserID = formatInt(m.From.ID)
	}

	_, _ = r.Bot.Request(tgbotapi.NewChatAction(cid, tgbotapi.ChatTyping))

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	res, err := r.Service.CalculateWithEngine(ctx, r.EngManager.Get(cid), req)
	if err != nil {
		r.logger().WithError(err).Warn("compat command failed", map[string]interface{}{
			"chat_id": cid,
		})
		r.send(cid, "❌ "+compat.PublicMessage(err))
		return
	}
	r.send(cid, FormatResult(res))
}

// handleEngineCommand показывает или меняет движок чата.
//
//	/engine
//	/engine gpt
//	/engine gemini
func (r *Router) handleEngineCommand(chatID int64, args string) {
	name := strings.ToLower(strings.TrimSpace(args))
	if name == "" {
		cur := r.EngManager.Get(chatID)
		if cur == nil {
			r.send(chatID, "Движок не настроен.\nИспользование: /engine {gpt|gemini}")
			return
		}
		r.send(chatID, "Текущий движок: "+cur.Name()+" ("+cur.GetModel()+")\nИспользование: /engine {gpt|gemini}")
		return
	}
	eng, err := r.Engines.GetEngine(name)
	if err != nil {
		r.send(chatID, "❌ "+err.Error())
		return
	}
	r.EngManager.Set(chatID, eng)
	r.send(chatID, "✅ Движок: "+eng.Name()+" ("+eng.GetModel()+").")
}

func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, truncate(text))
	if _, err := r.Bot.Send(msg); err != nil {
		r.logger().WithError(err).Warn("telegram send failed", map[string]interface{}{"chat_id": chatID})
	}
}

func (r *Router) sendWithApp(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if kb, ok := appKeyboard(r.WebAppURL); ok {
		msg.ReplyMarkup = kb
	}
	if _, err := r.Bot.Send(msg); err != nil {
		r.logger().WithError(err).Warn("telegram send failed", map[string]interface{}{"chat_id": chatID})
	}
}

func (r *Router) logger() logger.Logger {
	if r.Log == nil {
		return logger.NewNoOpLogger()
	}
	return r.Log
}

func truncate(s string) string {
	rs := []rune(s)
	if len(rs) <= maxMessageLen {
		return s
	}
	return string(rs[:maxMessageLen]) + "…"
}
