package telegram

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compat-bot/api/internal/compat"
	"compat-bot/api/internal/llm"
	"compat-bot/api/internal/logger"
)

type fakeSender struct {
	sent     []tgbotapi.MessageConfig
	requests int
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, m)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests++
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) last(t *testing.T) tgbotapi.MessageConfig {
	t.Helper()
	require.NotEmpty(t, f.sent)
	return f.sent[len(f.sent)-1]
}

type stubEngine struct{ name, model string }

func (e stubEngine) Name() string     { return e.name }
func (e stubEngine) GetModel() string { return e.model }
func (e stubEngine) Complete(context.Context, llm.Prompt) (any, error) {
	return nil, nil
}

type fakeCalc struct {
	res compat.Result
	err error
	eng llm.Engine
	req compat.Request
}

func (f *fakeCalc) CalculateWithEngine(_ context.Context, eng llm.Engine, req compat.Request) (compat.Result, error) {
	f.eng, f.req = eng, req
	return f.res, f.err
}

func newRouter(t *testing.T, calc *fakeCalc) (*Router, *fakeSender) {
	t.Helper()
	gpt := stubEngine{"gpt", "gpt-4.1-mini"}
	engines := &llm.Engines{OpenAI: gpt, Gemini: stubEngine{"gemini", "gemini-2.5-flash"}, Default: "gpt"}
	bot := &fakeSender{}
	return &Router{
		Bot:        bot,
		Service:    calc,
		EngManager: llm.NewManager(gpt),
		Engines:    engines,
		WebAppURL:  "https://app.example",
		Log:        logger.NewTestLogger(t),
	}, bot
}

func command(chatID int64, text string) tgbotapi.Update {
	cmd, _, _ := strings.Cut(text, " ")
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: chatID},
		From:     &tgbotapi.User{ID: 777},
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
	}}
}

func TestStartHasAppButton(t *testing.T) {
	r, bot := newRouter(t, &fakeCalc{})

	r.HandleUpdate(context.Background(), command(1, "/start"))

	msg := bot.last(t)
	assert.Equal(t, startText, msg.Text)
	kb, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.NotNil(t, kb.InlineKeyboard[0][0].URL)
	assert.Equal(t, "https://app.example", *kb.InlineKeyboard[0][0].URL)
}

func TestHelpWithoutWebApp(t *testing.T) {
	r, bot := newRouter(t, &fakeCalc{})
	r.WebAppURL = ""

	r.HandleUpdate(context.Background(), command(1, "/help"))

	msg := bot.last(t)
	assert.Equal(t, helpText, msg.Text)
	assert.Nil(t, msg.ReplyMarkup)
}

func TestCompatCommand(t *testing.T) {
	calc := &fakeCalc{res: compat.Result{
		ZodiacSigns:          compat.ZodiacSigns{Person1: "Овен", Person2: "Лев"},
		OverallCompatibility: 88,
	}}
	r, bot := newRouter(t, calc)

	r.HandleUpdate(context.Background(), command(5, "/compat 01.04.1990 14:30 15.08.1992"))

	assert.Equal(t, "01.04.1990", calc.req.Person1Date)
	assert.Equal(t, "14:30", calc.req.Person1Time)
	assert.Equal(t, "15.08.1992", calc.req.Person2Date)
	assert.Equal(t, "", calc.req.Person2Time)
	assert.Equal(t, "777", calc.req.TelegramUserID)
	assert.Equal(t, "gpt", calc.eng.Name())
	assert.Equal(t, 1, bot.requests)
	assert.Contains(t, bot.last(t).Text, "Общая совместимость: 88%")
}

func TestCompatCommand_BadArgs(t *testing.T) {
	calc := &fakeCalc{}
	r, bot := newRouter(t, calc)

	r.HandleUpdate(context.Background(), command(5, "/compat 01.04.1990"))

	assert.Nil(t, calc.eng)
	assert.Equal(t, msgNeedTwoDates+"\n\n"+usageText, bot.last(t).Text)
}

func TestCompatCommand_FailureIsOpaque(t *testing.T) {
	calc := &fakeCalc{err: fmt.Errorf("%w: boom 500", compat.ErrFailed)}
	r, bot := newRouter(t, calc)

	r.HandleUpdate(context.Background(), command(5, "/compat 01.04.1990 15.08.1992"))

	text := bot.last(t).Text
	assert.Contains(t, text, compat.PublicFailureMessage)
	assert.NotContains(t, text, "boom")
}

func TestEngineCommand(t *testing.T) {
	calc := &fakeCalc{}
	r, bot := newRouter(t, calc)

	r.HandleUpdate(context.Background(), command(9, "/engine"))
	assert.Contains(t, bot.last(t).Text, "Текущий движок: gpt")

	r.HandleUpdate(context.Background(), command(9, "/engine gemini"))
	assert.Contains(t, bot.last(t).Text, "gemini-2.5-flash")
	assert.Equal(t, "gemini", r.EngManager.Get(9).Name())
	assert.Equal(t, "gpt", r.EngManager.Get(10).Name())

	r.HandleUpdate(context.Background(), command(9, "/engine claude"))
	assert.Contains(t, bot.last(t).Text, "❌")
	assert.Equal(t, "gemini", r.EngManager.Get(9).Name())

	r.HandleUpdate(context.Background(), command(9, "/compat 01.04.1990 15.08.1992"))
	assert.Equal(t, "gemini", calc.eng.Name())
}

func TestPlainTextGetsHelp(t *testing.T) {
	r, bot := newRouter(t, &fakeCalc{})

	r.HandleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: 3},
		Text: "привет",
	}})

	assert.Equal(t, helpText, bot.last(t).Text)
}

func TestUnknownCommand(t *testing.T) {
	r, bot := newRouter(t, &fakeCalc{})

	r.HandleUpdate(context.Background(), command(3, "/weather"))

	assert.Contains(t, bot.last(t).Text, "Неизвестная команда")
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("я", maxMessageLen+10)
	got := truncate(long)
	assert.Equal(t, maxMessageLen+1, len([]rune(got)))
	assert.Equal(t, "ok", truncate("ok"))
}
