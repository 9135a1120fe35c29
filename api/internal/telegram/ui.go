package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	startText = "Привет! Я считаю совместимость пары по датам рождения: знаки зодиака, стихии, нумерология.\n" +
		"Открой мини-приложение или пришли команду /compat."
	helpText = "Команды:\n" +
		"/compat ДД.ММ.ГГГГ [ЧЧ:ММ] ДД.ММ.ГГГГ [ЧЧ:ММ] — рассчитать совместимость\n" +
		"/engine [gpt|gemini] — показать или сменить модель\n" +
		"/help — эта справка"
	usageText = "Пример: /compat 01.04.1990 14:30 15.08.1992"
)

// Кнопка-ссылка на мини-приложение; без WEBAPP_URL клавиатуры нет.
func appKeyboard(url string) (tgbotapi.InlineKeyboardMarkup, bool) {
	url = strings.TrimSpace(url)
	if url == "" {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	btn := tgbotapi.NewInlineKeyboardButtonURL("🔮 Открыть приложение", url)
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(btn)), true
}
