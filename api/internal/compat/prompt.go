package compat

import (
	"fmt"
	"strings"
	"time"

	"compat-bot/api/internal/llm"
	"compat-bot/api/internal/zodiac"
)

const systemPrompt = "Ты эксперт в астрологии и нумерологии. Твоя задача — оценивать совместимость двух людей по их датам и времени рождения."

const resultShape = `{
  "zodiac_compatibility": <процент>,
  "elemental_compatibility": <процент>,
  "numerological_compatibility": <процент>,
  "emotional_compatibility": <процент>,
  "intellectual_compatibility": <процент>,
  "overall_compatibility": <взвешенный средний процент>,
  "compatibility_message": "<короткий общий вывод>",
  "detailed_description": "<подробный разбор по каждой категории>",
  "lucky_colors": ["<цвет1>", "<цвет2>", "<цвет3>"],
  "best_activities": ["<занятие1>", "<занятие2>", "<занятие3>"],
  "best_dates": ["<дата1>", "<дата2>", "<дата3>"],
  "best_dates_comment": "<почему выбраны эти даты>",
  "relationship_tips": "<советы паре>"
}`

const resultExample = `{"zodiac_compatibility": 70, "elemental_compatibility": 65, "numerological_compatibility": 70, "emotional_compatibility": 75, "intellectual_compatibility": 80, "overall_compatibility": 72, "compatibility_message": "Пара гармоничная и перспективная.", "detailed_description": "Сильная эмоциональная связь...", "lucky_colors": ["синий", "зелёный", "белый"], "best_activities": ["путешествия", "совместная учёба", "спорт"], "best_dates": ["12.07.2025", "18.07.2025", "25.07.2025"], "best_dates_comment": "В эти дни Луна и Венера благоприятствуют отношениям.", "relationship_tips": "Чаще разговаривайте и поддерживайте инициативу друг друга."}`

type person struct {
	date, time string
	sign       zodiac.Sign
}

// BuildPrompt собирает системную инструкцию и единственное сообщение пользователя.
func BuildPrompt(req Request, sign1, sign2 zodiac.Sign, today time.Time, temperature float64) llm.Prompt {
	todayStr := today.Format("02.01.2006")
	p1 := person{date: strings.TrimSpace(req.Person1Date), time: req.Person1Time, sign: sign1}
	p2 := person{date: strings.TrimSpace(req.Person2Date), time: req.Person2Time, sign: sign2}

	var b strings.Builder
	b.WriteString("ВАЖНО: верни ВСЕ поля из формата ниже, даже если какие-то из них пустые.\n\n")
	fmt.Fprintf(&b, "Сегодняшняя дата: %s\n\n", todayStr)
	b.WriteString("Рассчитай совместимость двух людей по датам и времени рождения.\n\n")
	writePerson(&b, 1, p1)
	writePerson(&b, 2, p2)
	b.WriteString("\nКатегории и их веса:\n")
	fmt.Fprintf(&b, "1. Совместимость по знакам зодиака — %d%%\n", pct(WeightZodiac))
	fmt.Fprintf(&b, "2. Совместимость стихий (огонь, земля, воздух, вода) — %d%%\n", pct(WeightElemental))
	fmt.Fprintf(&b, "3. Нумерологическая совместимость по числам дат рождения — %d%%\n", pct(WeightNumerological))
	fmt.Fprintf(&b, "4. Эмоциональная совместимость (время рождения, асцендент) — %d%%\n", pct(WeightEmotional))
	fmt.Fprintf(&b, "5. Интеллектуальная совместимость — %d%%\n", pct(WeightIntellectual))
	b.WriteString("\nДля каждой категории опиши сильные и слабые стороны пары.\n")
	fmt.Fprintf(&b, "Назови 2–3 благоприятные даты для совместных дел в ближайший месяц, только начиная с %s, и коротко объясни выбор.\n", todayStr)
	b.WriteString("Дай паре персональные советы, как гармонизировать отношения.\n\n")
	b.WriteString("Формат ответа (JSON):\n")
	b.WriteString(resultShape)
	b.WriteString("\n\nПример ответа:\n")
	b.WriteString(resultExample)
	b.WriteString("\n\nВерни только JSON-объект в одну строку, без пояснений и лишнего текста.")

	return llm.Prompt{
		System:      systemPrompt,
		User:        b.String(),
		Temperature: temperature,
	}
}

func writePerson(b *strings.Builder, n int, p person) {
	t := strings.TrimSpace(p.time)
	if t == "" {
		t = "не указано"
	}
	fmt.Fprintf(b, "- Человек %d: дата рождения = %s, время рождения = %s, знак зодиака = %s", n, p.date, t, p.sign)
	if el := p.sign.Element(); el != "" {
		fmt.Fprintf(b, " (стихия: %s)", el)
	}
	b.WriteByte('\n')
}

func pct(w float64) int { return int(w*100 + 0.5) }
