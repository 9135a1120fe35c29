package telegram

import (
	"fmt"
	"strings"

	"compat-bot/api/internal/compat"
)

// FormatResult — текстовая сводка результата для чата.
func FormatResult(res compat.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "💞 %s + %s\n", res.ZodiacSigns.Person1, res.ZodiacSigns.Person2)
	fmt.Fprintf(&b, "Общая совместимость: %d%%\n\n", res.OverallCompatibility)

	fmt.Fprintf(&b, "♈ Зодиак: %d%%\n", res.ZodiacCompatibility)
	fmt.Fprintf(&b, "🔥 Стихии: %d%%\n", res.ElementalCompatibility)
	fmt.Fprintf(&b, "🔢 Нумерология: %d%%\n", res.NumerologicalCompatibility)
	fmt.Fprintf(&b, "💗 Эмоции: %d%%\n", res.EmotionalCompatibility)
	fmt.Fprintf(&b, "🧠 Интеллект: %d%%\n", res.IntellectualCompatibility)

	section(&b, "", res.CompatibilityMessage)
	section(&b, "📖 Подробно", res.DetailedDescription)
	listSection(&b, "🎨 Цвета удачи", res.LuckyColors)
	listSection(&b, "🎯 Чем заняться вместе", res.BestActivities)
	listSection(&b, "📅 Удачные даты", res.BestDates)
	section(&b, "", res.BestDatesComment)
	section(&b, "💡 Советы", res.RelationshipTips)

	return strings.TrimRight(b.String(), "\n")
}

func section(b *strings.Builder, title, body string) {
	body = strings.TrimSpace(body)
	if body == "" {
		return
	}
	b.WriteString("\n")
	if title != "" {
		b.WriteString(title + ":\n")
	}
	b.WriteString(body + "\n")
}

func listSection(b *strings.Builder, title string, items []string) {
	var kept []string
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			kept = append(kept, it)
		}
	}
	if len(kept) == 0 {
		return
	}
	b.WriteString("\n" + title + ": " + strings.Join(kept, ", ") + "\n")
}
