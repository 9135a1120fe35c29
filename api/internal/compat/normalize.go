package compat

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"compat-bot/api/internal/zodiac"
)

// Веса категорий для общего процента; сумма ровно 1.
const (
	WeightZodiac        = 0.30
	WeightElemental     = 0.20
	WeightNumerological = 0.20
	WeightEmotional     = 0.20
	WeightIntellectual  = 0.10
)

// Normalize собирает Result из того, что вернула модель. Ничего не валидирует
// строго: нет поля — ноль или пустое значение, вылет за диапазон — обрезаем.
// Знаки зодиака всегда берутся из аргументов, а не из ответа модели.
func Normalize(raw map[string]any, sign1, sign2 zodiac.Sign) Result {
	res := Result{
		ZodiacSigns: ZodiacSigns{Person1: sign1, Person2: sign2},

		ZodiacCompatibility:        score(raw["zodiac_compatibility"]),
		ElementalCompatibility:     score(raw["elemental_compatibility"]),
		NumerologicalCompatibility: score(raw["numerological_compatibility"]),
		EmotionalCompatibility:     score(raw["emotional_compatibility"]),
		IntellectualCompatibility:  score(raw["intellectual_compatibility"]),

		CompatibilityMessage: text(raw["compatibility_message"]),
		DetailedDescription:  text(raw["detailed_description"]),
		BestDatesComment:     text(raw["best_dates_comment"]),
		RelationshipTips:     text(raw["relationship_tips"]),

		LuckyColors:    list(raw["lucky_colors"]),
		BestActivities: list(raw["best_activities"]),
		BestDates:      list(raw["best_dates"]),
	}

	if overall, ok := number(raw["overall_compatibility"]); ok {
		res.OverallCompatibility = clampScore(overall)
	} else {
		res.OverallCompatibility = WeightedOverall(res)
	}
	return res
}

// WeightedOverall — взвешенная сумма пяти (уже обрезанных) подоценок.
func WeightedOverall(r Result) int {
	sum := float64(r.ZodiacCompatibility)*WeightZodiac +
		float64(r.ElementalCompatibility)*WeightElemental +
		float64(r.NumerologicalCompatibility)*WeightNumerological +
		float64(r.EmotionalCompatibility)*WeightEmotional +
		float64(r.IntellectualCompatibility)*WeightIntellectual
	return clampScore(sum)
}

func score(v any) int {
	f, _ := number(v)
	return clampScore(f)
}

// clampScore округляет половинки вверх и загоняет в [0,100].
func clampScore(f float64) int {
	if math.IsNaN(f) {
		return 0
	}
	r := math.Floor(f + 0.5)
	switch {
	case r < 0:
		return 0
	case r > 100:
		return 100
	}
	return int(r)
}

// number различает «нет числа» и «число 0»: второе значение false
// для отсутствующих, null и нечисловых значений.
func number(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, !math.IsNaN(x)
	case float32:
		return float64(x), !math.IsNaN(float64(x))
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(x), "%")), 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func text(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []any:
		parts := make([]string, 0, len(x))
		for _, it := range x {
			if s, ok := it.(string); ok && s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "\n")
	}
	return ""
}

func list(v any) []string {
	switch x := v.(type) {
	case []any:
		out := make([]string, 0, len(x))
		for _, it := range x {
			out = append(out, element(it))
		}
		return out
	case []string:
		out := make([]string, len(x))
		copy(out, x)
		return out
	case string:
		if strings.TrimSpace(x) != "" {
			return []string{x}
		}
	}
	return []string{}
}

func element(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
