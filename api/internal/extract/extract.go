// Package extract находит JSON-объект с результатом совместимости внутри
// ответа провайдера, сколько бы слоёв обёрток вокруг него ни было.
package extract

import (
	"encoding/json"
	"math"

	"compat-bot/api/internal/util"
)

// SentinelField — поле, наличие которого считается признаком нужного объекта.
const SentinelField = "zodiac_compatibility"

// MaxDepth — глубина, после которой поиск прекращается.
const MaxDepth = 15

// Shape — распознанная форма очередного значения.
type Shape int

const (
	ShapeUnrecognized Shape = iota
	ShapeTerminal           // объект с SentinelField
	ShapeContent            // {"content": "<string>"}
	ShapeMessage            // {"message": <truthy>}
	ShapeChoices            // {"choices": [...]}
	ShapeArray              // [...]
)

func (s Shape) String() string {
	switch s {
	case ShapeTerminal:
		return "terminal"
	case ShapeContent:
		return "content"
	case ShapeMessage:
		return "message"
	case ShapeChoices:
		return "choices"
	case ShapeArray:
		return "array"
	}
	return "unrecognized"
}

// Classify определяет форму уже разобранного значения. Порядок проверок
// совпадает с тем, как провайдеры реально заворачивают ответ, и не должен меняться.
func Classify(v any) Shape {
	switch x := v.(type) {
	case map[string]any:
		if _, ok := x[SentinelField]; ok {
			return ShapeTerminal
		}
		if _, ok := x["content"].(string); ok {
			return ShapeContent
		}
		if truthy(x["message"]) {
			return ShapeMessage
		}
		if _, ok := x["choices"].([]any); ok {
			return ShapeChoices
		}
	case []any:
		return ShapeArray
	}
	return ShapeUnrecognized
}

// Extract ищет объект результата начиная с нулевой глубины.
func Extract(v any) (map[string]any, bool) {
	return ExtractDepth(v, 0)
}

// ExtractDepth — рекурсивный обход с явным счётчиком глубины.
// Строки разбираются как JSON5 (util.ParseRelaxedJSON). Если строка целиком
// не разбирается, парсер ещё раз пробует кусок от первой '{' до последней '}',
// так что текст вокруг объекта не мешает. Неразбираемая строка — сразу неудача,
// без обхода других веток этого уровня.
func ExtractDepth(v any, depth int) (map[string]any, bool) {
	if depth > MaxDepth {
		return nil, false
	}
	if s, ok := v.(string); ok {
		parsed, err := util.ParseRelaxedJSON(s)
		if err != nil {
			return nil, false
		}
		v = parsed
	}

	switch Classify(v) {
	case ShapeTerminal:
		return v.(map[string]any), true
	case ShapeContent:
		return ExtractDepth(v.(map[string]any)["content"], depth+1)
	case ShapeMessage:
		return ExtractDepth(v.(map[string]any)["message"], depth+1)
	case ShapeChoices:
		return first(v.(map[string]any)["choices"].([]any), depth+1)
	case ShapeArray:
		return first(v.([]any), depth+1)
	default:
		return nil, false
	}
}

func first(items []any, depth int) (map[string]any, bool) {
	for _, it := range items {
		if found, ok := ExtractDepth(it, depth); ok {
			return found, true
		}
	}
	return nil, false
}

// truthy повторяет правила JS: пусто только nil, false, 0, NaN и "".
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0 && !math.IsNaN(x)
	case float32:
		return x != 0 && !math.IsNaN(float64(x))
	case int:
		return x != 0
	case int64:
		return x != 0
	case json.Number:
		f, err := x.Float64()
		return err != nil || (f != 0 && !math.IsNaN(f))
	}
	return true
}
