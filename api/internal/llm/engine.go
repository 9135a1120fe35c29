package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	// ErrUpstreamStatus — провайдер ответил не-2xx.
	ErrUpstreamStatus = errors.New("upstream returned non-success status")
	// ErrEnvelope — ответ провайдера не похож на ожидаемый конверт.
	ErrEnvelope = errors.New("unexpected upstream response envelope")
)

// Prompt — то, что уходит в модель одним запросом.
type Prompt struct {
	System      string
	User        string
	Temperature float64
}

// Engine — один провайдер completion API. Complete возвращает сырое
// декодированное содержимое ответа (строка или объект) без попыток его разобрать.
type Engine interface {
	Name() string
	GetModel() string
	Complete(ctx context.Context, in Prompt) (any, error)
}

type Engines struct {
	OpenAI  Engine
	Gemini  Engine
	Default string
}

// GetEngine выбирает движок по llm_name; пустое имя — движок по умолчанию.
func (e *Engines) GetEngine(llmName string) (Engine, error) {
	name := strings.ToLower(strings.TrimSpace(llmName))
	if name == "" {
		name = e.Default
	}
	var eng Engine
	switch name {
	case "gpt", "openai", "llm7":
		eng = e.OpenAI
	case "gemini":
		eng = e.Gemini
	default:
		return nil, fmt.Errorf("unknown llm_name %q; use 'gpt' or 'gemini'", llmName)
	}
	if eng == nil {
		return nil, fmt.Errorf("llm %q is not configured", name)
	}
	return eng, nil
}

// Manager хранит выбранный движок для каждого чата бота.
type Manager struct {
	def Engine
	m   sync.Map // chatID -> Engine
}

func NewManager(defaultEngine Engine) *Manager {
	return &Manager{def: defaultEngine}
}

func (m *Manager) Get(chatID int64) Engine {
	if v, ok := m.m.Load(chatID); ok {
		return v.(Engine)
	}
	return m.def
}

func (m *Manager) Set(chatID int64, e Engine) {
	m.m.Store(chatID, e)
}
