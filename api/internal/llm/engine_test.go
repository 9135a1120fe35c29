package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEngine struct{ name string }

func (s stubEngine) Name() string     { return s.name }
func (s stubEngine) GetModel() string { return "stub" }
func (s stubEngine) Complete(context.Context, Prompt) (any, error) {
	return nil, nil
}

func TestEngines_GetEngine(t *testing.T) {
	engs := &Engines{OpenAI: stubEngine{"gpt"}, Gemini: stubEngine{"gemini"}, Default: "gpt"}

	tests := []struct {
		in, want string
	}{
		{"", "gpt"},
		{"gpt", "gpt"},
		{"OpenAI", "gpt"},
		{"llm7", "gpt"},
		{" gemini ", "gemini"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			e, err := engs.GetEngine(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Name())
		})
	}

	_, err := engs.GetEngine("claude")
	assert.Error(t, err)
}

func TestEngines_GetEngine_NotConfigured(t *testing.T) {
	engs := &Engines{OpenAI: stubEngine{"gpt"}, Default: "gpt"}
	_, err := engs.GetEngine("gemini")
	assert.ErrorContains(t, err, "not configured")
}

func TestManager(t *testing.T) {
	def := stubEngine{"gpt"}
	m := NewManager(def)

	assert.Equal(t, "gpt", m.Get(1).Name())
	m.Set(1, stubEngine{"gemini"})
	assert.Equal(t, "gemini", m.Get(1).Name())
	assert.Equal(t, "gpt", m.Get(2).Name())
}
