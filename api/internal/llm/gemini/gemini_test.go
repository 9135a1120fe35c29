package gemini

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"

	"compat-bot/api/internal/llm"
)

func TestComplete_RequiresKey(t *testing.T) {
	_, err := New("  ", "gemini-2.5-flash").Complete(context.Background(), llm.Prompt{User: "x"})
	assert.ErrorContains(t, err, "GEMINI_API_KEY")
}

func TestFirstText(t *testing.T) {
	assert.Equal(t, "", firstText(nil))
	assert.Equal(t, "", firstText(&genai.GenerateContentResponse{}))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: nil},
			{Content: &genai.Content{Parts: []genai.Part{
				genai.Text(`{"zodiac_compatibility":1}`),
			}}},
		},
	}
	assert.Equal(t, `{"zodiac_compatibility":1}`, firstText(resp))
}

func TestEngine_Identity(t *testing.T) {
	e := New("k", " gemini-2.5-flash ")
	assert.Equal(t, "gemini", e.Name())
	assert.Equal(t, "gemini-2.5-flash", e.GetModel())
}
