package util

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"spaces", "  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFences(tt.in))
		})
	}
}

func TestParseRelaxedJSON(t *testing.T) {
	t.Run("strict json", func(t *testing.T) {
		v, err := ParseRelaxedJSON(`{"zodiac_compatibility": 70}`)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"zodiac_compatibility": float64(70)}, v)
	})

	t.Run("trailing comma and unquoted key", func(t *testing.T) {
		v, err := ParseRelaxedJSON(`{zodiac_compatibility: 70, lucky_colors: ['синий',],}`)
		require.NoError(t, err)
		m, ok := v.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(70), m["zodiac_compatibility"])
		assert.Equal(t, []any{"синий"}, m["lucky_colors"])
	})

	t.Run("comments and single quotes", func(t *testing.T) {
		v, err := ParseRelaxedJSON("{\n  // оценка\n  \"zodiac_compatibility\": 61 /* из 100 */,\n  'lucky_colors': ['red'],\n}")
		require.NoError(t, err)
		m, ok := v.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(61), m["zodiac_compatibility"])
		assert.Equal(t, []any{"red"}, m["lucky_colors"])
	})

	t.Run("fenced", func(t *testing.T) {
		v, err := ParseRelaxedJSON("```json\n{\"a\": 1}\n```")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": float64(1)}, v)
	})

	t.Run("prose around object", func(t *testing.T) {
		v, err := ParseRelaxedJSON(`Вот результат: {"a": 1} Надеюсь, помог!`)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": float64(1)}, v)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := ParseRelaxedJSON("not json")
		assert.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ParseRelaxedJSON("   ")
		assert.ErrorIs(t, err, ErrEmptyJSON)
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab...", Truncate("abcd", 2))
	assert.Equal(t, "abcd", Truncate("abcd", 0))
}

func TestTruncate_KeepsUTF8Valid(t *testing.T) {
	got := Truncate(strings.Repeat("я", 300), 511)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("я", 300), got)

	got = Truncate(strings.Repeat("я", 300), 7)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("я", 7)+"...", got)
}
