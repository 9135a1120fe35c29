package util

import (
	"errors"
	"strings"

	"github.com/titanous/json5"
)

var ErrEmptyJSON = errors.New("empty json text")

// ParseRelaxedJSON разбирает «почти JSON» из ответа модели: допускает
// висячие запятые, одинарные кавычки, ключи без кавычек и комментарии (JSON5).
// Если весь текст не разбирается, пробуем кусок от первой '{' до последней '}' —
// модели любят дописать фразу до или после объекта.
func ParseRelaxedJSON(s string) (any, error) {
	s = StripCodeFences(s)
	if s == "" {
		return nil, ErrEmptyJSON
	}
	var v any
	err := json5.Unmarshal([]byte(s), &v)
	if err == nil {
		return v, nil
	}
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start || (start == 0 && end == len(s)-1) {
		return nil, err
	}
	var inner any
	if err2 := json5.Unmarshal([]byte(s[start:end+1]), &inner); err2 != nil {
		return nil, err
	}
	return inner, nil
}
