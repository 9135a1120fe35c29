package compat

import (
	"errors"
	"fmt"
)

// PublicFailureMessage — единственное, что пользователь видит при любом сбое пайплайна.
const PublicFailureMessage = "Что-то пошло не так, попробуйте позже"

var (
	// ErrFailed оборачивает все сбои провайдера, конверта и извлечения.
	ErrFailed = errors.New("compatibility calculation failed")
	// ErrExtraction — в ответе модели не нашлось объекта с результатом.
	ErrExtraction = errors.New("no compatibility payload in model response")
)

// ValidationError — ошибка во входных данных, её текст можно показывать пользователю.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// PublicMessage возвращает текст для пользователя: сообщение валидации
// или общую фразу для всего остального.
func PublicMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return PublicFailureMessage
}
