package compat

import (
	"strconv"
	"strings"
)

const (
	msgDateRequired = "Введите дату рождения"
	msgTimeInvalid  = "Время рождения должно быть в формате ЧЧ:ММ"
)

// Validate проверяет только обязательность дат и формат времени.
// Кривая дата не ошибка: для неё знак просто будет «Неизвестно».
func (r Request) Validate() error {
	if strings.TrimSpace(r.Person1Date) == "" {
		return &ValidationError{Field: "person1Date", Message: msgDateRequired}
	}
	if strings.TrimSpace(r.Person2Date) == "" {
		return &ValidationError{Field: "person2Date", Message: msgDateRequired}
	}
	if !validTime(r.Person1Time) {
		return &ValidationError{Field: "person1Time", Message: msgTimeInvalid}
	}
	if !validTime(r.Person2Time) {
		return &ValidationError{Field: "person2Time", Message: msgTimeInvalid}
	}
	return nil
}

// validTime: пусто или HH:MM, 00–23 и 00–59.
func validTime(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) != 2 || len(mm) != 2 || !digits(hh) || !digits(mm) {
		return false
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return false
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return false
	}
	return true
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
