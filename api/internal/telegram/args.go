package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"compat-bot/api/internal/compat"
)

const (
	msgNeedTwoDates   = "Нужны две даты рождения"
	msgTimeAfterDate  = "Время должно идти после даты"
	msgUnknownTokenFm = "Не понял «%s»"
)

// ArgsError — ошибка разбора аргументов /compat, Message показывается пользователю.
type ArgsError struct {
	Message string
}

func (e *ArgsError) Error() string { return "compat args: " + e.Message }

// ParseCompatArgs разбирает «дата [время] дата [время]».
func ParseCompatArgs(args string) (compat.Request, error) {
	var dates, times []string
	for _, tok := range strings.Fields(args) {
		switch {
		case strings.Contains(tok, "."):
			dates = append(dates, tok)
			times = append(times, "")
		case strings.Contains(tok, ":"):
			if len(dates) == 0 || times[len(times)-1] != "" {
				return compat.Request{}, &ArgsError{Message: msgTimeAfterDate}
			}
			times[len(times)-1] = tok
		default:
			return compat.Request{}, &ArgsError{Message: fmt.Sprintf(msgUnknownTokenFm, tok)}
		}
	}
	if len(dates) != 2 {
		return compat.Request{}, &ArgsError{Message: msgNeedTwoDates}
	}
	return compat.Request{
		Person1Date: dates[0],
		Person1Time: times[0],
		Person2Date: dates[1],
		Person2Time: times[1],
	}, nil
}

func formatInt(v int64) string { return strconv.FormatInt(v, 10) }
