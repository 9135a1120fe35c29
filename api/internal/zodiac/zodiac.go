package zodiac

import (
	"strconv"
	"strings"
)

// Sign — название знака зодиака (по-русски, как его показывает мини-приложение).
type Sign string

const (
	Aries       Sign = "Овен"
	Taurus      Sign = "Телец"
	Gemini      Sign = "Близнецы"
	Cancer      Sign = "Рак"
	Leo         Sign = "Лев"
	Virgo       Sign = "Дева"
	Libra       Sign = "Весы"
	Scorpio     Sign = "Скорпион"
	Sagittarius Sign = "Стрелец"
	Capricorn   Sign = "Козерог"
	Aquarius    Sign = "Водолей"
	Pisces      Sign = "Рыбы"

	Unknown Sign = "Неизвестно"
)

type dayMonth struct{ day, month int }

type signRange struct {
	sign     Sign
	from, to dayMonth // обе границы включительно
}

// Порядок важен: Овен → Рыбы, первая подходящая запись выигрывает.
var table = []signRange{
	{Aries, dayMonth{21, 3}, dayMonth{19, 4}},
	{Taurus, dayMonth{20, 4}, dayMonth{20, 5}},
	{Gemini, dayMonth{21, 5}, dayMonth{20, 6}},
	{Cancer, dayMonth{21, 6}, dayMonth{22, 7}},
	{Leo, dayMonth{23, 7}, dayMonth{22, 8}},
	{Virgo, dayMonth{23, 8}, dayMonth{22, 9}},
	{Libra, dayMonth{23, 9}, dayMonth{22, 10}},
	{Scorpio, dayMonth{23, 10}, dayMonth{21, 11}},
	{Sagittarius, dayMonth{22, 11}, dayMonth{21, 12}},
	{Capricorn, dayMonth{22, 12}, dayMonth{19, 1}},
	{Aquarius, dayMonth{20, 1}, dayMonth{18, 2}},
	{Pisces, dayMonth{19, 2}, dayMonth{20, 3}},
}

func (r signRange) contains(day, month int) bool {
	return (month == r.from.month && day >= r.from.day) ||
		(month == r.to.month && day <= r.to.day)
}

// Resolve возвращает знак для даты вида DD.MM.YYYY.
// Для всего, что не похоже на три числовые группы, — Unknown.
func Resolve(date string) Sign {
	day, month, ok := parseDayMonth(date)
	if !ok {
		return Unknown
	}
	return ForDayMonth(day, month)
}

// ForDayMonth — тот же поиск по таблице, но по уже разобранным дню и месяцу.
func ForDayMonth(day, month int) Sign {
	for _, r := range table {
		if r.contains(day, month) {
			return r.sign
		}
	}
	return Unknown
}

// All — двенадцать знаков в порядке таблицы.
func All() []Sign {
	out := make([]Sign, 0, len(table))
	for _, r := range table {
		out = append(out, r.sign)
	}
	return out
}

// Element — стихия знака; для Unknown пустая строка.
func (s Sign) Element() string {
	switch s {
	case Aries, Leo, Sagittarius:
		return "Огонь"
	case Taurus, Virgo, Capricorn:
		return "Земля"
	case Gemini, Libra, Aquarius:
		return "Воздух"
	case Cancer, Scorpio, Pisces:
		return "Вода"
	}
	return ""
}

func (s Sign) String() string { return string(s) }

func parseDayMonth(date string) (int, int, bool) {
	parts := strings.Split(strings.TrimSpace(date), ".")
	if len(parts) != 3 {
		return 0, 0, false
	}
	nums := make([]int, 3)
	for i, p := range parts {
		if p == "" || !isDigits(p) {
			return 0, 0, false
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, 0, false
		}
		nums[i] = n
	}
	return nums[0], nums[1], true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
