package compat

import "compat-bot/api/internal/zodiac"

// Request — данные формы мини-приложения.
type Request struct {
	Person1Date    string `json:"person1Date"`
	Person1Time    string `json:"person1Time,omitempty"`
	Person2Date    string `json:"person2Date"`
	Person2Time    string `json:"person2Time,omitempty"`
	TelegramUserID string `json:"telegramUserId,omitempty"`
	LLMName        string `json:"llm_name,omitempty"`
}

type ZodiacSigns struct {
	Person1 zodiac.Sign `json:"person1"`
	Person2 zodiac.Sign `json:"person2"`
}

// Result — итог расчёта. Все числа в [0,100], списки никогда не nil.
type Result struct {
	ZodiacSigns ZodiacSigns `json:"zodiac_signs"`

	ZodiacCompatibility        int `json:"zodiac_compatibility"`
	ElementalCompatibility     int `json:"elemental_compatibility"`
	NumerologicalCompatibility int `json:"numerological_compatibility"`
	EmotionalCompatibility     int `json:"emotional_compatibility"`
	IntellectualCompatibility  int `json:"intellectual_compatibility"`
	OverallCompatibility       int `json:"overall_compatibility"`

	CompatibilityMessage string `json:"compatibility_message"`
	DetailedDescription  string `json:"detailed_description"`
	BestDatesComment     string `json:"best_dates_comment"`
	RelationshipTips     string `json:"relationship_tips"`

	LuckyColors    []string `json:"lucky_colors"`
	BestActivities []string `json:"best_activities"`
	BestDates      []string `json:"best_dates"`
}
