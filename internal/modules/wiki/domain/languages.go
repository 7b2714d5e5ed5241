package domain

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// LanguagesExpression evaluates the language names module to JSON.
const LanguagesExpression = "mw.text.jsonEncode(p)"

// Language is a wiki content language.
type Language struct {
	Code string
	Name string
}

// Line formats the language for the language list.
func (l Language) Line() string {
	return fmt.Sprintf("`%s` - %s", l.Code, l.Name)
}

// ParseLanguages decodes a code to name mapping, ordered by code.
func ParseLanguages(data string) ([]Language, error) {
	var raw map[string]string
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return nil, fmt.Errorf("failed to decode language names: %w", err)
	}

	languages := make([]Language, 0, len(raw))
	for code, name := range raw {
		languages = append(languages, Language{Code: code, Name: name})
	}
	slices.SortFunc(languages, func(a, b Language) int {
		return strings.Compare(a.Code, b.Code)
	})
	return languages, nil
}
