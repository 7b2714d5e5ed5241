package domain

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

// ModsExpression evaluates the mods data module to JSON in the console.
const ModsExpression = "mw.text.jsonEncode(p)"

// Mod is one entry of the mods list.
type Mod struct {
	Abbreviation string
	Name         string
	Page         string
}

// ParseMods decodes the mods list. The data maps each abbreviation to a
// pair of mod name and wiki page; a missing page defaults to the name.
func ParseMods(data string) (map[string]Mod, error) {
	var raw map[string][]string
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return nil, fmt.Errorf("failed to decode mods list: %w", err)
	}

	mods := make(map[string]Mod, len(raw))
	for abbr, fields := range raw {
		if len(fields) == 0 || fields[0] == "" {
			continue
		}
		mod := Mod{Abbreviation: abbr, Name: fields[0], Page: fields[0]}
		if len(fields) > 1 && fields[1] != "" {
			mod.Page = fields[1]
		}
		mods[strings.ToLower(abbr)] = mod
	}
	return mods, nil
}

// FindMod looks query up as an abbreviation first, then as a mod name.
// Both comparisons ignore case.
func FindMod(mods map[string]Mod, query string) (Mod, bool) {
	query = strings.TrimSpace(query)
	if mod, ok := mods[strings.ToLower(query)]; ok {
		return mod, true
	}
	for _, mod := range mods {
		if strings.EqualFold(mod.Name, query) {
			return mod, true
		}
	}
	return Mod{}, false
}

// SuggestMods returns up to limit mod names fuzzily matching query, best
// first.
func SuggestMods(mods map[string]Mod, query string, limit int) []string {
	names := make([]string, 0, len(mods))
	for _, mod := range mods {
		names = append(names, mod.Name)
	}
	slices.Sort(names)

	matches := fuzzy.Find(query, names)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	suggestions := make([]string, 0, len(matches))
	for _, match := range matches {
		suggestions = append(suggestions, names[match.Index])
	}
	return suggestions
}
