package utils

import (
	"strings"
)

// FuzzyMatch resolves loosely typed input to one of choices.
// It tries, in order: a case-insensitive exact match, an alias, and a
// choice that uniquely contains the input. Aliases map lowercase
// shorthand to a choice.
func FuzzyMatch(input string, choices []string, aliases map[string]string) (string, bool) {
	term := strings.ToLower(strings.TrimSpace(input))
	if term == "" {
		return "", false
	}

	for _, choice := range choices {
		if strings.ToLower(choice) == term {
			return choice, true
		}
	}

	if target, ok := aliases[term]; ok {
		return target, true
	}

	match := ""
	for _, choice := range choices {
		if strings.Contains(strings.ToLower(choice), term) {
			if match != "" {
				// Ambiguous
				return "", false
			}
			match = choice
		}
	}
	return match, match != ""
}
