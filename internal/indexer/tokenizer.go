package indexer

import (
	"strings"
	"unicode"
)

// Tokenize splits a string into searchable tokens.
// Splits on every rune that is neither a letter nor a digit, lowercases all
// tokens and drops tokens shorter than 2 characters. camelCase words also
// yield their parts, so "repositoryTopics" gives "repositorytopics",
// "repository" and "topics". Tokens are unique, in first-seen order.
func Tokenize(s string) []string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	result := make([]string, 0, len(words))
	seen := make(map[string]bool, len(words))
	add := func(t string) {
		t = strings.ToLower(t)
		if len(t) < 2 || seen[t] {
			return
		}
		seen[t] = true
		result = append(result, t)
	}

	for _, w := range words {
		add(w)
		if parts := splitCamel(w); len(parts) > 1 {
			for _, p := range parts {
				add(p)
			}
		}
	}
	return result
}

// splitCamel splits at lower-to-upper and letter-to-digit boundaries.
func splitCamel(w string) []string {
	var parts []string
	runes := []rune(w)
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := (unicode.IsLower(prev) && unicode.IsUpper(cur)) ||
			(unicode.IsLetter(prev) && unicode.IsDigit(cur)) ||
			(unicode.IsDigit(prev) && unicode.IsLetter(cur))
		if boundary {
			parts = append(parts, string(runes[start:i]))
			start = i
		}
	}
	return append(parts, string(runes[start:]))
}

// TokenizeAll tokenizes each string and merges the results.
func TokenizeAll(ss ...string) []string {
	var result []string
	seen := make(map[string]bool)
	for _, s := range ss {
		for _, t := range Tokenize(s) {
			if !seen[t] {
				seen[t] = true
				result = append(result, t)
			}
		}
	}
	return result
}
