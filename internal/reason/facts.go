package reason

import (
	"strings"
	"unicode"
)

// ExtractFacts turns mention text into lowercase keyword facts: handles and
// single-character tokens are dropped, surrounding punctuation is trimmed.
func ExtractFacts(text string) []string {
	var facts []string
	for _, w := range strings.Fields(text) {
		if strings.HasPrefix(w, "@") {
			continue
		}
		w = strings.TrimFunc(strings.ToLower(w), func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if len(w) <= 1 {
			continue
		}
		facts = append(facts, w)
	}
	return facts
}
