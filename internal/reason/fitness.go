package reason

import (
	"strings"
	"unicode/utf8"
)

// MaxPostLength is the post limit in bytes.
const MaxPostLength = 280

const ellipsis = "..."

// Fitness scores how well text fits a single post. Blank text and anything
// over the limit score 0 and are never selected.
func Fitness(text string) float64 {
	switch n := len(text); {
	case strings.TrimSpace(text) == "":
		return 0
	case n > MaxPostLength:
		return 0
	case n > 250:
		return 0.3
	case n > 150:
		return 0.8
	case n > 50:
		return 1.0
	default:
		return 0.5
	}
}

// SelectBestResponse returns the highest scoring candidate with a positive
// score; the earliest candidate wins ties.
func SelectBestResponse(candidates []string) (string, bool) {
	best, bestScore := "", 0.0
	for _, c := range candidates {
		if s := Fitness(c); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best, bestScore > 0
}

// TruncateToFit shortens text over the limit to at most MaxPostLength bytes,
// preferring to cut at the last space in the first 277 bytes.
func TruncateToFit(text string) string {
	if len(text) <= MaxPostLength {
		return text
	}
	limit := MaxPostLength - len(ellipsis)
	for i := limit - 1; i >= 0; i-- {
		if text[i] == ' ' {
			return text[:i] + ellipsis
		}
	}
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}
	return text[:limit] + ellipsis
}
