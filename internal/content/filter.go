package content

import (
	"fmt"
	"regexp"
	"strings"

	"agentbot/internal/reason"
)

// RejectedError is a content-safety veto. It is a normal skip outcome.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string { return "content rejected: " + e.Reason }

// DefaultBlockedTerms are phrases never posted regardless of config.
var DefaultBlockedTerms = []string{
	"guaranteed returns",
	"financial advice",
	"send me your seed phrase",
	"dm for signals",
}

var whitespace = regexp.MustCompile(`\s+`)

// Filter vets text before it is posted.
type Filter struct {
	blocked []string
}

// NewFilter blocks DefaultBlockedTerms plus extra, case-insensitively.
func NewFilter(extra ...string) *Filter {
	f := &Filter{}
	for _, t := range append(append([]string{}, DefaultBlockedTerms...), extra...) {
		if t = normalize(t); t != "" {
			f.blocked = append(f.blocked, t)
		}
	}
	return f
}

// Check returns a *RejectedError when text must not be posted.
func (f *Filter) Check(text string) error {
	if strings.TrimSpace(text) == "" {
		return &RejectedError{Reason: "empty"}
	}
	if len(text) > reason.MaxPostLength {
		return &RejectedError{Reason: fmt.Sprintf("length %d exceeds %d", len(text), reason.MaxPostLength)}
	}
	lt := normalize(text)
	for _, term := range f.blocked {
		if strings.Contains(lt, term) {
			return &RejectedError{Reason: fmt.Sprintf("blocked term %q", term)}
		}
	}
	return nil
}

// Validate returns text unchanged with ok=true when it passes Check.
func (f *Filter) Validate(text string) (string, bool) {
	if f.Check(text) != nil {
		return "", false
	}
	return text, true
}

// normalize lowercases and collapses whitespace so line breaks can't split a
// blocked phrase.
func normalize(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(strings.ToLower(s), " "))
}
