package text

import (
	"regexp"
	"strings"
)

var (
	spaceRe = regexp.MustCompile(`\s+`)
	tokenRe = regexp.MustCompile(`[a-z0-9]+`)
)

// Normalize lowercases, trims, and collapses internal whitespace. All matching
// in the resolver goes through this so exact and partial matching stay consistent.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return spaceRe.ReplaceAllString(s, " ")
}

// Tokens returns the alphanumeric tokens of the normalized input, in order.
func Tokens(s string) []string {
	return tokenRe.FindAllString(Normalize(s), -1)
}

// TokenSet returns the tokens of s as a set.
func TokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range tokenRe.FindAllString(Normalize(s), -1) {
		set[tok] = struct{}{}
	}
	return set
}

// ContainsPhrase reports whether phrase occurs in message as a whole phrase,
// bounded by non-alphanumeric characters (or the ends of the message). Both
// inputs are normalized before matching. An empty phrase never matches.
func ContainsPhrase(message, phrase string) bool {
	msg := Normalize(message)
	p := Normalize(phrase)
	if p == "" || msg == "" {
		return false
	}

	for from := 0; ; {
		i := strings.Index(msg[from:], p)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(p)
		if boundary(msg, start-1) && boundary(msg, end) {
			return true
		}
		from = start + 1
	}
}

// boundary reports whether position i of s is outside the string or holds a
// non-alphanumeric byte.
func boundary(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	c := s[i]
	return !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9')
}
