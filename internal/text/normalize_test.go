package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name     string
		in       string
		expected string
	}{
		{"lowercases", "Drill PRESS", "drill press"},
		{"trims", "  lathe  ", "lathe"},
		{"collapses whitespace", "drill \t  press\n4", "drill press 4"},
		{"empty", "   ", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Normalize(tc.in))
		})
	}
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"drill", "press", "4"}, Tokens("The Drill-Press #4!"))
	assert.Empty(t, Tokens("!!! ???"))
	assert.Empty(t, Tokens(""))
}

func TestTokenSet(t *testing.T) {
	set := TokenSet("lathe lathe LATHE b")
	assert.Len(t, set, 2)
	assert.Contains(t, set, "lathe")
	assert.Contains(t, set, "b")
}

func TestContainsPhrase(t *testing.T) {
	testCases := []struct {
		name     string
		message  string
		phrase   string
		expected bool
	}{
		{"exact phrase inside sentence", "the drill press is broken", "Drill Press", true},
		{"phrase at start", "drill press broke down", "drill press", true},
		{"phrase at end", "please fix the drill press", "drill press", true},
		{"bounded by punctuation", "issue: drill press, again", "drill press", true},
		{"partial word does not match", "the drilling press is fine", "drill", false},
		{"token subset is not a phrase", "press the drill button", "drill press", false},
		{"empty phrase", "anything", "", false},
		{"empty message", "", "lathe", false},
		{"case and spacing normalized", "DRILL    Press jammed", "drill press", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ContainsPhrase(tc.message, tc.phrase))
		})
	}
}
