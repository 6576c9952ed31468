package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultRules = []Rule{
	{Pattern: "python", Language: "Python"},
	{Pattern: "js", Language: "JavaScript"},
}

func TestResolveFromScope(t *testing.T) {
	r := newResolver(t, defaultRules)

	lang, ok := r.Resolve("source.python.advanced", "")
	require.True(t, ok)
	assert.Equal(t, "Python", lang)

	lang, ok = r.Resolve("text.html source.js meta.function-call", "")
	require.True(t, ok)
	assert.Equal(t, "JavaScript", lang)
}

func TestFirstRuleWins(t *testing.T) {
	r := newResolver(t, []Rule{
		{Pattern: "source", Language: "Generic"},
		{Pattern: "python", Language: "Python"},
	})

	lang, ok := r.Resolve("source.python", "")
	require.True(t, ok)
	assert.Equal(t, "Generic", lang)
}

func TestScopeBeatsSyntaxPath(t *testing.T) {
	r := newResolver(t, defaultRules)

	lang, ok := r.Resolve("source.python", "Packages/C++/C++.sublime-syntax")
	require.True(t, ok)
	assert.Equal(t, "Python", lang)
}

func TestResolveFromSyntaxPath(t *testing.T) {
	r := newResolver(t, defaultRules)

	lang, ok := r.Resolve("source.unknown", "Packages/C++/C++.sublime-syntax")
	require.True(t, ok)
	assert.Equal(t, "C++", lang)

	lang, ok = r.Resolve("source.unknown", "Packages/Ruby/Ruby.tmLanguage")
	require.True(t, ok)
	assert.Equal(t, "Ruby", lang)
}

func TestFromSyntaxPath(t *testing.T) {
	for _, tc := range []struct {
		path string
		lang string
		ok   bool
	}{
		{"Packages/Go/Go.sublime-syntax", "Go", true},
		{`C:\Packages\Lua\Lua.tmLanguage`, "Lua", true},
		{"Lua.tmLanguage", "Lua", true},
		{"Packages/Go/Go.sublime-settings", "", false},
		{"Packages/Go/.sublime-syntax", "", false},
		{"", "", false},
	} {
		t.Run(tc.path, func(t *testing.T) {
			lang, ok := FromSyntaxPath(tc.path)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.lang, lang)
		})
	}
}

func TestUnresolved(t *testing.T) {
	r := newResolver(t, defaultRules)

	_, ok := r.Resolve("source.unknown", "Packages/Text/Plain text.settings")
	assert.False(t, ok)
}

func TestInvalidPattern(t *testing.T) {
	_, err := NewResolver([]Rule{{Pattern: "source.(", Language: "Broken"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "docs rule 0")
}

func newResolver(t *testing.T, rules []Rule) *Resolver {
	r, err := NewResolver(rules)
	require.NoError(t, err)
	return r
}
