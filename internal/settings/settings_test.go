package settings

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seripap/Intellitip/internal/docs"
	"github.com/seripap/Intellitip/internal/language"
	"github.com/seripap/Intellitip/internal/testutils/tempdir"
	"github.com/seripap/Intellitip/internal/tooltip"
	"github.com/seripap/Intellitip/resources"
)

func TestDefault(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	assert.Equal(t, DefaultCSSFile, s.CSSFile)
	require.NotEmpty(t, s.Docs)
	assert.Equal(t, language.Rule{Pattern: `source\.python`, Language: "Python"}, s.Docs[0])
	assert.NotEmpty(t, s.HelpLinks)
	assert.False(t, s.DebugLogging)

	_, err = s.Renderer(resources.FS())
	require.NoError(t, err)
}

func TestDefaultHelpLinksForBundledDocs(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)
	r, err := s.Renderer(resources.FS())
	require.NoError(t, err)

	store := docs.NewStore(resources.FS(), nil)
	for _, tc := range []struct {
		language string
		name     string
		want     string
	}{
		{"JavaScript", "map", "https://developer.mozilla.org/en-US/docs/Web/JavaScript/Reference/Global_Objects/Array/map"},
		{"JavaScript", "parseInt", "https://developer.mozilla.org/en-US/docs/Web/JavaScript/Reference/Global_Objects/parseInt"},
		{"PHP", "array_map", "https://www.php.net/array_map"},
		{"Python", "sin", "https://docs.python.org/3/library/math.html#math.sin"},
	} {
		t.Run(tc.language+"/"+tc.name, func(t *testing.T) {
			rec, ok := store.DocSet(tc.language).Get(tc.name)
			require.True(t, ok)
			link, ok := r.HelpURL(rec)
			require.True(t, ok)
			assert.Equal(t, tc.want, link)
		})
	}
}

func TestDocsObjectKeepsOrder(t *testing.T) {
	s, err := Parse([]byte(`{
		"docs": {
			"source.zz": "Zed",
			"source.aa": "Ada",
			"source.mm": "Modula"
		}
	}`))
	require.NoError(t, err)

	assert.Equal(t, DocRules{
		{Pattern: "source.zz", Language: "Zed"},
		{Pattern: "source.aa", Language: "Ada"},
		{Pattern: "source.mm", Language: "Modula"},
	}, s.Docs)
}

func TestDocsList(t *testing.T) {
	s, err := Parse([]byte(`{"docs": [{"pattern": "python", "language": "Python"}]}`))
	require.NoError(t, err)
	assert.Equal(t, DocRules{{Pattern: "python", Language: "Python"}}, s.Docs)
}

func TestUserFileOverridesOnlyGivenKeys(t *testing.T) {
	s, err := Parse([]byte(`{"debugLogging": true}`))
	require.NoError(t, err)

	def, err := Default()
	require.NoError(t, err)
	assert.True(t, s.DebugLogging)
	assert.Equal(t, def.Docs, s.Docs)
	assert.Equal(t, def.CSSFile, s.CSSFile)
}

func TestNullKeepsDefaults(t *testing.T) {
	s, err := Parse([]byte(`{"docs": null}`))
	require.NoError(t, err)
	assert.NotEmpty(t, s.Docs)
}

func TestHelpLinksOrder(t *testing.T) {
	s, err := Parse([]byte(`{
		"helpLinks": {
			"item10": "https://ten.example/%s",
			"item9": "https://nine.example/%s"
		}
	}`))
	require.NoError(t, err)

	assert.Equal(t, []tooltip.LinkRule{
		{Pattern: "item10", Template: "https://ten.example/%s"},
		{Pattern: "item9", Template: "https://nine.example/%s"},
	}, s.Links())

	s.SortHelpLinks = true
	assert.Equal(t, []tooltip.LinkRule{
		{Pattern: "item9", Template: "https://nine.example/%s"},
		{Pattern: "item10", Template: "https://ten.example/%s"},
	}, s.Links())
}

func TestInvalidSettings(t *testing.T) {
	for name, data := range map[string]string{
		"missing language":  `{"docs": [{"pattern": "python"}]}`,
		"missing slot":      `{"helpLinks": {"math": "https://docs.example/"}}`,
		"bad scope pattern": `{"docs": {"source.(": "Broken"}}`,
		"bad link pattern":  `{"helpLinks": {"math(": "https://docs.example/%s"}}`,
		"empty css":         `{"cssFile": ""}`,
		"not json":          `docs: [`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	f := tempdir.NewTempDirFixture(t)
	p := f.WriteFile("settings.json", `{"docs": {"lua": "Lua"}, "debugLogging": true}`)

	s, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, DocRules{{Pattern: "lua", Language: "Lua"}}, s.Docs)
	assert.True(t, s.DebugLogging)
}

func TestLoadYAML(t *testing.T) {
	f := tempdir.NewTempDirFixture(t)
	p := f.WriteFile("settings.yaml", `
docs:
  - pattern: source\.lua
    language: Lua
helpLinks:
  - pattern: lua
    template: https://www.lua.org/manual/5.4/manual.html#pdf-%s
`)

	s, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, DocRules{{Pattern: `source\.lua`, Language: "Lua"}}, s.Docs)
	require.Len(t, s.HelpLinks, 1)
	assert.Equal(t, "lua", s.HelpLinks[0].Pattern)
}

func TestLoadMissingFile(t *testing.T) {
	f := tempdir.NewTempDirFixture(t)
	_, err := Load(f.JoinPath("nope.json"))
	assert.Error(t, err)
}

func TestLoadEmptyPath(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	def, err := Default()
	require.NoError(t, err)
	assert.Equal(t, def, s)
}

func TestStylesheetFromRoot(t *testing.T) {
	s, err := Parse([]byte(`{"cssFile": "css/dark.css"}`))
	require.NoError(t, err)

	root := fstest.MapFS{"css/dark.css": &fstest.MapFile{Data: []byte("h1 {}")}}
	css, err := s.Stylesheet(root)
	require.NoError(t, err)
	assert.Equal(t, "h1 {}", css)
}

func TestStylesheetAbsolutePath(t *testing.T) {
	f := tempdir.NewTempDirFixture(t)
	p := f.WriteFile("my.css", "b {}")

	s, err := Default()
	require.NoError(t, err)
	s.CSSFile = p

	css, err := s.Stylesheet(fstest.MapFS{})
	require.NoError(t, err)
	assert.Equal(t, "b {}", css)
}

func TestMissingStylesheet(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	_, err = s.Renderer(fstest.MapFS{})
	assert.Error(t, err)
}
