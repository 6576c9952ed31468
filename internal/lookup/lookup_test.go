package lookup

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/seripap/Intellitip/internal/docs"
	"github.com/seripap/Intellitip/internal/language"
	"github.com/seripap/Intellitip/internal/tooltip"
)

const mathDocs = `{
	"sin": {"name": "sin", "syntax": "sin(x)", "descr": "Returns sine.", "params": [{"name": "x", "descr": "radians"}], "path": "math"},
	"cos": {"name": "cos", "syntax": "cos(x)", "descr": "Returns cosine.", "params": [{"name": "x", "descr": "radians"}], "path": "math"},
	"tan": {"name": "tan", "syntax": "tan(x)", "descr": "Returns tangent.", "params": [], "path": "trig"}
}`

func TestLookupFirstCandidateWins(t *testing.T) {
	f := newFixture(t)

	res, err := f.service.Lookup(f.ctx, Event{
		ScopeAtCursor: "source.math",
		PrecedingText: "y = cos(math.sin(",
		CurrentWord:   "sin",
	})
	require.NoError(t, err)
	assert.Equal(t, "Math", res.Language)
	assert.Equal(t, "sin", res.Candidate)
	assert.Equal(t, "sin(x)", res.Record.Syntax)
}

func TestLookupFallsBackToCurrentWord(t *testing.T) {
	f := newFixture(t)

	res, err := f.service.Lookup(f.ctx, Event{
		ScopeAtCursor: "source.math",
		PrecedingText: "y = ta",
		CurrentWord:   "tan",
	})
	require.NoError(t, err)
	assert.Equal(t, "tan", res.Record.Name)
}

func TestLookupUnresolvedLanguage(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Lookup(f.ctx, Event{ScopeAtCursor: "text.plain", CurrentWord: "sin"})
	require.Error(t, err)
	assert.True(t, IsKind(err, UnresolvedLanguage))
}

func TestLookupSyntaxPathFallback(t *testing.T) {
	f := newFixture(t)

	res, err := f.service.Lookup(f.ctx, Event{
		ScopeAtCursor:  "source.unknown",
		SyntaxFilePath: "Packages/Math/Math.sublime-syntax",
		CurrentWord:    "cos",
	})
	require.NoError(t, err)
	assert.Equal(t, "cos", res.Record.Name)
}

func TestLookupNoDocumentationForLanguage(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Lookup(f.ctx, Event{ScopeAtCursor: "source.broken", CurrentWord: "sin"})
	le, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, NoDocumentationForLanguage, le.Kind)
	assert.Equal(t, "Broken", le.Language)
	assert.Equal(t, "Could not find any documentation for Broken", le.Status())

	_, err = f.service.Lookup(f.ctx, Event{ScopeAtCursor: "source.cobol", CurrentWord: "sin"})
	assert.True(t, IsKind(err, NoDocumentationForLanguage))
}

func TestLookupNoDocumentationForIdentifier(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Lookup(f.ctx, Event{
		ScopeAtCursor: "source.math",
		PrecedingText: "y = sinx(",
		CurrentWord:   "sinx",
	})
	le, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, NoDocumentationForIdentifier, le.Kind)
	assert.Equal(t, "sinx", le.Identifier)
	assert.Equal(t, "sin", le.Suggestion)
	assert.Equal(t, "Could not find any documentation for Math :: sinx (did you mean sin?)", le.Status())
}

func TestEndToEnd(t *testing.T) {
	f := newFixture(t)

	popup, err := f.handler.Show(f.ctx, Event{
		ScopeAtCursor: "source.math",
		CurrentWord:   "sin",
	})
	require.NoError(t, err)
	for _, s := range []string{"sin(x)", "Returns sine.", "x:", "radians", "https://docs.example/sin"} {
		assert.Contains(t, popup.HTML, s)
	}
	assert.Equal(t, "https://docs.example/sin", popup.HelpURL)
	assert.Equal(t, tooltip.MaxWidth, popup.MaxWidth)
	assert.Equal(t, "Math", popup.Language)
	assert.Equal(t, "sin", popup.Name)
}

func TestNoHelpURLWhenNoRuleMatches(t *testing.T) {
	f := newFixture(t)

	popup, err := f.handler.Show(f.ctx, Event{ScopeAtCursor: "source.math", CurrentWord: "tan"})
	require.NoError(t, err)
	assert.Empty(t, popup.HelpURL)
	assert.NotContains(t, popup.HTML, "Open docs")
}

func TestPipelineIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ev := Event{ScopeAtCursor: "source.math", PrecedingText: "math.sin(", CurrentWord: "sin"}

	first, err := f.handler.Show(f.ctx, ev)
	require.NoError(t, err)
	second, err := f.handler.Show(f.ctx, ev)
	require.NoError(t, err)
	assert.Equal(t, first.HTML, second.HTML)
	assert.Equal(t, first, second)
}

func TestHandleDebouncesSameLine(t *testing.T) {
	f := newFixture(t)
	ev := Event{Surface: "view-1", ScopeAtCursor: "source.math", CursorLine: 3, CurrentWord: "sin"}

	resp := f.handler.Handle(f.ctx, ev)
	require.Equal(t, Shown, resp.Outcome)
	require.NotNil(t, resp.Popup)

	ev.CurrentWord = "cos"
	resp = f.handler.Handle(f.ctx, ev)
	assert.Equal(t, Debounced, resp.Outcome)
	assert.Nil(t, resp.Popup)

	ev.CursorLine = 4
	resp = f.handler.Handle(f.ctx, ev)
	require.Equal(t, Shown, resp.Outcome)
	assert.Equal(t, "cos", resp.Popup.Name)
}

func TestHandleDebounceIsPerSurface(t *testing.T) {
	f := newFixture(t)
	ev := Event{Surface: "view-1", ScopeAtCursor: "source.math", CursorLine: 3, CurrentWord: "sin"}

	assert.Equal(t, Shown, f.handler.Handle(f.ctx, ev).Outcome)

	ev.Surface = "view-2"
	assert.Equal(t, Shown, f.handler.Handle(f.ctx, ev).Outcome)

	f.handler.Forget("view-1")
	ev.Surface = "view-1"
	assert.Equal(t, Shown, f.handler.Handle(f.ctx, ev).Outcome)
}

func TestHandleIgnoresEphemeralSurfaces(t *testing.T) {
	f := newFixture(t)
	ev := Event{Surface: "panel", ScopeAtCursor: "source.math", CursorLine: 1, CurrentWord: "sin", IsEphemeralSurface: true}

	assert.Equal(t, Ignored, f.handler.Handle(f.ctx, ev).Outcome)

	// ignored events do not consume the line
	ev.IsEphemeralSurface = false
	assert.Equal(t, Shown, f.handler.Handle(f.ctx, ev).Outcome)
}

func TestHandleReportsMiss(t *testing.T) {
	f := newFixture(t)

	resp := f.handler.Handle(f.ctx, Event{Surface: "v", ScopeAtCursor: "text.plain", CursorLine: 1})
	assert.Equal(t, Missed, resp.Outcome)
	require.NotNil(t, resp.Miss)
	assert.Equal(t, UnresolvedLanguage, resp.Miss.Kind)
}

type fixture struct {
	ctx     context.Context
	service *Service
	handler *Handler
}

func newFixture(t *testing.T) *fixture {
	logger := zaptest.NewLogger(t)
	root := fstest.MapFS{
		"db/Math.json":   &fstest.MapFile{Data: []byte(mathDocs)},
		"db/Broken.json": &fstest.MapFile{Data: []byte(`{`)},
	}
	resolver, err := language.NewResolver([]language.Rule{
		{Pattern: `source\.math`, Language: "Math"},
		{Pattern: `source\.broken`, Language: "Broken"},
		{Pattern: `source\.cobol`, Language: "Cobol"},
	})
	require.NoError(t, err)
	renderer, err := tooltip.NewRenderer("h1 {}", []tooltip.LinkRule{
		{Pattern: "math", Template: "https://docs.example/%s"},
	})
	require.NoError(t, err)

	service := NewService(docs.NewStore(root, logger), resolver, logger)
	return &fixture{
		ctx:     context.Background(),
		service: service,
		handler: NewHandler(service, renderer, logger),
	}
}
