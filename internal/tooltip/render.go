// Package tooltip formats documentation records for display.
package tooltip

import (
	"html"
	"strings"

	"github.com/seripap/Intellitip/internal/docs"
)

// A <br> goes after the first sentence that ends once a line of the
// description is longer than this.
const wrapAfter = 100

// Popup size hints, in pixels.
const (
	MaxWidth  = 1200
	MaxHeight = 1200
)

// Renderer turns records into HTML fragments. It holds no per-call state and
// is safe for concurrent use.
type Renderer struct {
	stylesheet string
	links      []compiledLink
}

// NewRenderer creates a Renderer. Help links are tried in the given order
// and the first match wins.
func NewRenderer(stylesheet string, links []LinkRule) (*Renderer, error) {
	compiled, err := compileLinks(links)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		stylesheet: strings.ReplaceAll(stylesheet, "\r", ""),
		links:      compiled,
	}, nil
}

// Render returns the full fragment, stylesheet included.
func (r *Renderer) Render(rec docs.Record) string {
	var sb strings.Builder
	sb.WriteString("<style>")
	sb.WriteString(r.stylesheet)
	sb.WriteString("</style>")
	r.writeBody(&sb, rec)
	return sb.String()
}

// Body returns the fragment without the style block.
func (r *Renderer) Body(rec docs.Record) string {
	var sb strings.Builder
	r.writeBody(&sb, rec)
	return sb.String()
}

// HelpURL returns the documentation link for rec, if any rule matches its path.
func (r *Renderer) HelpURL(rec docs.Record) (string, bool) {
	for _, l := range r.links {
		if l.re.MatchString(rec.Path) {
			return expand(l.template, rec.Name), true
		}
	}
	return "", false
}

func (r *Renderer) writeBody(sb *strings.Builder, rec docs.Record) {
	sb.WriteString("<h1>")
	sb.WriteString(html.EscapeString(rec.Syntax))
	sb.WriteString("</h1>")

	sb.WriteString("<br>")
	sb.WriteString(wrap(rec.Descr))
	sb.WriteString("<br>")

	if len(rec.Params) > 0 {
		sb.WriteString("<h1>Parameters:</h1>")
		for _, p := range rec.Params {
			sb.WriteString("- <b>")
			sb.WriteString(html.EscapeString(p.Name))
			sb.WriteString(":</b> ")
			sb.WriteString(html.EscapeString(p.Descr))
			sb.WriteString("<br>")
		}
	}

	if u, ok := r.HelpURL(rec); ok {
		sb.WriteString(`<br>Open docs: <a href="`)
		sb.WriteString(html.EscapeString(u))
		sb.WriteString(`">Docs</a>`)
	}
}

// wrap escapes descr and breaks it after sentence ends once the running
// line is longer than wrapAfter. Words are never split.
func wrap(descr string) string {
	words := strings.Fields(descr)

	var sb strings.Builder
	line := 0
	for i, w := range words {
		if line > 0 {
			sb.WriteByte(' ')
			line++
		}
		sb.WriteString(html.EscapeString(w))
		line += len(w)

		if line > wrapAfter && endsSentence(w) && i < len(words)-1 {
			sb.WriteString("<br>")
			line = 0
		}
	}
	return sb.String()
}

func endsSentence(word string) bool {
	return strings.HasSuffix(word, ".")
}
