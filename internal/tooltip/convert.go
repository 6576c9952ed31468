package tooltip

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/k3a/html2text"

	"github.com/seripap/Intellitip/internal/docs"
)

// Markdown renders rec for hosts that display Markdown rather than HTML.
func (r *Renderer) Markdown(rec docs.Record) (string, error) {
	md, err := htmltomarkdown.ConvertString(r.Body(rec))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(md), nil
}

// PlainText renders rec without any markup.
func (r *Renderer) PlainText(rec docs.Record) string {
	return strings.TrimSpace(html2text.HTML2Text(r.Body(rec)))
}
