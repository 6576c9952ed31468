package document

import (
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// Document is an open text buffer as last reported by the client.
type Document struct {
	URI        uri.URI
	LanguageID string
	Version    int32
	Text       string
}

// Scope is the scope string used for language resolution, e.g.
// "source.python" for a document opened with language id "python".
func (d Document) Scope() string {
	if d.LanguageID == "" {
		return ""
	}
	return "source." + strings.ToLower(d.LanguageID)
}

// Line returns line n without its line terminator.
func (d Document) Line(n uint32) (string, bool) {
	text := d.Text
	for i := uint32(0); i < n; i++ {
		nl := strings.IndexByte(text, '\n')
		if nl < 0 {
			return "", false
		}
		text = text[nl+1:]
	}
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[:nl]
	}
	return strings.TrimSuffix(text, "\r"), true
}

// At returns the text on the cursor's line before the cursor and the word
// under the cursor. Positions count UTF-16 code units, as in LSP.
func (d Document) At(pos protocol.Position) (preceding, word string, ok bool) {
	line, ok := d.Line(pos.Line)
	if !ok {
		return "", "", false
	}
	off := byteOffset(line, pos.Character)
	start, end := wordBounds(line, off)
	return line[:off], line[start:end], true
}

// Hovered is like At, but the text runs through the end of the word under
// the cursor and an opening parenthesis directly after it. The hovered word
// is then the token nearest the end of the text.
func (d Document) Hovered(pos protocol.Position) (text, word string, ok bool) {
	line, ok := d.Line(pos.Line)
	if !ok {
		return "", "", false
	}
	start, end := wordBounds(line, byteOffset(line, pos.Character))
	word = line[start:end]
	if strings.HasPrefix(line[end:], "(") {
		end++
	}
	return line[:end], word, true
}

func byteOffset(line string, char uint32) int {
	units := uint32(0)
	for i, r := range line {
		if units >= char {
			return i
		}
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		units += uint32(n)
	}
	return len(line)
}

func isWordRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func wordBounds(line string, off int) (int, int) {
	start := off
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(line[:start])
		if !isWordRune(r) {
			break
		}
		start -= size
	}
	end := off
	for end < len(line) {
		r, size := utf8.DecodeRuneInString(line[end:])
		if !isWordRune(r) {
			break
		}
		end += size
	}
	return start, end
}
