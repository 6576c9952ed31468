// Package candidate guesses which identifiers the user means from the text
// in front of the cursor.
//
// This is a heuristic over partial, possibly malformed source text, not a
// parser. It never fails.
package candidate

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Lookback is how many characters before the cursor are considered.
const Lookback = 100

const minLen = 2

const trimSet = ".()[] \t"

// Either a dotted member chain (a trailing dot is allowed while typing) or a
// bare identifier followed by an opening parenthesis. Identifiers may use
// any Unicode letter or digit.
var tokenRe = regexp.MustCompile(`[\p{L}\p{N}_$]+(?:\.[\p{L}\p{N}_$]*)+|[\p{L}\p{N}_$]+\s*\(`)

// Window returns the part of text that candidates are extracted from: at
// most Lookback characters ending at the cursor, cut at the last line break.
func Window(text string) string {
	if n := utf8.RuneCountInString(text); n > Lookback {
		r := []rune(text)
		text = string(r[n-Lookback:])
	}
	if i := strings.LastIndexAny(text, "\r\n"); i >= 0 {
		text = text[i+1:]
	}
	return text
}

// Extract returns lookup candidates, most likely first.
//
// Tokens nearest the cursor rank highest. A dotted token is followed by its
// last member, and word (the word under the cursor) always comes last.
func Extract(preceding, word string) []string {
	tokens := tokenRe.FindAllString(Window(preceding), -1)

	var out []string
	seen := make(map[string]bool)
	add := func(c string) {
		if c == "" || seen[c] {
			return
		}
		seen[c] = true
		out = append(out, c)
	}

	for i := len(tokens) - 1; i >= 0; i-- {
		tok := strings.Trim(tokens[i], trimSet)
		if utf8.RuneCountInString(tok) < minLen {
			continue
		}
		add(tok)
		if dot := strings.LastIndexByte(tok, '.'); dot >= 0 {
			add(tok[dot+1:])
		}
	}
	add(word)
	return out
}
