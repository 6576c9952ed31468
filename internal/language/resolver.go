// Package language maps editor scope and syntax metadata to a
// documentation language key.
package language

import (
	"path"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Syntax definition extensions, newest format first.
var syntaxExts = []string{".sublime-syntax", ".tmLanguage"}

// Rule maps a scope pattern to a language key.
type Rule struct {
	Pattern  string `json:"pattern" validate:"required"`
	Language string `json:"language" validate:"required"`
}

type compiledRule struct {
	re       *regexp.Regexp
	language string
}

// Resolver tries its rules in order. The first rule whose pattern matches
// anywhere in the scope wins.
type Resolver struct {
	rules []compiledRule
}

func NewResolver(rules []Rule) (*Resolver, error) {
	r := &Resolver{rules: make([]compiledRule, 0, len(rules))}
	for i, rule := range rules {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "docs rule %d (%q)", i, rule.Pattern)
		}
		r.rules = append(r.rules, compiledRule{re: re, language: rule.Language})
	}
	return r, nil
}

// Resolve returns the language for a scope string, falling back to the name
// of the syntax definition file. ok is false when neither yields a language.
func (r *Resolver) Resolve(scope, syntaxPath string) (language string, ok bool) {
	for _, rule := range r.rules {
		if rule.re.MatchString(scope) {
			return rule.language, true
		}
	}
	return FromSyntaxPath(syntaxPath)
}

// FromSyntaxPath extracts a language from a syntax definition path such as
// "Packages/C++/C++.sublime-syntax".
func FromSyntaxPath(syntaxPath string) (string, bool) {
	if syntaxPath == "" {
		return "", false
	}
	base := path.Base(strings.ReplaceAll(syntaxPath, `\`, "/"))
	for _, ext := range syntaxExts {
		if name := strings.TrimSuffix(base, ext); name != base && name != "" {
			return name, true
		}
	}
	return "", false
}
