package lookup

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies why a lookup produced no documentation. None of them are
// fatal: the host hides the tooltip and may show Status().
type Kind int

const (
	// UnresolvedLanguage: no docs rule matched the scope and the syntax
	// file name did not name a language.
	UnresolvedLanguage Kind = iota + 1

	// NoDocumentationForLanguage: the language has no resource, or the
	// resource could not be read or parsed.
	NoDocumentationForLanguage

	// NoDocumentationForIdentifier: no candidate is documented.
	NoDocumentationForIdentifier
)

func (k Kind) String() string {
	switch k {
	case UnresolvedLanguage:
		return "unresolved language"
	case NoDocumentationForLanguage:
		return "no documentation for language"
	case NoDocumentationForIdentifier:
		return "no documentation for identifier"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

type Error struct {
	Kind       Kind
	Language   string
	Identifier string

	// Suggestion is the closest documented name, when one was found.
	Suggestion string
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Status()
}

// Status is a short message for the host's status bar.
func (e *Error) Status() string {
	switch e.Kind {
	case UnresolvedLanguage:
		return "Could not determine the language at the cursor"
	case NoDocumentationForLanguage:
		return fmt.Sprintf("Could not find any documentation for %s", e.Language)
	case NoDocumentationForIdentifier:
		msg := fmt.Sprintf("Could not find any documentation for %s :: %s", e.Language, e.Identifier)
		if e.Suggestion != "" {
			msg += fmt.Sprintf(" (did you mean %s?)", e.Suggestion)
		}
		return msg
	}
	return e.Kind.String()
}

// AsError returns the lookup miss wrapped in err, if any.
func AsError(err error) (*Error, bool) {
	var le *Error
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}

// IsKind reports whether err is a lookup miss of kind k.
func IsKind(err error, k Kind) bool {
	le, ok := AsError(err)
	return ok && le.Kind == k
}
