// Package lookup resolves the documentation record for a cursor position.
package lookup

import (
	"context"

	"go.uber.org/zap"

	"github.com/seripap/Intellitip/internal/candidate"
	"github.com/seripap/Intellitip/internal/docs"
	"github.com/seripap/Intellitip/internal/language"
)

// Event is what the host reports about the cursor.
type Event struct {
	// Surface identifies the editable surface (view, document URI) the
	// event comes from. Debouncing is per surface.
	Surface string `json:"surface"`

	ScopeAtCursor  string `json:"scopeAtCursor"`
	SyntaxFilePath string `json:"syntaxFilePath"`
	CursorLine     int    `json:"cursorLine"`

	// PrecedingText is the text before the cursor. Only the tail of the
	// current line is used.
	PrecedingText string `json:"precedingText"`
	CurrentWord   string `json:"currentWord"`

	// IsEphemeralSurface marks the host's own input widgets; such events
	// are ignored.
	IsEphemeralSurface bool `json:"isEphemeralSurface"`
}

type Result struct {
	Language string
	// Candidate is the extracted name that matched.
	Candidate string
	Record    docs.Record
}

// Service runs the lookup pipeline: language, doc set, candidates, record.
type Service struct {
	store    *docs.Store
	resolver *language.Resolver
	logger   *zap.Logger
}

func NewService(store *docs.Store, resolver *language.Resolver, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		resolver: resolver,
		logger:   logger.Named("lookup"),
	}
}

func (s *Service) Store() *docs.Store {
	return s.store
}

// Lookup returns the record for ev, or an *Error describing the miss.
func (s *Service) Lookup(ctx context.Context, ev Event) (*Result, error) {
	lang, ok := s.resolver.Resolve(ev.ScopeAtCursor, ev.SyntaxFilePath)
	if !ok {
		return nil, &Error{Kind: UnresolvedLanguage}
	}

	set := s.store.DocSet(lang)
	if set.Empty() {
		return nil, &Error{Kind: NoDocumentationForLanguage, Language: lang}
	}

	candidates := candidate.Extract(ev.PrecedingText, ev.CurrentWord)
	s.logger.Debug("candidates",
		zap.String("language", lang), zap.Strings("candidates", candidates))

	for _, c := range candidates {
		if rec, ok := set.Get(c); ok {
			return &Result{Language: lang, Candidate: c, Record: rec}, nil
		}
	}

	ident := ev.CurrentWord
	if ident == "" && len(candidates) > 0 {
		ident = candidates[0]
	}
	return nil, &Error{
		Kind:       NoDocumentationForIdentifier,
		Language:   lang,
		Identifier: ident,
		Suggestion: suggest(set, ident),
	}
}
