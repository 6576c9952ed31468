package document

import (
	"os"
	"sync"

	"go.lsp.dev/uri"
)

// Manager tracks the documents the client has open.
type Manager struct {
	mu   sync.Mutex
	docs map[uri.URI]Document
}

func NewDocumentManager() *Manager {
	return &Manager{
		docs: make(map[uri.URI]Document),
	}
}

// Read returns the document for the given URI.
//
// If the client has not opened it, os.ErrNotExist is returned.
func (m *Manager) Read(u uri.URI) (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if doc, ok := m.docs[u]; ok {
		return doc, nil
	}
	return Document{}, os.ErrNotExist
}

// Open creates or replaces the document for the given URI.
func (m *Manager) Open(u uri.URI, languageID string, version int32, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[u] = Document{URI: u, LanguageID: languageID, Version: version, Text: text}
}

// Update replaces the text of an open document. Unknown URIs are opened
// without a language id.
func (m *Manager) Update(u uri.URI, version int32, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc := m.docs[u]
	doc.URI = u
	doc.Version = version
	doc.Text = text
	m.docs[u] = doc
}

func (m *Manager) Remove(u uri.URI) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, u)
}
