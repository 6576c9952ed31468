package docs

import (
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Dir is the directory under the extension root holding <language>.json files.
const Dir = "db"

const ext = ".json"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store loads and caches a DocSet per language.
//
// The cache is never invalidated: resources are assumed static for the
// lifetime of the Store.
type Store struct {
	root   fs.FS
	logger *zap.Logger

	mu    sync.Mutex
	cache map[string]*DocSet

	loads singleflight.Group
}

func NewStore(root fs.FS, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		root:   root,
		logger: logger.Named("docs"),
		cache:  make(map[string]*DocSet),
	}
}

// DocSet returns the documentation for language, loading it on first use.
//
// Missing, unreadable and malformed resources all produce an empty DocSet.
func (s *Store) DocSet(language string) *DocSet {
	s.mu.Lock()
	set, ok := s.cache[language]
	s.mu.Unlock()
	if ok {
		return set
	}

	v, _, _ := s.loads.Do(language, func() (interface{}, error) {
		s.mu.Lock()
		if set, ok := s.cache[language]; ok {
			s.mu.Unlock()
			return set, nil
		}
		s.mu.Unlock()

		records, err := s.load(language)
		if err != nil {
			s.logger.Debug("no documentation loaded",
				zap.String("language", language), zap.Error(err))
		}
		set := newDocSet(language, records)

		s.mu.Lock()
		s.cache[language] = set
		s.mu.Unlock()
		return set, nil
	})
	return v.(*DocSet)
}

func (s *Store) load(language string) (map[string]Record, error) {
	p := resourcePath(language)
	if language == "" || strings.ContainsAny(language, `/\`) || !fs.ValidPath(p) {
		return nil, errors.Errorf("invalid language name %q", language)
	}

	b, err := fs.ReadFile(s.root, p)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", p)
	}

	var records map[string]Record
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", p)
	}
	return records, nil
}

// Languages lists the languages with a resource under Dir, sorted.
func (s *Store) Languages() ([]string, error) {
	entries, err := fs.ReadDir(s.root, Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "listing documentation")
	}

	var langs []string
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ext {
			continue
		}
		langs = append(langs, strings.TrimSuffix(e.Name(), ext))
	}
	sort.Strings(langs)
	return langs, nil
}

func resourcePath(language string) string {
	return path.Join(Dir, language+ext)
}
