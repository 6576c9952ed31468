// Package settings loads intellitip's configuration.
//
// Settings files are JSON (YAML is accepted for files ending in .yaml or
// .yml). User files are layered over the bundled defaults key by key.
package settings

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/xdg"
	"github.com/ghodss/yaml"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/maruel/natural"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"

	"github.com/seripap/Intellitip/internal/language"
	"github.com/seripap/Intellitip/internal/tooltip"
	"github.com/seripap/Intellitip/resources"
)

// RelPath is where Find looks for a user settings file under the XDG config
// directories.
const RelPath = "intellitip/settings.json"

const DefaultCSSFile = "css/default.css"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var validate = validator.New()

type Settings struct {
	// CSSFile is relative to the extension root unless absolute.
	CSSFile string `json:"cssFile" validate:"required"`

	Docs      DocRules  `json:"docs" validate:"dive"`
	HelpLinks HelpLinks `json:"helpLinks" validate:"dive"`

	// SortHelpLinks orders help links by pattern (natural order) instead of
	// the order they are written in.
	SortHelpLinks bool `json:"sortHelpLinks"`

	DebugLogging bool `json:"debugLogging"`
}

// Default returns the bundled settings.
func Default() (*Settings, error) {
	s := &Settings{}
	if err := s.merge(resources.DefaultSettings(), false); err != nil {
		return nil, errors.Wrap(err, "bundled settings")
	}
	return s, nil
}

// Load reads the settings file at path over the bundled defaults.
// An empty path yields the defaults.
func Load(path string) (*Settings, error) {
	s, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return s, nil
	}

	path, err = homedir.Expand(path)
	if err != nil {
		return nil, errors.Wrapf(err, "settings path %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading settings")
	}
	if err := s.merge(data, isYAML(path)); err != nil {
		return nil, errors.Wrapf(err, "settings %s", path)
	}
	return s, nil
}

// Parse reads settings from data over the bundled defaults.
func Parse(data []byte) (*Settings, error) {
	s, err := Default()
	if err != nil {
		return nil, err
	}
	if err := s.merge(data, false); err != nil {
		return nil, err
	}
	return s, nil
}

// Find returns the user settings file in the XDG config directories, if any.
func Find() (string, bool) {
	p, err := xdg.SearchConfigFile(RelPath)
	if err != nil {
		return "", false
	}
	return p, true
}

func (s *Settings) merge(data []byte, fromYAML bool) error {
	if fromYAML {
		var err error
		data, err = yaml.YAMLToJSON(data)
		if err != nil {
			return errors.Wrap(err, "converting YAML")
		}
	}
	if err := json.Unmarshal(data, s); err != nil {
		return errors.Wrap(err, "decoding")
	}
	return s.Validate()
}

func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return errors.Wrap(err, "invalid settings")
	}
	if _, err := s.Resolver(); err != nil {
		return errors.Wrap(err, "invalid settings")
	}
	if _, err := tooltip.NewRenderer("", s.Links()); err != nil {
		return errors.Wrap(err, "invalid settings")
	}
	return nil
}

// Resolver builds the language resolver for the docs rules.
func (s *Settings) Resolver() (*language.Resolver, error) {
	return language.NewResolver(s.Docs)
}

// Links returns the help link rules in the order they should be tried.
func (s *Settings) Links() []tooltip.LinkRule {
	links := append([]tooltip.LinkRule(nil), s.HelpLinks...)
	if s.SortHelpLinks {
		sort.SliceStable(links, func(i, j int) bool {
			return natural.Less(links[i].Pattern, links[j].Pattern)
		})
	}
	return links
}

// Renderer builds a tooltip renderer using the configured stylesheet and
// help links. Relative stylesheet paths are read from root.
func (s *Settings) Renderer(root fs.FS) (*tooltip.Renderer, error) {
	css, err := s.Stylesheet(root)
	if err != nil {
		return nil, err
	}
	return tooltip.NewRenderer(css, s.Links())
}

func (s *Settings) Stylesheet(root fs.FS) (string, error) {
	p, err := homedir.Expand(s.CSSFile)
	if err != nil {
		return "", errors.Wrapf(err, "stylesheet path %q", s.CSSFile)
	}

	var b []byte
	if filepath.IsAbs(p) {
		b, err = os.ReadFile(p)
	} else {
		b, err = fs.ReadFile(root, filepath.ToSlash(p))
	}
	if err != nil {
		return "", errors.Wrap(err, "reading stylesheet")
	}
	return string(b), nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
