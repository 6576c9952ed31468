// Package resources holds the documentation databases, stylesheets and
// default settings bundled with intellitip.
package resources

import (
	"embed"
	"io/fs"
)

//go:embed db/*.json css/*.css settings.default.json
var bundled embed.FS

// FS returns the bundled extension root: db/<language>.json and css/.
func FS() fs.FS {
	return bundled
}

// DefaultSettings returns the contents of the bundled settings file.
func DefaultSettings() []byte {
	b, err := bundled.ReadFile("settings.default.json")
	if err != nil {
		panic(err)
	}
	return b
}
