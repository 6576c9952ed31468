package tempdir

import (
	"os"
	"path/filepath"
	"testing"
)

// TempDirFixture lays out an extension root or settings files on disk.
// The directory is removed when the test ends.
type TempDirFixture struct {
	t   testing.TB
	dir string
}

func NewTempDirFixture(t testing.TB) *TempDirFixture {
	return &TempDirFixture{
		t:   t,
		dir: t.TempDir(),
	}
}

func (f *TempDirFixture) T() testing.TB {
	return f.t
}

func (f *TempDirFixture) Path() string {
	return f.dir
}

func (f *TempDirFixture) JoinPath(path ...string) string {
	p := []string{f.Path()}
	p = append(p, path...)
	return filepath.Join(p...)
}

// WriteFile writes contents to a path relative to the fixture root, creating
// parent directories, and returns the absolute path.
func (f *TempDirFixture) WriteFile(path string, contents string) string {
	fullPath := f.JoinPath(path)
	err := os.MkdirAll(filepath.Dir(fullPath), os.FileMode(0755))
	if err != nil {
		f.t.Fatal(err)
	}
	err = os.WriteFile(fullPath, []byte(contents), os.FileMode(0644))
	if err != nil {
		f.t.Fatal(err)
	}
	return fullPath
}

func (f *TempDirFixture) MkdirAll(path string) {
	err := os.MkdirAll(f.JoinPath(path), os.FileMode(0755))
	if err != nil {
		f.t.Fatal(err)
	}
}

func (f *TempDirFixture) Rm(path string) {
	err := os.RemoveAll(f.JoinPath(path))
	if err != nil {
		f.t.Fatal(err)
	}
}
