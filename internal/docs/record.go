package docs

import "sort"

// Record documents a single identifier.
type Record struct {
	Name   string  `json:"name"`
	Syntax string  `json:"syntax"`
	Descr  string  `json:"descr"`
	Params []Param `json:"params"`

	// Path selects the help link template for this record.
	Path string `json:"path"`
}

type Param struct {
	Name  string `json:"name"`
	Descr string `json:"descr"`
}

// DocSet maps identifier names to records for one language.
//
// A DocSet is never mutated after it is loaded. An empty DocSet means the
// language has no documentation, whether the resource is missing or broken.
type DocSet struct {
	language string
	records  map[string]Record
}

func newDocSet(language string, records map[string]Record) *DocSet {
	if records == nil {
		records = map[string]Record{}
	}
	return &DocSet{language: language, records: records}
}

func (s *DocSet) Language() string {
	return s.language
}

// Get returns the record documenting name.
func (s *DocSet) Get(name string) (Record, bool) {
	r, ok := s.records[name]
	return r, ok
}

func (s *DocSet) Len() int {
	return len(s.records)
}

func (s *DocSet) Empty() bool {
	return len(s.records) == 0
}

// Names returns the documented identifiers in sorted order.
func (s *DocSet) Names() []string {
	names := make([]string, 0, len(s.records))
	for name := range s.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
