package settings

import (
	"bytes"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/seripap/Intellitip/internal/language"
	"github.com/seripap/Intellitip/internal/tooltip"
)

// DocRules are scope -> language rules. In a settings file they are either a
// list of {"pattern", "language"} objects or an object of pattern ->
// language; both keep the order they are written in.
type DocRules []language.Rule

func (r *DocRules) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	if isArray(data) {
		var rules []language.Rule
		if err := json.Unmarshal(data, &rules); err != nil {
			return err
		}
		*r = rules
		return nil
	}

	rules := DocRules{}
	err := eachPair(data, func(k, v string) {
		rules = append(rules, language.Rule{Pattern: k, Language: v})
	})
	if err != nil {
		return err
	}
	*r = rules
	return nil
}

// HelpLinks are path pattern -> URL template rules, written either as a list
// of {"pattern", "template"} objects or as an ordered object.
type HelpLinks []tooltip.LinkRule

func (h *HelpLinks) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	if isArray(data) {
		var links []tooltip.LinkRule
		if err := json.Unmarshal(data, &links); err != nil {
			return err
		}
		*h = links
		return nil
	}

	links := HelpLinks{}
	err := eachPair(data, func(k, v string) {
		links = append(links, tooltip.LinkRule{Pattern: k, Template: v})
	})
	if err != nil {
		return err
	}
	*h = links
	return nil
}

func eachPair(data []byte, fn func(k, v string)) error {
	om := orderedmap.New[string, string]()
	if err := json.Unmarshal(data, om); err != nil {
		return err
	}
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
	return nil
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

func isArray(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(data), []byte("["))
}
