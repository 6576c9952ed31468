package tooltip

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Slot is the placeholder for the identifier name in a link template.
const Slot = "%s"

// LinkRule maps a record path pattern to a documentation URL template.
type LinkRule struct {
	Pattern  string `json:"pattern" validate:"required"`
	Template string `json:"template" validate:"required,contains=%s"`
}

type compiledLink struct {
	re       *regexp.Regexp
	template string
}

func compileLinks(rules []LinkRule) ([]compiledLink, error) {
	links := make([]compiledLink, 0, len(rules))
	for _, r := range rules {
		// Anchored at the start of the path, not the end.
		re, err := regexp.Compile(`^(?:` + r.Pattern + `)`)
		if err != nil {
			return nil, errors.Wrapf(err, "help link %q", r.Pattern)
		}
		links = append(links, compiledLink{re: re, template: r.Template})
	}
	return links, nil
}

func expand(template, name string) string {
	return strings.Replace(template, Slot, url.PathEscape(name), 1)
}
