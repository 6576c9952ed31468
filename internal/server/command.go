package server

import (
	"context"
	"fmt"
	"net/url"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

// CommandOpenDocs opens its single argument, a docs URL, in the browser.
// Hosts invoke it when the user follows the link in a popup.
const CommandOpenDocs = "intellitip.openDocs"

func (s *Server) ExecuteCommand(ctx context.Context, params *protocol.ExecuteCommandParams) (interface{}, error) {
	if params.Command != CommandOpenDocs {
		return nil, fmt.Errorf("unknown command %q", params.Command)
	}
	if len(params.Arguments) != 1 {
		return nil, fmt.Errorf("%s: expected 1 argument, got %d", CommandOpenDocs, len(params.Arguments))
	}
	link, ok := params.Arguments[0].(string)
	if !ok {
		return nil, fmt.Errorf("%s: argument must be a string", CommandOpenDocs)
	}
	if err := checkDocsURL(link); err != nil {
		return nil, err
	}

	protocol.LoggerFromContext(ctx).Debug("opening docs", zap.String("url", link))
	if err := s.openURL(link); err != nil {
		return nil, fmt.Errorf("opening %s: %v", link, err)
	}
	return nil, nil
}

func checkDocsURL(link string) error {
	u, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("%s: %v", CommandOpenDocs, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s: refusing to open %q", CommandOpenDocs, link)
	}
	return nil
}
