package lookup

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/seripap/Intellitip/internal/tooltip"
)

// Popup is what the host is asked to display.
type Popup struct {
	HTML      string `json:"html"`
	MaxWidth  int    `json:"maxWidth"`
	MaxHeight int    `json:"maxHeight"`

	// HelpURL is opened when the user follows the docs link. Empty when no
	// help link rule matched.
	HelpURL string `json:"helpURL,omitempty"`

	Language string `json:"language"`
	Name     string `json:"name"`
}

type Outcome int

const (
	// Shown: Popup is set.
	Shown Outcome = iota
	// Ignored: the event came from an ephemeral surface.
	Ignored
	// Debounced: the cursor is still on the last processed line.
	Debounced
	// Missed: no documentation; Miss is set.
	Missed
)

type Response struct {
	Outcome Outcome
	Popup   *Popup
	Miss    *Error
}

// Handler turns host cursor events into popups. It remembers the last cursor
// line processed for every surface and skips events on that same line.
type Handler struct {
	service  *Service
	renderer *tooltip.Renderer
	logger   *zap.Logger

	mu        sync.Mutex
	lastLines map[string]int
}

func NewHandler(service *Service, renderer *tooltip.Renderer, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		service:   service,
		renderer:  renderer,
		logger:    logger.Named("handler"),
		lastLines: make(map[string]int),
	}
}

func (h *Handler) Renderer() *tooltip.Renderer {
	return h.renderer
}

func (h *Handler) Service() *Service {
	return h.service
}

// Handle processes a cursor event. Lookup misses are reported in the
// Response, never as errors.
func (h *Handler) Handle(ctx context.Context, ev Event) Response {
	if ev.IsEphemeralSurface {
		return Response{Outcome: Ignored}
	}
	if !h.markLine(ev.Surface, ev.CursorLine) {
		h.logger.Debug("same line, skipping",
			zap.String("surface", ev.Surface), zap.Int("line", ev.CursorLine))
		return Response{Outcome: Debounced}
	}

	popup, err := h.Show(ctx, ev)
	if err != nil {
		miss, _ := AsError(err)
		h.logger.Debug("no tooltip", zap.String("status", miss.Status()))
		return Response{Outcome: Missed, Miss: miss}
	}
	return Response{Outcome: Shown, Popup: popup}
}

// Show looks up ev and renders the popup, without debouncing.
func (h *Handler) Show(ctx context.Context, ev Event) (*Popup, error) {
	res, err := h.service.Lookup(ctx, ev)
	if err != nil {
		return nil, err
	}
	helpURL, _ := h.renderer.HelpURL(res.Record)
	return &Popup{
		HTML:      h.renderer.Render(res.Record),
		MaxWidth:  tooltip.MaxWidth,
		MaxHeight: tooltip.MaxHeight,
		HelpURL:   helpURL,
		Language:  res.Language,
		Name:      res.Record.Name,
	}, nil
}

// Forget drops the debounce state for a surface, e.g. when it is closed.
func (h *Handler) Forget(surface string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.lastLines, surface)
}

// markLine records line as processed and reports whether it differs from
// the previous one.
func (h *Handler) markLine(surface string, line int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if last, ok := h.lastLines[surface]; ok && last == line {
		return false
	}
	h.lastLines[surface] = line
	return true
}
