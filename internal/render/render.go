package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/genricoloni/mprisline/internal/domain"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"
)

// Renderer names accepted by New
const (
	Polybar  = "polybar"
	Lemonbar = "lemonbar"
	Plain    = "plain"
	TTY      = "tty"
)

// ErrUnknownRenderer is returned for an unsupported renderer name
var ErrUnknownRenderer = errors.New("unknown renderer")

// Writer prints one status line per tick, skipping lines identical to the previous one
type Writer struct {
	logger  *zap.Logger
	out     io.Writer
	encode  func([]domain.Fragment) string
	inPlace bool

	last     string
	rendered bool
}

// NewRenderer builds the renderer named by the configuration, writing to stdout
func NewRenderer(cfg domain.Config, logger *zap.Logger) (*Writer, error) {
	exe, err := os.Executable()
	if err != nil {
		logger.Warn("Could not resolve executable path, click actions use the bare name", zap.Error(err))
		exe = "mprisline"
	}
	return New(cfg.GetRenderer(), os.Stdout, logger, Command{Executable: exe, Pipe: cfg.GetPipePath()})
}

// New creates a renderer by name. click describes how bar click actions reach the daemon.
func New(name string, out io.Writer, logger *zap.Logger, click Command) (*Writer, error) {
	w := &Writer{logger: logger, out: out}

	switch name {
	case Polybar, Lemonbar:
		w.encode = click.encode
	case Plain:
		w.encode = textOnly
	case TTY:
		w.encode = textOnly
		w.inPlace = true
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRenderer, name)
	}

	logger.Info("Renderer selected", zap.String("renderer", name))
	return w, nil
}

// Render writes the fragments of one tick
func (w *Writer) Render(fragments []domain.Fragment) error {
	line := w.encode(trimTrailingSpace(fragments))
	if w.rendered && line == w.last {
		return nil
	}

	var out string
	if w.inPlace {
		// Blank out the previous line before drawing over it
		out = "\r" + strings.Repeat(" ", runewidth.StringWidth(w.last)) + "\r" + line
	} else {
		out = line + "\n"
	}

	if _, err := io.WriteString(w.out, out); err != nil {
		return fmt.Errorf("failed to write status line: %w", err)
	}
	w.last = line
	w.rendered = true
	return nil
}

func textOnly(fragments []domain.Fragment) string {
	var sb strings.Builder
	for _, f := range fragments {
		sb.WriteString(f.Text)
	}
	return sb.String()
}

// trimTrailingSpace drops trailing whitespace across fragment boundaries.
// It stops at a fixed-width fragment, keeping its padding.
func trimTrailingSpace(fragments []domain.Fragment) []domain.Fragment {
	out := fragments
	for len(out) > 0 {
		last := out[len(out)-1]
		if last.Fixed {
			return out
		}
		trimmed := strings.TrimRightFunc(last.Text, unicode.IsSpace)
		if trimmed != "" {
			if trimmed != last.Text {
				out = append(out[:len(out)-1:len(out)-1], domain.Fragment{Text: trimmed, Action: last.Action})
			}
			return out
		}
		out = out[:len(out)-1]
	}
	return out
}
