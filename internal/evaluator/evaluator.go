package evaluator

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/genricoloni/mprisline/internal/domain"
	"github.com/genricoloni/mprisline/internal/format"
	"github.com/genricoloni/mprisline/internal/registry"
	"github.com/genricoloni/mprisline/internal/scroll"
)

const (
	// infoNameWidth is the scroll window of the player name in the info block
	infoNameWidth = 10
	unknownTime   = "N/A"
)

// Evaluator renders a display format against the registry and scroll state
type Evaluator struct {
	display  *format.Tree
	metadata *MetadataFormatter
	icons    domain.Icons
	// scroll slots for info names live after the display tree's own slots
	nameSlotBase int
}

// NewEvaluator creates an evaluator for a display tree and a metadata tree
func NewEvaluator(display, metadata *format.Tree, icons domain.Icons) (*Evaluator, error) {
	if display == nil || display.Mode != format.Display {
		return nil, fmt.Errorf("display tree must be compiled in display mode")
	}
	if metadata == nil || metadata.Mode != format.Metadata {
		return nil, fmt.Errorf("metadata tree must be compiled in metadata mode")
	}
	return &Evaluator{
		display:      display,
		metadata:     NewMetadataFormatter(metadata),
		icons:        icons,
		nameSlotBase: display.Blocks,
	}, nil
}

// Metadata returns the formatter used by the metadata block
func (e *Evaluator) Metadata() *MetadataFormatter {
	return e.metadata
}

// Evaluate renders the display tree for the current tick.
// Output is a pure function of the registry, the scroll states and the tick.
func (e *Evaluator) Evaluate(reg *registry.Registry, scroller *scroll.Engine) []domain.Fragment {
	ec := &evalContext{e: e, reg: reg, scroller: scroller}
	ec.focused, ec.index, ec.ok = reg.Focused()
	return renderNodes(e.display.Nodes, ec.resolve)
}

type evalContext struct {
	e        *Evaluator
	reg      *registry.Registry
	scroller *scroll.Engine

	focused domain.PlayerSnapshot
	index   int
	ok      bool
}

func (c *evalContext) resolve(b format.Block) resolved {
	icons := c.e.icons

	switch b.Kind {
	case format.KindPrev:
		return c.action(icons.Prev, domain.CommandPrev)
	case format.KindNext:
		return c.action(icons.Next, domain.CommandNext)
	case format.KindPlayPause:
		if c.ok && c.focused.Status == domain.StatusPlaying {
			return c.action(icons.Pause, domain.CommandPlayPause)
		}
		return c.action(icons.Play, domain.CommandPlayPause)
	case format.KindStatus:
		return c.status()
	case format.KindPrevPlayer:
		return c.cycle(icons.PrevPlayer, domain.CommandPrevPlayer)
	case format.KindNextPlayer:
		return c.cycle(icons.NextPlayer, domain.CommandNextPlayer)
	case format.KindInfo:
		return c.info(b)
	case format.KindMetadata:
		return c.metadata(b)
	case format.KindTime:
		return c.time(b)
	}
	return resolved{empty: true}
}

func (c *evalContext) action(icon string, cmd domain.Command) resolved {
	if !c.ok {
		return resolved{empty: true}
	}
	return resolved{text: icon, action: cmd}
}

func (c *evalContext) status() resolved {
	if !c.ok {
		return resolved{empty: true}
	}
	icons := c.e.icons
	switch c.focused.Status {
	case domain.StatusPlaying:
		return resolved{text: icons.Play}
	case domain.StatusPaused:
		return resolved{text: icons.Pause}
	default:
		return resolved{text: icons.Stop}
	}
}

// cycle renders a player switcher, which only makes sense with two or more players
func (c *evalContext) cycle(icon string, cmd domain.Command) resolved {
	if c.reg.Len() < 2 {
		return resolved{empty: true}
	}
	return resolved{text: icon, action: cmd}
}

func (c *evalContext) info(b format.Block) resolved {
	if !c.ok {
		return resolved{empty: true}
	}

	var sb strings.Builder
	showName := b.Bool(format.InfoShowName)
	sb.WriteString(strconv.Itoa(c.index + 1))
	if b.Bool(format.InfoShowTotal) {
		sb.WriteString("/")
		sb.WriteString(strconv.Itoa(c.reg.Len()))
	}
	if showName {
		sb.WriteString(": ")
		sb.WriteString(c.scroller.Window(c.e.nameSlotBase+b.Slot, c.focused.Name, infoNameWidth, format.DefaultWaitTicks))
	}
	return resolved{text: sb.String(), fixed: showName}
}

func (c *evalContext) metadata(b format.Block) resolved {
	content := ""
	if c.ok {
		content = c.e.metadata.Format(c.focused)
	}
	window := c.scroller.Window(b.Slot, content, b.Uint(format.MetadataBufferSize), b.Uint(format.MetadataWaitTicks))
	return resolved{text: window, empty: content == "", fixed: true}
}

func (c *evalContext) time(b format.Block) resolved {
	if !c.ok {
		return resolved{empty: true}
	}

	p := c.focused
	position := unknownTime
	if p.HasPosition {
		position = formatDuration(p.Position)
	}
	length := unknownTime
	if p.Length > 0 {
		length = formatDuration(p.Length)
	}
	remaining := unknownTime
	if p.HasPosition && p.Length > 0 {
		remaining = formatDuration(max(p.Length-p.Position, 0))
	}

	showLength := b.Bool(format.TimeShowLength)
	useRemaining := b.Bool(format.TimeUseRemaining)

	var text string
	switch {
	case showLength && useRemaining:
		text = position + "/" + remaining
	case showLength:
		text = position + "/" + length
	case useRemaining:
		text = remaining
	default:
		text = position
	}
	return resolved{text: text, empty: !p.HasPosition}
}

// formatDuration renders MM:SS; minutes keep counting past 59
func formatDuration(d time.Duration) string {
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
