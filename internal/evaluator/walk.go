package evaluator

import (
	"github.com/genricoloni/mprisline/internal/domain"
	"github.com/genricoloni/mprisline/internal/format"
)

// resolved is the value of one block on the current tick.
// text is what the block prints when it stands alone, which may be a placeholder
// such as "N/A"; empty marks a block whose underlying value is absent.
type resolved struct {
	text   string
	action domain.Command
	empty  bool
	fixed  bool
}

type resolver func(b format.Block) resolved

func (r resolved) fragment() domain.Fragment {
	return domain.Fragment{Text: r.text, Action: r.action, Fixed: r.fixed}
}

// renderNodes evaluates a top-level sequence. Blocks outside optional sections
// always print, empty or not.
func renderNodes(nodes []format.Node, resolve resolver) []domain.Fragment {
	var out []domain.Fragment
	for _, n := range nodes {
		switch n.Kind {
		case format.NodeLiteral:
			out = append(out, domain.Fragment{Text: n.Text})
		case format.NodeBlock:
			if r := resolve(n.Block); r.text != "" {
				out = append(out, r.fragment())
			}
		case format.NodeOptional:
			frags, _ := renderSection(n.Children, resolve)
			out = append(out, frags...)
		}
	}
	return out
}

// renderSection evaluates the body of an optional section and reports whether
// any block inside it resolved.
//
// Literal text is held back until the next block or nested section resolves.
// A non-empty one releases the held text before its own output; an empty one
// drops it. Text left over at the end is kept only if the last resolved child
// was non-empty. A section where nothing resolved prints nothing.
func renderSection(nodes []format.Node, resolve resolver) ([]domain.Fragment, bool) {
	var out, pending []domain.Fragment
	resolvedAny := false
	lastResolved := false

	for _, n := range nodes {
		var frags []domain.Fragment
		var ok bool

		switch n.Kind {
		case format.NodeLiteral:
			pending = append(pending, domain.Fragment{Text: n.Text})
			continue
		case format.NodeBlock:
			r := resolve(n.Block)
			ok = !r.empty
			if ok && r.text != "" {
				frags = []domain.Fragment{r.fragment()}
			}
		case format.NodeOptional:
			frags, ok = renderSection(n.Children, resolve)
		}

		if !ok {
			pending = pending[:0]
			lastResolved = false
			continue
		}

		out = append(out, pending...)
		out = append(out, frags...)
		pending = pending[:0]
		resolvedAny = true
		lastResolved = true
	}

	if !resolvedAny {
		return nil, false
	}
	if lastResolved {
		out = append(out, pending...)
	}
	return out, true
}

// joinText concatenates the text of all fragments
func joinText(frags []domain.Fragment) string {
	n := 0
	for _, f := range frags {
		n += len(f.Text)
	}
	buf := make([]byte, 0, n)
	for _, f := range frags {
		buf = append(buf, f.Text...)
	}
	return string(buf)
}
