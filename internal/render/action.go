package render

import (
	"strings"

	"github.com/genricoloni/mprisline/internal/domain"
)

// Command is the client invocation a bar runs when an action fragment is clicked
type Command struct {
	Executable string
	Pipe       string
}

// line returns the shell command that sends cmd to the daemon
func (c Command) line(cmd domain.Command) string {
	parts := []string{c.Executable}
	if c.Pipe != "" {
		parts = append(parts, "--pipe", c.Pipe)
	}
	parts = append(parts, string(cmd))
	return strings.Join(parts, " ")
}

// encode wraps action fragments in left-click tags understood by polybar and lemonbar
func (c Command) encode(fragments []domain.Fragment) string {
	var sb strings.Builder
	for _, f := range fragments {
		if f.Action == "" || f.Text == "" {
			sb.WriteString(f.Text)
			continue
		}
		sb.WriteString("%{A1:")
		sb.WriteString(escapeColons(c.line(f.Action)))
		sb.WriteString(":}")
		sb.WriteString(f.Text)
		sb.WriteString("%{A}")
	}
	return sb.String()
}

// escapeColons protects ':' which terminates the command inside an action tag
func escapeColons(s string) string {
	return strings.ReplaceAll(s, ":", `\:`)
}
