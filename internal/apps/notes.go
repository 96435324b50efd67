package apps

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/oriaxos/oriax/internal/registry"
)

// Notes is a small append-only editor. The "text" prop seeds the buffer.
type Notes struct {
	lines []string
}

// NewNotes seeds a buffer from props.
func NewNotes(props registry.Props) *Notes {
	return &Notes{lines: strings.Split(props.String("text", ""), "\n")}
}

// Text returns the buffer contents.
func (n *Notes) Text() string {
	return strings.Join(n.lines, "\n")
}

// HandleKey edits the last line. Printable keys are inserted; everything
// else is left to the shell.
func (n *Notes) HandleKey(key string, _ registry.Context) bool {
	last := len(n.lines) - 1
	switch key {
	case "enter":
		n.lines = append(n.lines, "")
	case "backspace":
		if r := []rune(n.lines[last]); len(r) > 0 {
			n.lines[last] = string(r[:len(r)-1])
		} else if last > 0 {
			n.lines = n.lines[:last]
		}
	case "space":
		n.lines[last] += " "
	case "tab":
		n.lines[last] += "    "
	default:
		if ansi.StringWidth(key) != 1 || len([]rune(key)) != 1 {
			return false
		}
		n.lines[last] += key
	}
	return true
}

// View shows the tail of the buffer so the line being typed stays visible.
func (n *Notes) View(ctx registry.Context) string {
	lines := append([]string(nil), n.lines...)
	if ctx.Focused {
		lines[len(lines)-1] += "▏"
	}
	if ctx.Height > 0 && len(lines) > ctx.Height {
		lines = lines[len(lines)-ctx.Height:]
	}
	return fit(lines, ctx.Width, ctx.Height)
}
