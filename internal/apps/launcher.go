package apps

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/oriaxos/oriax/internal/registry"
	"github.com/oriaxos/oriax/internal/theme"
)

// Launcher lists every registered app and opens the selected one in a new
// window through the shell's open callback.
type Launcher struct {
	reg      *registry.Registry
	selected int
	status   string
}

// NewLauncher returns a launcher over reg.
func NewLauncher(reg *registry.Registry) *Launcher {
	return &Launcher{reg: reg}
}

func (l *Launcher) entries() []registry.Manifest {
	var out []registry.Manifest
	for _, m := range l.reg.Manifests() {
		if m.ID != LauncherID {
			out = append(out, m)
		}
	}
	return out
}

// Selected returns the highlighted app id.
func (l *Launcher) Selected() string {
	entries := l.entries()
	if len(entries) == 0 {
		return ""
	}
	return entries[min(l.selected, len(entries)-1)].ID
}

// HandleKey moves the selection and opens apps on enter.
func (l *Launcher) HandleKey(key string, ctx registry.Context) bool {
	entries := l.entries()
	switch key {
	case "up", "k":
		if l.selected > 0 {
			l.selected--
		}
	case "down", "j":
		if l.selected < len(entries)-1 {
			l.selected++
		}
	case "home", "g":
		l.selected = 0
	case "end", "G":
		l.selected = max(len(entries)-1, 0)
	case "enter", "space":
		id := l.Selected()
		if id == "" {
			return true
		}
		winID, err := ctx.OpenApp(id, nil)
		if err != nil {
			l.status = err.Error()
		} else {
			l.status = fmt.Sprintf("opened %s (%.8s)", id, winID)
		}
	default:
		return false
	}
	return true
}

// View renders the app list.
func (l *Launcher) View(ctx registry.Context) string {
	entries := l.entries()
	cursor := lipgloss.NewStyle().Foreground(theme.HelpKey()).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TaskbarMinimized())

	lines := make([]string, 0, len(entries)+2)
	for i, m := range entries {
		prefix := "  "
		title := m.Title
		if i == l.selected {
			prefix = cursor.Render("> ")
			if ctx.Focused {
				title = cursor.Render(title)
			}
		}
		lines = append(lines, fmt.Sprintf("%s%s %s  %s", prefix, m.Icon, title, dim.Render(m.Description)))
	}
	if len(entries) == 0 {
		lines = append(lines, dim.Render("no apps installed"))
	}
	if l.status != "" {
		lines = append(lines, "", dim.Render(l.status))
	}
	return fit(lines, ctx.Width, ctx.Height)
}
