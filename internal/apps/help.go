package apps

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/oriaxos/oriax/internal/config"
	"github.com/oriaxos/oriax/internal/registry"
	"github.com/oriaxos/oriax/internal/theme"
)

// Help lists the configured bindings and scrolls with j and k.
type Help struct {
	keys   *config.KeybindRegistry
	offset int
}

// NewHelp returns a help app over keys.
func NewHelp(keys *config.KeybindRegistry) *Help {
	return &Help{keys: keys}
}

// Lines renders the listing without window limits.
func (h *Help) Lines() []string {
	title := lipgloss.NewStyle().Bold(true).Underline(true)
	key := lipgloss.NewStyle().Foreground(theme.HelpKey())

	var lines []string
	for i, s := range config.GetKeybindings(h.keys) {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, title.Render(s.Title))
		for _, b := range s.Bindings {
			lines = append(lines, fmt.Sprintf("  %s  %s", key.Render(fmt.Sprintf("%-16s", b.Key)), b.Description))
		}
	}
	return lines
}

// HandleKey scrolls.
func (h *Help) HandleKey(k string, ctx registry.Context) bool {
	switch k {
	case "down", "j":
		h.offset++
	case "up", "k":
		h.offset--
	case "home", "g":
		h.offset = 0
	default:
		return false
	}
	h.clamp(len(h.Lines()), ctx.Height)
	return true
}

func (h *Help) clamp(total, height int) {
	h.offset = min(h.offset, max(total-height, 0))
	h.offset = max(h.offset, 0)
}

// View renders the visible part of the listing.
func (h *Help) View(ctx registry.Context) string {
	lines := h.Lines()
	h.clamp(len(lines), ctx.Height)
	return fit(lines[h.offset:], ctx.Width, ctx.Height)
}
