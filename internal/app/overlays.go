package app

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/oriaxos/oriax/internal/config"
	"github.com/oriaxos/oriax/internal/theme"
)

func (s *Shell) renderOverlays() []*lipgloss.Layer {
	var layers []*lipgloss.Layer
	if s.ShowHelp {
		layers = append(layers, s.centered(s.renderHelp(), config.ZIndexHelp))
	}
	if s.ShowLogs {
		layers = append(layers, s.centered(s.renderLogs(), config.ZIndexLogs))
	}
	return layers
}

func (s *Shell) centered(content string, z int) *lipgloss.Layer {
	x := max((s.Width-lipgloss.Width(content))/2, 0)
	y := max((s.Height-lipgloss.Height(content))/2, 0)
	return lipgloss.NewLayer(content).X(x).Y(y).Z(z)
}

func overlayBox() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(config.GetBorderForStyle()).
		BorderForeground(theme.BorderFocused()).
		Background(theme.OverlayBg()).
		Padding(0, 1)
}

// HelpLines returns the rows of the help overlay.
func (s *Shell) HelpLines() []string {
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.BorderFocused())
	key := lipgloss.NewStyle().Foreground(theme.HelpKey())

	var lines []string
	for i, sec := range config.GetKeybindings(s.KeybindRegistry) {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, title.Render(sec.Title))
		for _, b := range sec.Bindings {
			lines = append(lines, key.Render(fmt.Sprintf("%-18s", b.Key))+" "+b.Description)
		}
	}
	return lines
}

func (s *Shell) renderHelp() string {
	lines := s.HelpLines()
	visible := max(s.Height-6, 1)
	s.HelpScroll = min(max(s.HelpScroll, 0), max(len(lines)-visible, 0))
	end := min(s.HelpScroll+visible, len(lines))
	body := strings.Join(lines[s.HelpScroll:end], "\n")

	hint := lipgloss.NewStyle().Foreground(theme.TaskbarMinimized()).
		Render("j/k scroll · ? or esc closes")
	return overlayBox().Render(body + "\n\n" + hint)
}

func (s *Shell) renderLogs() string {
	width := min(config.LogViewerWidth, max(s.Width-4, 20))
	perPage := s.logsPerPage()
	s.LogScrollOffset = min(max(s.LogScrollOffset, 0), s.maxLogScroll())
	end := min(s.LogScrollOffset+perPage, len(s.LogMessages))

	lines := []string{lipgloss.NewStyle().Bold(true).Render(
		fmt.Sprintf("Logs (%d)", len(s.LogMessages)))}
	for _, m := range s.LogMessages[s.LogScrollOffset:end] {
		level := lipgloss.NewStyle().Foreground(theme.LogLevel(m.Level)).Render(fmt.Sprintf("%-5s", m.Level))
		line := fmt.Sprintf("%s %s %s", m.Time.Format("15:04:05"), level, m.Message)
		lines = append(lines, ansi.Truncate(line, width, "…"))
	}
	if len(s.LogMessages) == 0 {
		lines = append(lines, "no messages")
	}
	return overlayBox().Width(width + 4).Render(strings.Join(lines, "\n"))
}
