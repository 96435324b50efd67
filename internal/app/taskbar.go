package app

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/oriaxos/oriax/internal/config"
	"github.com/oriaxos/oriax/internal/theme"
	"github.com/oriaxos/oriax/internal/wm"
)

// TaskbarItem is a clickable span of the taskbar. WindowID is empty for
// the mode pill, which opens the launcher.
type TaskbarItem struct {
	WindowID string
	X0, X1   int // half-open column range
}

// taskbarEntry is a laid out item plus its rendered text.
type taskbarEntry struct {
	TaskbarItem
	text string
}

// layoutTaskbar places the mode pill and one entry per window in creation
// order. Entries that do not fit are dropped from the right.
func (s *Shell) layoutTaskbar() []taskbarEntry {
	pill := lipgloss.NewStyle().Bold(true).Foreground(theme.TaskbarBg())
	if s.Mode == AppMode {
		pill = pill.Background(theme.ModeApp())
	} else {
		pill = pill.Background(theme.ModeWindow())
	}
	label := config.ModeLabel(s.Mode == AppMode)
	entries := []taskbarEntry{{
		TaskbarItem: TaskbarItem{X0: 0, X1: ansi.StringWidth(label)},
		text:        pill.Render(label),
	}}

	limit := s.Width - s.clockWidth()
	sep := config.TaskbarSeparator()
	x := entries[0].X1
	for _, w := range s.WM.WindowsByCreation() {
		text := s.taskbarLabel(w)
		start := x + ansi.StringWidth(sep)
		end := start + ansi.StringWidth(text)
		if end > limit {
			break
		}
		entries = append(entries, taskbarEntry{
			TaskbarItem: TaskbarItem{WindowID: w.ID, X0: start, X1: end},
			text:        s.taskbarStyle(w).Render(text),
		})
		x = end
	}
	return entries
}

func (s *Shell) taskbarLabel(w wm.Window) string {
	icon := ""
	if m, err := s.Registry.Resolve(w.AppID); err == nil && m.Icon != "" {
		icon = m.Icon + " "
	}
	title := ansi.Truncate(w.Title, config.TaskbarItemMaxTitle, "…")
	if w.State == wm.Minimized {
		return "[" + icon + title + "]"
	}
	return icon + title
}

func (s *Shell) taskbarStyle(w wm.Window) lipgloss.Style {
	st := lipgloss.NewStyle().Background(theme.TaskbarBg()).Foreground(theme.TaskbarFg())
	switch {
	case w.Focused:
		return st.Foreground(theme.TaskbarFocused()).Bold(true)
	case w.State == wm.Minimized:
		return st.Foreground(theme.TaskbarMinimized()).Italic(true)
	}
	return st
}

func (s *Shell) clockText() string {
	if !config.ShowClock {
		return ""
	}
	text := s.Now.Format("15:04")
	if s.SessionName != "" {
		text = s.SessionName + " " + text
	}
	return " " + text + " "
}

func (s *Shell) clockWidth() int {
	return ansi.StringWidth(s.clockText())
}

// TaskbarItems returns the clickable spans of the taskbar.
func (s *Shell) TaskbarItems() []TaskbarItem {
	entries := s.layoutTaskbar()
	items := make([]TaskbarItem, len(entries))
	for i, e := range entries {
		items[i] = e.TaskbarItem
	}
	return items
}

// TaskbarItemAt returns the taskbar item under column x.
func (s *Shell) TaskbarItemAt(x int) (TaskbarItem, bool) {
	for _, it := range s.TaskbarItems() {
		if x >= it.X0 && x < it.X1 {
			return it, true
		}
	}
	return TaskbarItem{}, false
}

func (s *Shell) renderTaskbar() string {
	bg := lipgloss.NewStyle().Background(theme.TaskbarBg()).Foreground(theme.TaskbarFg())
	sep := bg.Render(config.TaskbarSeparator())

	var sb strings.Builder
	used := 0
	for i, e := range s.layoutTaskbar() {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(e.text)
		used = e.X1
	}
	clock := s.clockText()
	gap := max(s.Width-used-ansi.StringWidth(clock), 0)
	sb.WriteString(bg.Render(strings.Repeat(" ", gap)))
	sb.WriteString(bg.Render(clock))
	return ansi.Truncate(sb.String(), s.Width, "")
}
