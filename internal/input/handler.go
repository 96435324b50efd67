// Package input routes keyboard and mouse messages to the shell, the
// window manager and the pointer controller.
package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/oriaxos/oriax/internal/app"
)

// HandleInput is the shell's input handler.
func HandleInput(msg tea.Msg, s *app.Shell) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return HandleKeyPress(msg, s)
	case tea.MouseClickMsg:
		return handleMouseClick(msg, s)
	case tea.MouseMotionMsg:
		return handleMouseMotion(msg, s)
	case tea.MouseReleaseMsg:
		return handleMouseRelease(msg, s)
	case tea.MouseWheelMsg:
		return handleMouseWheel(msg, s)
	case tea.PasteMsg:
		if s.Mode == app.AppMode {
			for _, r := range msg.Content {
				s.SendKey(keyForRune(r))
			}
		}
		return s, nil
	}
	return s, nil
}

func keyForRune(r rune) string {
	switch r {
	case '\n', '\r':
		return "enter"
	case ' ':
		return "space"
	case '\t':
		return "tab"
	}
	return string(r)
}
