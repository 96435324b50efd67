package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/oriaxos/oriax/internal/app"
	"github.com/oriaxos/oriax/internal/config"
)

// keyString is the binding form of a key press.
func keyString(msg tea.KeyPressMsg) string {
	k := msg.String()
	if k == " " {
		return "space"
	}
	return k
}

// HandleKeyPress routes a key. Escape cancels an active gesture, then
// overlays take keys. In app mode only the app mode bindings are
// intercepted; everything else goes to the app.
func HandleKeyPress(msg tea.KeyPressMsg, s *app.Shell) (*app.Shell, tea.Cmd) {
	key := keyString(msg)
	reg := s.KeybindRegistry

	if s.Pointer.Active() && key == "esc" {
		s.Pointer.Cancel()
		return s, nil
	}
	if s.ShowLogs {
		return handleLogViewerKey(key, s)
	}
	if s.ShowHelp {
		return handleHelpKey(key, s)
	}

	if s.Mode == app.AppMode {
		if action := reg.GetAppModeAction(key); action != "" {
			return GetDispatcher().Dispatch(action, msg, s)
		}
		if s.WM.FocusedID() == "" {
			s.ExitAppMode()
			return s, nil
		}
		s.SendKey(key)
		return s, nil
	}

	if action := reg.GetAction(key); action != "" {
		return GetDispatcher().Dispatch(action, msg, s)
	}
	return s, nil
}

func handleLogViewerKey(key string, s *app.Shell) (*app.Shell, tea.Cmd) {
	switch key {
	case "esc", "q":
		s.ShowLogs = false
	case "j", "down":
		s.ScrollLogs(1)
	case "k", "up":
		s.ScrollLogs(-1)
	case "g", "home":
		s.ScrollLogs(-len(s.LogMessages))
	case "G", "end":
		s.ScrollLogs(len(s.LogMessages))
	default:
		if s.KeybindRegistry.GetAction(key) == config.ActionToggleLogs {
			s.ShowLogs = false
		}
	}
	return s, nil
}

func handleHelpKey(key string, s *app.Shell) (*app.Shell, tea.Cmd) {
	switch key {
	case "esc", "q":
		s.ShowHelp = false
	case "j", "down":
		s.HelpScroll++
	case "k", "up":
		s.HelpScroll = max(s.HelpScroll-1, 0)
	default:
		if s.KeybindRegistry.GetAction(key) == config.ActionToggleHelp {
			s.ShowHelp = false
		}
	}
	return s, nil
}
