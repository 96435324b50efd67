package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/oriaxos/oriax/internal/app"
	"github.com/oriaxos/oriax/internal/apps"
	"github.com/oriaxos/oriax/internal/config"
	"github.com/oriaxos/oriax/internal/geom"
	"github.com/oriaxos/oriax/internal/pointer"
)

// handleMouseClick maps a press to a window manager operation:
//
//   - taskbar: the click policy for the entry, or the launcher for the mode pill
//   - title bar buttons: minimize, maximize, close
//   - title bar: drag; border or corner: resize from that edge
//   - right button anywhere in a window: resize from the nearest corner
//   - content: focus
//
// A press while a gesture is active is ignored.
func handleMouseClick(msg tea.MouseClickMsg, s *app.Shell) (*app.Shell, tea.Cmd) {
	mouse := msg.Mouse()
	x, y := mouse.X, mouse.Y

	if s.Pointer.Active() {
		return s, nil
	}

	if y == config.TaskbarRow(s.Height) {
		if mouse.Button == tea.MouseLeft {
			clickTaskbar(s, x)
		}
		return s, nil
	}

	w, ok := s.WM.WindowAt(x, y)
	if !ok {
		return s, nil
	}
	p := geom.Pt(x, y)

	if mouse.Button == tea.MouseRight {
		s.Pointer.BeginResize(w.ID, pointer.QuadrantCorner(w.Geometry, p), p)
		return s, nil
	}
	if mouse.Button != tea.MouseLeft {
		return s, nil
	}

	hit := app.HitTest(w.Geometry, x, y)
	switch hit.Region {
	case app.RegionClose:
		s.WM.CloseWindow(w.ID)
	case app.RegionMaximize:
		s.WM.ToggleMaximize(w.ID, s.WorkArea())
	case app.RegionMinimize:
		s.WM.Minimize(w.ID)
	case app.RegionTitle:
		s.Pointer.BeginDrag(w.ID, p)
	case app.RegionBorder:
		s.Pointer.BeginResize(w.ID, hit.Edge, p)
	default:
		s.WM.FocusWindow(w.ID)
	}
	return s, nil
}

func clickTaskbar(s *app.Shell, x int) {
	item, ok := s.TaskbarItemAt(x)
	if !ok {
		return
	}
	if item.WindowID == "" {
		_, _ = s.OpenApp(apps.LauncherID, nil)
		return
	}
	s.TaskbarClick(item.WindowID)
}

func handleMouseMotion(msg tea.MouseMotionMsg, s *app.Shell) (*app.Shell, tea.Cmd) {
	if !s.Pointer.Active() {
		return s, nil
	}
	mouse := msg.Mouse()
	s.Pointer.Move(geom.Pt(mouse.X, mouse.Y))
	return s, nil
}

func handleMouseRelease(msg tea.MouseReleaseMsg, s *app.Shell) (*app.Shell, tea.Cmd) {
	if !s.Pointer.Active() {
		return s, nil
	}
	mouse := msg.Mouse()
	s.Pointer.Move(geom.Pt(mouse.X, mouse.Y))
	s.Pointer.End()
	return s, nil
}

// handleMouseWheel scrolls the overlays, or forwards up and down to the
// app under the pointer when it has focus.
func handleMouseWheel(msg tea.MouseWheelMsg, s *app.Shell) (*app.Shell, tea.Cmd) {
	mouse := msg.Mouse()
	delta := 0
	switch mouse.Button {
	case tea.MouseWheelUp:
		delta = -1
	case tea.MouseWheelDown:
		delta = 1
	default:
		return s, nil
	}

	switch {
	case s.ShowLogs:
		s.ScrollLogs(delta)
	case s.ShowHelp:
		s.HelpScroll = max(s.HelpScroll+delta, 0)
	default:
		w, ok := s.WM.WindowAt(mouse.X, mouse.Y)
		if ok && w.Focused {
			if delta < 0 {
				s.SendKey("up")
			} else {
				s.SendKey("down")
			}
		}
	}
	return s, nil
}
