package app

import (
	"fmt"
	"image/color"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/oriaxos/oriax/internal/config"
	"github.com/oriaxos/oriax/internal/theme"
	"github.com/oriaxos/oriax/internal/wm"
)

// GetCanvas composes windows, the taskbar and any overlays. Windows are
// layered by their manager z so the topmost one wins every overlap.
func (s *Shell) GetCanvas() *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas(s.Width, s.Height)
	var layers []*lipgloss.Layer

	if theme.IsEnabled() && s.Width > 0 && s.Height > 0 {
		desktop := lipgloss.NewStyle().Background(theme.DesktopBg()).
			Width(s.Width).Height(s.Height).Render("")
		layers = append(layers, lipgloss.NewLayer(desktop).X(0).Y(0).Z(0))
	}

	// Windows come sorted by z, so composing in order also stacks correctly.
	for _, w := range s.WM.Windows() {
		if !w.Visible() {
			continue
		}
		block := frame(w.Title, s.renderApp(w), w.Geometry.Width, w.Geometry.Height, s.borderColor(w))
		content, x, y := clip(block, w.Geometry.X, w.Geometry.Y, s.Width, s.Height)
		if content == "" {
			continue
		}
		layers = append(layers, lipgloss.NewLayer(content).X(x).Y(y).Z(w.Z).ID(w.ID))
	}

	if row := config.TaskbarRow(s.Height); row >= 0 {
		layers = append(layers, lipgloss.NewLayer(s.renderTaskbar()).X(0).Y(row).Z(config.ZIndexTaskbar))
	}
	layers = append(layers, s.renderOverlays()...)

	for _, l := range layers {
		canvas.Compose(l)
	}
	return canvas
}

func (s *Shell) borderColor(w wm.Window) color.Color {
	switch {
	case !w.Focused:
		return theme.BorderUnfocused()
	case s.Mode == AppMode:
		return theme.BorderFocusedApp()
	default:
		return theme.BorderFocused()
	}
}

// renderApp renders a window's app. A panicking app is marked failed and
// its window shows the error from then on.
func (s *Shell) renderApp(w wm.Window) (out string) {
	errStyle := lipgloss.NewStyle().Foreground(theme.AppError())
	if msg, failed := s.failures[w.ID]; failed {
		return errStyle.Render(msg)
	}
	a, ok := s.instances[w.ID]
	if !ok {
		return errStyle.Render(fmt.Sprintf("%s is not running", w.AppID))
	}
	defer func() {
		if r := recover(); r != nil {
			s.fail(w, "render", r)
			out = errStyle.Render(s.failures[w.ID])
		}
	}()
	return a.View(s.AppContext(w))
}

// View renders the whole screen.
func (s *Shell) View() tea.View {
	var view tea.View
	if s.quitting {
		return view
	}
	view.SetContent(lipgloss.Sprint(s.GetCanvas().Render()))
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	view.ReportFocus = true
	return view
}
