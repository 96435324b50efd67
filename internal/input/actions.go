package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/oriaxos/oriax/internal/app"
	"github.com/oriaxos/oriax/internal/apps"
	"github.com/oriaxos/oriax/internal/config"
)

// ActionHandler handles one bound action.
type ActionHandler func(msg tea.KeyPressMsg, s *app.Shell) (*app.Shell, tea.Cmd)

// ActionDispatcher maps action names to handlers.
type ActionDispatcher struct {
	handlers map[string]ActionHandler
}

// NewActionDispatcher returns a dispatcher with every built-in action.
func NewActionDispatcher() *ActionDispatcher {
	d := &ActionDispatcher{handlers: make(map[string]ActionHandler)}
	d.registerHandlers()
	return d
}

func (d *ActionDispatcher) registerHandlers() {
	d.Register(config.ActionOpenLauncher, makeOpenHandler(apps.LauncherID))
	d.Register(config.ActionOpenNotes, makeOpenHandler(apps.NotesID))
	d.Register(config.ActionOpenClock, makeOpenHandler(apps.ClockID))
	d.Register(config.ActionOpenSysmon, makeOpenHandler(apps.SysmonID))

	d.Register(config.ActionCloseWindow, handleCloseWindow)
	d.Register(config.ActionMinimizeWindow, handleMinimizeWindow)
	d.Register(config.ActionRestoreAll, handleRestoreAll)
	d.Register(config.ActionToggleMaximize, handleToggleMaximize)
	d.Register(config.ActionNextWindow, handleNextWindow)
	d.Register(config.ActionPrevWindow, handlePrevWindow)

	d.Register(config.ActionMoveLeft, makeMoveHandler(-2, 0))
	d.Register(config.ActionMoveRight, makeMoveHandler(2, 0))
	d.Register(config.ActionMoveUp, makeMoveHandler(0, -1))
	d.Register(config.ActionMoveDown, makeMoveHandler(0, 1))
	d.Register(config.ActionGrowWidth, makeResizeHandler(2, 0))
	d.Register(config.ActionShrinkWidth, makeResizeHandler(-2, 0))
	d.Register(config.ActionGrowHeight, makeResizeHandler(0, 1))
	d.Register(config.ActionShrinkHeight, makeResizeHandler(0, -1))

	d.Register(config.ActionEnterAppMode, handleEnterAppMode)
	d.Register(config.ActionExitAppMode, handleExitAppMode)
	d.Register(config.ActionToggleHelp, handleToggleHelp)
	d.Register(config.ActionToggleLogs, handleToggleLogs)
	d.Register(config.ActionQuit, handleQuit)
}

// Register adds or replaces a handler.
func (d *ActionDispatcher) Register(action string, handler ActionHandler) {
	d.handlers[action] = handler
}

// Dispatch runs the handler for action. Unknown actions do nothing.
func (d *ActionDispatcher) Dispatch(action string, msg tea.KeyPressMsg, s *app.Shell) (*app.Shell, tea.Cmd) {
	if handler, ok := d.handlers[action]; ok {
		return handler(msg, s)
	}
	return s, nil
}

// HasAction reports whether action has a handler.
func (d *ActionDispatcher) HasAction(action string) bool {
	_, ok := d.handlers[action]
	return ok
}

var globalDispatcher = NewActionDispatcher()

// GetDispatcher returns the shared dispatcher.
func GetDispatcher() *ActionDispatcher {
	return globalDispatcher
}

func makeOpenHandler(appID string) ActionHandler {
	return func(_ tea.KeyPressMsg, s *app.Shell) (*app.Shell, tea.Cmd) {
		_, _ = s.OpenApp(appID, nil)
		return s, nil
	}
}

func handleCloseWindow(_ tea.KeyPressMsg, s *app.Shell) (*app.Shell, tea.Cmd) {
	if id := s.WM.FocusedID(); id != "" {
		s.WM.CloseWindow(id)
	}
	return s, nil
}

func handleMinimizeWindow(_ tea.KeyPressMsg, s *app.Shell) (*app.Shell, tea.Cmd) {
	if id := s.WM.FocusedID(); id != "" {
		s.WM.Minimize(id)
	}
	return s, nil
}

func handleRestoreAll(_ tea.KeyPressMsg, s *app.Shell) (*app.Shell, tea.Cmd) {
	s.RestoreAll()
	return s, nil
}

func handleToggleMaximize(_ tea.KeyPressMsg, s *app.Shell) (*app.Shell, tea.Cmd) {
	if id := s.WM.FocusedID(); id != "" {
		s.WM.ToggleMaximize(id, s.WorkArea())
	}
	return s, nil
}

func handleNextWindow(_ tea.KeyPressMsg, s *app.Shell) (*app.Shell, tea.Cmd) {
	s.WM.CycleFocus(true)
	return s, nil
}

func handlePrevWindow(_ tea.KeyPressMsg, s *app.Shell) (*app.Shell, tea.Cmd) {
	s.WM.CycleFocus(false)
	return s, nil
}

func makeMoveHandler(dx, dy int) ActionHandler {
	return func(_ tea.KeyPressMsg, s *app.Shell) (*app.Shell, tea.Cmd) {
		if id := s.WM.FocusedID(); id != "" {
			s.WM.MoveWindow(id, dx, dy)
		}
		return s, nil
	}
}

func makeResizeHandler(dw, dh int) ActionHandler {
	return func(_ tea.KeyPressMsg, s *app.Shell) (*app.Shell, tea.Cmd) {
		w, ok := s.WM.Focused()
		if !ok {
			return s, nil
		}
		s.WM.ResizeWindow(w.ID, w.Geometry.Width+dw, w.Geometry.Height+dh)
		return s, nil
	}
}

func handleEnterAppMode(_ tea.KeyPressMsg, s *app.Shell) (*app.Shell, tea.Cmd) {
	s.EnterAppMode()
	return s, nil
}

func handleExitAppMode(_ tea.KeyPressMsg, s *app.Shell) (*app.Shell, tea.Cmd) {
	s.ExitAppMode()
	return s, nil
}

func handleToggleHelp(_ tea.KeyPressMsg, s *app.Shell) (*app.Shell, tea.Cmd) {
	s.ShowHelp = !s.ShowHelp
	s.HelpScroll = 0
	return s, nil
}

func handleToggleLogs(_ tea.KeyPressMsg, s *app.Shell) (*app.Shell, tea.Cmd) {
	s.ShowLogs = !s.ShowLogs
	if s.ShowLogs {
		s.ScrollLogs(len(s.LogMessages))
	}
	return s, nil
}

func handleQuit(_ tea.KeyPressMsg, s *app.Shell) (*app.Shell, tea.Cmd) {
	s.Quit()
	return s, tea.Quit
}
