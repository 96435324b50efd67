package app

// EnterAppMode sends keys to the focused app. Without a focused window the
// shell stays in window mode.
func (s *Shell) EnterAppMode() bool {
	if s.WM.FocusedID() == "" {
		return false
	}
	s.Mode = AppMode
	s.LogDebug("app mode")
	return true
}

// ExitAppMode returns keys to the window manager bindings.
func (s *Shell) ExitAppMode() {
	s.Mode = WindowMode
	s.LogDebug("window mode")
}
