// Package app is the desktop shell: it owns the window manager, hosts one
// app instance per window, and renders windows and the taskbar.
package app

import (
	"fmt"
	"io"
	"time"

	"charm.land/log/v2"
	"github.com/oriaxos/oriax/internal/config"
	"github.com/oriaxos/oriax/internal/geom"
	"github.com/oriaxos/oriax/internal/pointer"
	"github.com/oriaxos/oriax/internal/registry"
	"github.com/oriaxos/oriax/internal/script"
	"github.com/oriaxos/oriax/internal/wm"
)

// Mode decides where key presses go.
type Mode int

const (
	// WindowMode sends keys to the window manager bindings.
	WindowMode Mode = iota
	// AppMode sends keys to the focused window's app.
	AppMode
)

func (m Mode) String() string {
	if m == AppMode {
		return "app"
	}
	return "window"
}

// LogMessage is one line of the log overlay.
type LogMessage struct {
	Time    time.Time
	Level   string // DEBUG, INFO, WARN, ERROR
	Message string
}

// Shell is the bubbletea model of one desktop session.
type Shell struct {
	Width  int
	Height int
	Mode   Mode

	WM              *wm.Manager
	Pointer         *pointer.Controller
	Registry        *registry.Registry
	KeybindRegistry *config.KeybindRegistry

	ShowHelp        bool
	ShowLogs        bool
	LogMessages     []LogMessage
	LogScrollOffset int
	HelpScroll      int

	// SessionName labels remote sessions in the taskbar, e.g. the SSH user.
	SessionName string

	Now time.Time

	instances map[string]registry.App
	failures  map[string]string
	logger    *log.Logger
	startup   []script.Command
	quitting  bool
}

// Option configures a Shell.
type Option func(*Shell)

// WithKeybindings sets the key registry. The default uses DefaultConfig.
func WithKeybindings(k *config.KeybindRegistry) Option {
	return func(s *Shell) {
		if k != nil {
			s.KeybindRegistry = k
		}
	}
}

// WithLogger sets the structured logger. Log overlay lines are mirrored to it.
func WithLogger(l *log.Logger) Option {
	return func(s *Shell) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSize sets the screen size used until the first resize message.
func WithSize(width, height int) Option {
	return func(s *Shell) {
		s.Width, s.Height = width, height
	}
}

// WithStartupScript runs cmds against the window manager when the shell
// starts. Failures are logged and stop the script.
func WithStartupScript(cmds []script.Command) Option {
	return func(s *Shell) {
		s.startup = cmds
	}
}

// WithSessionName labels the session in the taskbar.
func WithSessionName(name string) Option {
	return func(s *Shell) {
		s.SessionName = name
	}
}

// New returns a shell over reg. Window manager options are applied after
// the shell's own defaults from the config globals.
func New(reg *registry.Registry, cfg *config.UserConfig, opts ...Option) *Shell {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := &Shell{
		Width:           config.DefaultTerminalWidth,
		Height:          config.DefaultTerminalHeight,
		Registry:        reg,
		KeybindRegistry: config.NewKeybindRegistry(cfg),
		Now:             time.Now(),
		instances:       make(map[string]registry.App),
		failures:        make(map[string]string),
		logger:          log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.WM = wm.New(reg,
		wm.WithMinSize(geom.Size{Width: cfg.Windows.MinWidth, Height: cfg.Windows.MinHeight}),
		wm.WithCascade(cfg.Windows.CascadeStep),
		wm.WithOrigin(geom.Pt(0, config.WorkAreaTop())),
		wm.WithLogger(s.logger),
	)
	s.Pointer = pointer.New(s.WM)
	s.WM.Subscribe(s.onWindowEvent)

	if len(s.startup) > 0 {
		s.runStartup()
	}
	return s
}

func (s *Shell) runStartup() {
	ex := script.NewExecutor(s.WM, s.Pointer,
		script.WithArea(s.WorkArea()),
		script.WithLogger(s.logger),
	)
	if err := ex.Run(s.startup); err != nil {
		s.LogError("startup script: %v", err)
		return
	}
	s.LogInfo("startup script ran %d commands", len(s.startup))
}

// onWindowEvent keeps app instances in step with the window manager.
func (s *Shell) onWindowEvent(e wm.Event) {
	w := e.Window
	switch e.Type {
	case wm.EventOpened:
		s.instantiate(w)
		s.LogInfo("opened %s %q (%s)", w.AppID, w.Title, w.ShortID())
	case wm.EventClosed:
		delete(s.instances, w.ID)
		delete(s.failures, w.ID)
		s.LogInfo("closed %q (%s)", w.Title, w.ShortID())
		if s.WM.Len() == 0 {
			s.Mode = WindowMode
		}
	case wm.EventMinimized, wm.EventRestored, wm.EventMaximized:
		s.LogDebug("%s %q", e.Type, w.Title)
	}
}

func (s *Shell) instantiate(w wm.Window) {
	manifest, err := s.Registry.Resolve(w.AppID)
	if err != nil {
		s.failures[w.ID] = err.Error()
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.fail(w, "start", r)
		}
	}()
	s.instances[w.ID] = manifest.New(w.Props)
}

// fail records a panicking app. The window stays open and shows the error
// until it is closed.
func (s *Shell) fail(w wm.Window, during string, r any) {
	msg := fmt.Sprintf("%s crashed during %s: %v", w.AppID, during, r)
	s.failures[w.ID] = msg
	delete(s.instances, w.ID)
	s.LogError("%s", msg)
}

// OpenApp opens an app in a new window. It is the callback apps receive in
// their render context.
func (s *Shell) OpenApp(appID string, props registry.Props) (string, error) {
	id, err := s.WM.OpenApp(appID, props, "")
	if err != nil {
		s.LogError("open %s: %v", appID, err)
		return "", err
	}
	return id, nil
}

// Instance returns the app hosted by a window.
func (s *Shell) Instance(windowID string) (registry.App, bool) {
	a, ok := s.instances[windowID]
	return a, ok
}

// Failure returns the crash message of a window whose app panicked.
func (s *Shell) Failure(windowID string) (string, bool) {
	msg, ok := s.failures[windowID]
	return msg, ok
}

// AppContext builds the context an app sees for a window.
func (s *Shell) AppContext(w wm.Window) registry.Context {
	return registry.Context{
		WindowID: w.ID,
		Props:    w.Props,
		Width:    max(w.Geometry.Width-config.BorderWidth, 0),
		Height:   max(w.Geometry.Height-config.BorderHeight, 0),
		Focused:  w.Focused,
		Open:     s.OpenApp,
	}
}

// SendKey hands key to the focused window's app. It reports whether the
// app consumed it.
func (s *Shell) SendKey(key string) (consumed bool) {
	w, ok := s.WM.Focused()
	if !ok {
		return false
	}
	a, ok := s.instances[w.ID]
	if !ok {
		return false
	}
	h, ok := a.(registry.KeyHandler)
	if !ok {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			s.fail(w, "key handling", r)
			consumed = true
		}
	}()
	return h.HandleKey(key, s.AppContext(w))
}

// Tick advances every app that implements registry.Ticker.
func (s *Shell) Tick(now time.Time) {
	s.Now = now
	for _, w := range s.WM.WindowsByCreation() {
		a, ok := s.instances[w.ID]
		if !ok {
			continue
		}
		t, ok := a.(registry.Ticker)
		if !ok {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					s.fail(w, "tick", r)
				}
			}()
			t.Tick(now)
		}()
	}
}

// WorkArea is the part of the screen windows live in.
func (s *Shell) WorkArea() geom.Rect {
	return geom.Rect{
		X:      0,
		Y:      config.WorkAreaTop(),
		Width:  max(s.Width, 1),
		Height: config.WorkAreaHeight(s.Height),
	}
}

// TaskbarClick applies the taskbar policy to a window: a minimized window
// is restored, the focused window is minimized, any other is focused.
func (s *Shell) TaskbarClick(windowID string) {
	w, ok := s.WM.Window(windowID)
	if !ok {
		return
	}
	switch {
	case w.State == wm.Minimized:
		s.WM.Restore(windowID)
	case w.Focused:
		s.WM.Minimize(windowID)
	default:
		s.WM.FocusWindow(windowID)
	}
}

// RestoreAll restores every minimized window in creation order.
func (s *Shell) RestoreAll() {
	for _, w := range s.WM.WindowsByCreation() {
		if w.State == wm.Minimized {
			s.WM.Restore(w.ID)
		}
	}
}

// ClampWindowsToView pulls windows whose title bar left the screen back
// inside after the terminal shrank. Maximized windows are refitted.
func (s *Shell) ClampWindowsToView() {
	area := s.WorkArea()
	s.WM.RefitMaximized(area)
	for _, w := range s.WM.WindowsByCreation() {
		if w.State != wm.Normal {
			continue
		}
		g := w.Geometry
		dx, dy := 0, 0
		if g.X >= area.X+area.Width {
			dx = max(area.X+area.Width-g.Width, area.X) - g.X
		}
		if g.X+g.Width <= area.X {
			dx = area.X - g.X
		}
		if g.Y >= area.Y+area.Height {
			dy = max(area.Y+area.Height-g.Height, area.Y) - g.Y
		}
		if g.Y < area.Y {
			dy = area.Y - g.Y
		}
		if dx != 0 || dy != 0 {
			s.WM.MoveWindow(w.ID, dx, dy)
		}
	}
}

// Log adds a line to the log overlay and mirrors it to the logger.
func (s *Shell) Log(level, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	atBottom := s.LogScrollOffset >= s.maxLogScroll()-1

	s.LogMessages = append(s.LogMessages, LogMessage{Time: time.Now(), Level: level, Message: message})
	if len(s.LogMessages) > config.MaxLogMessages {
		s.LogMessages = s.LogMessages[len(s.LogMessages)-config.MaxLogMessages:]
	}
	if atBottom {
		s.LogScrollOffset = s.maxLogScroll()
	}

	switch level {
	case "DEBUG":
		s.logger.Debug(message)
	case "WARN":
		s.logger.Warn(message)
	case "ERROR":
		s.logger.Error(message)
	default:
		s.logger.Info(message)
	}
}

func (s *Shell) LogDebug(format string, args ...any) { s.Log("DEBUG", format, args...) }
func (s *Shell) LogInfo(format string, args ...any)  { s.Log("INFO", format, args...) }
func (s *Shell) LogWarn(format string, args ...any)  { s.Log("WARN", format, args...) }
func (s *Shell) LogError(format string, args ...any) { s.Log("ERROR", format, args...) }

// logsPerPage is how many log lines fit in the overlay.
func (s *Shell) logsPerPage() int {
	return max(s.Height-8, 1)
}

func (s *Shell) maxLogScroll() int {
	return max(len(s.LogMessages)-s.logsPerPage(), 0)
}

// ScrollLogs moves the log overlay by delta lines.
func (s *Shell) ScrollLogs(delta int) {
	s.LogScrollOffset = min(max(s.LogScrollOffset+delta, 0), s.maxLogScroll())
}

// Quit marks the shell as finished; View renders nothing afterwards.
func (s *Shell) Quit() {
	s.quitting = true
}
