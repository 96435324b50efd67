// Package oriax provides the OriaX desktop shell as an embeddable Bubble
// Tea model: a window manager with a taskbar, mouse dragging and resizing,
// and a set of built-in apps.
//
// # Basic Usage
//
//	model, err := oriax.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	p := tea.NewProgram(model, oriax.ProgramOptions()...)
//	if _, err := p.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// # Custom Configuration
//
//	model, err := oriax.New(
//		oriax.WithTheme("dracula"),
//		oriax.WithBorderStyle("ascii"),
//		oriax.WithApp(registry.Manifest{ID: "hello", ...}),
//	)
//
// Appearance (theme, border style, taskbar placement) is process wide. Apply
// it once with Setup before building shells; New never changes it, so shells
// for concurrent sessions can be built from any goroutine.
//
//	oriax.Setup(oriax.WithTheme("nord"))
//
// # Using with sip (Web Terminal)
//
//	oriax.Setup()
//	server := sip.NewServer(sip.DefaultConfig())
//	server.Serve(ctx, func(sess sip.Session) (tea.Model, []tea.ProgramOption) {
//		pty := sess.Pty()
//		m, _ := oriax.New(oriax.WithSize(pty.Width, pty.Height))
//		return m, oriax.ProgramOptions()
//	})
package oriax

import (
	"fmt"
	"sync"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/oriaxos/oriax/internal/app"
	"github.com/oriaxos/oriax/internal/apps"
	"github.com/oriaxos/oriax/internal/config"
	"github.com/oriaxos/oriax/internal/input"
	"github.com/oriaxos/oriax/internal/registry"
	"github.com/oriaxos/oriax/internal/script"
)

// Model is the shell model. It implements tea.Model.
type Model = app.Shell

// Mode is the input mode of the shell.
type Mode = app.Mode

const (
	// WindowMode routes keys to window manager bindings.
	WindowMode = app.WindowMode
	// AppMode sends keys to the focused app.
	AppMode = app.AppMode
)

// Options configures a shell.
type Options struct {
	// Theme is a bubbletint theme id. Empty keeps the terminal's colors.
	Theme string

	// ASCIIOnly draws chrome without box drawing or symbol glyphs.
	ASCIIOnly bool

	// BorderStyle is one of "rounded", "normal", "thick", "double",
	// "hidden", "block" or "ascii".
	BorderStyle string

	// TaskbarPosition is "bottom", "top" or "hidden".
	TaskbarPosition string

	HideWindowButtons bool
	HideClock         bool

	// Width and Height are the initial screen size; zero keeps the default
	// until the first resize message.
	Width  int
	Height int

	// SessionName labels the taskbar clock, e.g. with the SSH user.
	SessionName string

	// UserConfig replaces the config file. Nil loads it from disk.
	UserConfig *config.UserConfig

	// Apps are registered next to the built-ins.
	Apps []registry.Manifest

	// Script runs against the window manager once the shell is built.
	Script []script.Command

	Logger *log.Logger
}

// Option is a functional option.
type Option func(*Options)

// WithTheme sets the color theme.
func WithTheme(name string) Option {
	return func(o *Options) {
		o.Theme = name
	}
}

// WithASCIIOnly enables ASCII-only chrome.
func WithASCIIOnly(enabled bool) Option {
	return func(o *Options) {
		o.ASCIIOnly = enabled
	}
}

// WithBorderStyle sets the window border style.
func WithBorderStyle(style string) Option {
	return func(o *Options) {
		o.BorderStyle = style
	}
}

// WithTaskbarPosition places the taskbar.
func WithTaskbarPosition(position string) Option {
	return func(o *Options) {
		o.TaskbarPosition = position
	}
}

// WithHideWindowButtons hides the title bar buttons.
func WithHideWindowButtons(hide bool) Option {
	return func(o *Options) {
		o.HideWindowButtons = hide
	}
}

// WithHideClock hides the taskbar clock.
func WithHideClock(hide bool) Option {
	return func(o *Options) {
		o.HideClock = hide
	}
}

// WithSize sets the initial size.
func WithSize(width, height int) Option {
	return func(o *Options) {
		o.Width = width
		o.Height = height
	}
}

// WithSessionName labels the session in the taskbar.
func WithSessionName(name string) Option {
	return func(o *Options) {
		o.SessionName = name
	}
}

// WithUserConfig sets the user configuration.
func WithUserConfig(cfg *config.UserConfig) Option {
	return func(o *Options) {
		o.UserConfig = cfg
	}
}

// WithApp registers an extra app.
func WithApp(m registry.Manifest) Option {
	return func(o *Options) {
		o.Apps = append(o.Apps, m)
	}
}

// WithScript runs cmds when the shell starts.
func WithScript(cmds []script.Command) Option {
	return func(o *Options) {
		o.Script = cmds
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

var installInput sync.Once

func collect(opts []Option) Options {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

func (o *Options) userConfig() *config.UserConfig {
	if o.UserConfig != nil {
		return o.UserConfig
	}
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		log.Warn("using default config", "err", err)
		return config.DefaultConfig()
	}
	return userConfig
}

// Setup applies the appearance options and the user config's appearance
// to the whole process. Call it once, before any shell runs.
func Setup(opts ...Option) {
	options := collect(opts)
	installInput.Do(func() { app.SetInputHandler(input.HandleInput) })

	config.ApplyOverrides(config.Overrides{
		ASCIIOnly:         options.ASCIIOnly,
		BorderStyle:       options.BorderStyle,
		TaskbarPosition:   options.TaskbarPosition,
		HideWindowButtons: options.HideWindowButtons,
		HideClock:         options.HideClock,
		ThemeName:         options.Theme,
	}, options.userConfig())
}

// New builds a shell. It fails when an extra app clashes with a built-in.
// Appearance options are ignored here; see Setup.
func New(opts ...Option) (*Model, error) {
	options := collect(opts)
	installInput.Do(func() { app.SetInputHandler(input.HandleInput) })
	userConfig := options.userConfig()

	keys := config.NewKeybindRegistry(userConfig)
	reg := registry.New()
	if err := apps.RegisterBuiltins(reg, keys); err != nil {
		return nil, err
	}
	for _, m := range options.Apps {
		if err := reg.Register(m); err != nil {
			return nil, fmt.Errorf("register %s: %w", m.ID, err)
		}
	}
	for _, id := range apps.ApplyConfig(reg, userConfig.Apps) {
		log.Warn("config names an unknown app", "app", id)
	}

	shellOpts := []app.Option{
		app.WithKeybindings(keys),
		app.WithLogger(options.Logger),
		app.WithSessionName(options.SessionName),
		app.WithStartupScript(options.Script),
	}
	if options.Width > 0 && options.Height > 0 {
		shellOpts = append(shellOpts, app.WithSize(options.Width, options.Height))
	}
	return app.New(reg, userConfig, shellOpts...), nil
}

// ProgramOptions returns the tea.ProgramOption values the shell runs best with.
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(FilterMouseMotion),
	}
}

// FilterMouseMotion drops mouse motion unless a drag or resize is active.
//
//	p := tea.NewProgram(model, tea.WithFilter(oriax.FilterMouseMotion))
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	s, ok := model.(*Model)
	if !ok {
		return msg
	}
	if s.Pointer.Active() {
		return msg
	}
	return nil
}
