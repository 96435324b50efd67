package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"charm.land/log/v2"
	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

const configRelPath = "oriax/config.toml"

// UserConfig is the user's config.toml.
type UserConfig struct {
	Appearance  AppearanceConfig     `toml:"appearance"`
	Windows     WindowsConfig        `toml:"windows"`
	Keybindings KeybindingsConfig    `toml:"keybindings"`
	Apps        map[string]AppConfig `toml:"apps"`
	Log         LogConfig            `toml:"log"`
}

// AppearanceConfig holds appearance settings.
type AppearanceConfig struct {
	BorderStyle       string `toml:"border_style"`        // rounded, normal, thick, double, hidden, block, ascii
	TaskbarPosition   string `toml:"taskbar_position"`    // bottom, top, hidden
	HideWindowButtons bool   `toml:"hide_window_buttons"` // hide minimize, maximize and close
	ASCIIOnly         bool   `toml:"ascii_only"`
	ShowClock         *bool  `toml:"show_clock"` // nil means true
	Theme             string `toml:"theme"`      // bubbletint id, empty for terminal colors
}

// WindowsConfig holds window manager settings.
type WindowsConfig struct {
	MinWidth    int `toml:"min_width"`
	MinHeight   int `toml:"min_height"`
	CascadeStep int `toml:"cascade_step"`
}

// KeybindingsConfig maps actions to keys. WindowMode bindings drive the
// window manager; AppMode bindings are checked before keys reach the app.
type KeybindingsConfig struct {
	WindowMode map[string][]string `toml:"window_mode"`
	AppMode    map[string][]string `toml:"app_mode"`
}

// AppConfig overrides a registered app's default title and size.
type AppConfig struct {
	Title  string `toml:"title,omitempty"`
	Width  int    `toml:"width,omitempty"`
	Height int    `toml:"height,omitempty"`
}

// LogConfig controls the debug log file.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
	File  string `toml:"file"`  // empty means $XDG_STATE_HOME/oriax/oriax.log
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Appearance: AppearanceConfig{
			BorderStyle:     "rounded",
			TaskbarPosition: "bottom",
		},
		Windows: WindowsConfig{
			MinWidth:    MinWindowWidth,
			MinHeight:   MinWindowHeight,
			CascadeStep: DefaultCascadeStep,
		},
		Keybindings: KeybindingsConfig{
			WindowMode: map[string][]string{
				ActionOpenLauncher:   {"space", "a"},
				ActionOpenNotes:      {"n"},
				ActionOpenClock:      {"c"},
				ActionOpenSysmon:     {"s"},
				ActionCloseWindow:    {"x", "w"},
				ActionMinimizeWindow: {"m"},
				ActionRestoreAll:     {"M"},
				ActionToggleMaximize: {"f", "z"},
				ActionNextWindow:     {"tab"},
				ActionPrevWindow:     {"shift+tab"},
				ActionMoveLeft:       {"h", "left"},
				ActionMoveDown:       {"j", "down"},
				ActionMoveUp:         {"k", "up"},
				ActionMoveRight:      {"l", "right"},
				ActionGrowWidth:      {"L", "shift+right"},
				ActionShrinkWidth:    {"H", "shift+left"},
				ActionGrowHeight:     {"J", "shift+down"},
				ActionShrinkHeight:   {"K", "shift+up"},
				ActionEnterAppMode:   {"i", "enter"},
				ActionToggleHelp:     {"?"},
				ActionToggleLogs:     {"ctrl+l"},
				ActionQuit:           {"q", "ctrl+c"},
			},
			AppMode: defaultAppModeKeybinds(),
		},
		Apps: map[string]AppConfig{},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// defaultAppModeKeybinds returns the platform's app mode bindings. macOS
// users think in terms of the Option key.
func defaultAppModeKeybinds() map[string][]string {
	if runtime.GOOS == "darwin" {
		return map[string][]string{
			ActionExitAppMode: {"opt+esc", "alt+esc"},
			ActionNextWindow:  {"opt+tab", "alt+tab"},
		}
	}
	return map[string][]string{
		ActionExitAppMode: {"alt+esc", "ctrl+]"},
		ActionNextWindow:  {"alt+n"},
	}
}

// GetConfigPath returns the config file path, existing or not.
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		return xdg.ConfigFile(configRelPath)
	}
	return path, nil
}

// LoadUserConfig loads the config from the XDG config directory, writing a
// commented default file first if there is none.
func LoadUserConfig() (*UserConfig, error) {
	path, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		path, err = xdg.ConfigFile(configRelPath)
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
		return WriteDefaultConfig(path)
	}
	return LoadUserConfigFrom(path)
}

// LoadUserConfigFrom parses, completes and validates the config at path.
func LoadUserConfigFrom(path string) (*UserConfig, error) {
	// #nosec G304 - reading the user's own config file is intentional
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaults := DefaultConfig()
	fillMissingAppearance(&cfg, defaults)
	fillMissingWindows(&cfg, defaults)
	fillMissingKeybinds(&cfg, defaults)
	if cfg.Apps == nil {
		cfg.Apps = map[string]AppConfig{}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}

	validation := ValidateConfig(&cfg)
	for _, warn := range validation.Warnings {
		log.Warn("config", "section", warn.Field, "key", warn.Key, "msg", warn.Message)
	}
	if validation.HasErrors() {
		for _, e := range validation.Errors {
			log.Error("config", "section", e.Field, "key", e.Key, "msg", e.Message)
		}
		return nil, fmt.Errorf("configuration has %d error(s), please fix and restart", len(validation.Errors))
	}
	return &cfg, nil
}

// WriteDefaultConfig writes the default config with a commented header to
// path and returns it.
func WriteDefaultConfig(path string) (*UserConfig, error) {
	cfg := DefaultConfig()

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# OriaX configuration\n")
	sb.WriteString("#\n")
	sb.WriteString("# Location: " + path + "\n")
	sb.WriteString("# List keybindings with: oriax keybinds list\n")
	sb.WriteString("#\n")
	sb.WriteString("# [appearance]\n")
	sb.WriteString("#   border_style: rounded, normal, thick, double, hidden, block, ascii\n")
	sb.WriteString("#   taskbar_position: bottom, top, hidden\n")
	sb.WriteString("#   theme: any id from `oriax --list-themes`, empty for terminal colors.\n")
	sb.WriteString("#          Custom themes go in ~/.config/oriax/themes/*.json\n")
	sb.WriteString("#\n")
	sb.WriteString("# [windows]\n")
	sb.WriteString("#   min_width, min_height: smallest size a window can be resized to\n")
	sb.WriteString("#   cascade_step: offset between newly opened windows\n")
	sb.WriteString("#\n")
	sb.WriteString("# [apps.<id>]\n")
	sb.WriteString("#   title, width, height: override an app's defaults, e.g.\n")
	sb.WriteString("#   [apps.notes]\n")
	sb.WriteString("#   width = 60\n\n")
	sb.Write(data)

	if err := os.WriteFile(path, []byte(sb.String()), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write config file: %w", err)
	}
	return cfg, nil
}

func fillMissingAppearance(cfg, defaults *UserConfig) {
	if cfg.Appearance.BorderStyle == "" {
		cfg.Appearance.BorderStyle = defaults.Appearance.BorderStyle
	}
	if cfg.Appearance.TaskbarPosition == "" {
		cfg.Appearance.TaskbarPosition = defaults.Appearance.TaskbarPosition
	}
}

func fillMissingWindows(cfg, defaults *UserConfig) {
	if cfg.Windows.MinWidth <= 0 {
		cfg.Windows.MinWidth = defaults.Windows.MinWidth
	}
	if cfg.Windows.MinHeight <= 0 {
		cfg.Windows.MinHeight = defaults.Windows.MinHeight
	}
	if cfg.Windows.CascadeStep < 0 {
		cfg.Windows.CascadeStep = defaults.Windows.CascadeStep
	}
}

func fillMissingKeybinds(cfg, defaults *UserConfig) {
	if cfg.Keybindings.WindowMode == nil {
		cfg.Keybindings.WindowMode = make(map[string][]string)
	}
	if cfg.Keybindings.AppMode == nil {
		cfg.Keybindings.AppMode = make(map[string][]string)
	}
	fillMapDefaults(cfg.Keybindings.WindowMode, defaults.Keybindings.WindowMode)
	fillMapDefaults(cfg.Keybindings.AppMode, defaults.Keybindings.AppMode)
}

func fillMapDefaults(target, defaults map[string][]string) {
	for k, v := range defaults {
		if _, exists := target[k]; !exists {
			target[k] = v
		}
	}
}
