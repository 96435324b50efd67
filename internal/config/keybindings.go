package config

import (
	"slices"
	"strings"
)

// Window mode actions.
const (
	ActionOpenLauncher   = "open_launcher"
	ActionOpenNotes      = "open_notes"
	ActionOpenClock      = "open_clock"
	ActionOpenSysmon     = "open_sysmon"
	ActionCloseWindow    = "close_window"
	ActionMinimizeWindow = "minimize_window"
	ActionRestoreAll     = "restore_all"
	ActionToggleMaximize = "toggle_maximize"
	ActionNextWindow     = "next_window"
	ActionPrevWindow     = "prev_window"
	ActionMoveLeft       = "move_left"
	ActionMoveDown       = "move_down"
	ActionMoveUp         = "move_up"
	ActionMoveRight      = "move_right"
	ActionGrowWidth      = "grow_width"
	ActionShrinkWidth    = "shrink_width"
	ActionGrowHeight     = "grow_height"
	ActionShrinkHeight   = "shrink_height"
	ActionEnterAppMode   = "enter_app_mode"
	ActionToggleHelp     = "toggle_help"
	ActionToggleLogs     = "toggle_logs"
	ActionQuit           = "quit"
)

// App mode actions.
const (
	ActionExitAppMode = "exit_app_mode"
)

// actionDescriptions feeds the help overlay and `oriax keybinds list`.
var actionDescriptions = map[string]string{
	ActionOpenLauncher:   "Open launcher",
	ActionOpenNotes:      "Open notes",
	ActionOpenClock:      "Open clock",
	ActionOpenSysmon:     "Open system monitor",
	ActionCloseWindow:    "Close focused window",
	ActionMinimizeWindow: "Minimize focused window",
	ActionRestoreAll:     "Restore all windows",
	ActionToggleMaximize: "Maximize or restore",
	ActionNextWindow:     "Focus next window",
	ActionPrevWindow:     "Focus previous window",
	ActionMoveLeft:       "Move window left",
	ActionMoveDown:       "Move window down",
	ActionMoveUp:         "Move window up",
	ActionMoveRight:      "Move window right",
	ActionGrowWidth:      "Widen window",
	ActionShrinkWidth:    "Narrow window",
	ActionGrowHeight:     "Heighten window",
	ActionShrinkHeight:   "Shorten window",
	ActionEnterAppMode:   "Send keys to the app",
	ActionToggleHelp:     "Toggle help",
	ActionToggleLogs:     "Toggle log viewer",
	ActionQuit:           "Quit",
	ActionExitAppMode:    "Back to window mode",
}

// ActionDescription returns the human description of action.
func ActionDescription(action string) string {
	if d, ok := actionDescriptions[action]; ok {
		return d
	}
	return action
}

// IsKnownAction reports whether action is bindable.
func IsKnownAction(action string) bool {
	_, ok := actionDescriptions[action]
	return ok
}

// KeybindRegistry resolves pressed keys to actions for each input mode.
type KeybindRegistry struct {
	windowMode map[string]string
	appMode    map[string]string
	byAction   map[string][]string
	appActions map[string][]string
}

// NewKeybindRegistry builds the lookup tables from cfg. A nil cfg uses the
// defaults. When two actions claim one key the first in sorted action
// order wins; ValidateConfig reports the conflict.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	r := &KeybindRegistry{
		windowMode: make(map[string]string),
		appMode:    make(map[string]string),
		byAction:   make(map[string][]string),
		appActions: make(map[string][]string),
	}
	fill(r.windowMode, r.byAction, cfg.Keybindings.WindowMode)
	fill(r.appMode, r.appActions, cfg.Keybindings.AppMode)
	return r
}

func fill(byKey map[string]string, byAction map[string][]string, bindings map[string][]string) {
	actions := make([]string, 0, len(bindings))
	for action := range bindings {
		actions = append(actions, action)
	}
	slices.Sort(actions)
	for _, action := range actions {
		for _, key := range bindings[action] {
			key = NormalizeKey(key)
			if key == "" {
				continue
			}
			if _, taken := byKey[key]; !taken {
				byKey[key] = action
			}
			byAction[action] = append(byAction[action], key)
		}
	}
}

// GetAction returns the window mode action bound to key, or "".
func (r *KeybindRegistry) GetAction(key string) string {
	return r.windowMode[NormalizeKey(key)]
}

// GetAppModeAction returns the app mode action bound to key, or "".
func (r *KeybindRegistry) GetAppModeAction(key string) string {
	return r.appMode[NormalizeKey(key)]
}

// KeysFor returns the window mode keys bound to action.
func (r *KeybindRegistry) KeysFor(action string) []string {
	return r.byAction[action]
}

// GetKeysForDisplay formats the keys bound to action for the help screens.
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	keys := r.byAction[action]
	if len(keys) == 0 {
		keys = r.appActions[action]
	}
	if len(keys) == 0 {
		return ""
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = displayKey(k)
	}
	return strings.Join(out, ", ")
}

// NormalizeKey lowercases modifiers and maps the macOS "opt" spelling to
// "alt" so bindings compare equal to bubbletea key strings. Single letters
// keep their case since "M" and "m" are different bindings.
func NormalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	parts := strings.Split(key, "+")
	for i := range parts[:len(parts)-1] {
		p := strings.ToLower(parts[i])
		if p == "opt" || p == "option" {
			p = "alt"
		}
		parts[i] = p
	}
	last := parts[len(parts)-1]
	if len(last) > 1 {
		last = strings.ToLower(last)
	}
	parts[len(parts)-1] = last
	return strings.Join(parts, "+")
}

func displayKey(k string) string {
	switch k {
	case "space":
		return "Space"
	case "tab":
		return "Tab"
	case "enter":
		return "Enter"
	}
	parts := strings.Split(k, "+")
	for i, p := range parts {
		if len(p) > 1 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "+")
}

// Keybinding is one row of a help listing.
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection groups related keybindings.
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// GetKeybindings returns the help listing as configured in registry.
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	section := func(title string, actions ...string) KeybindingSection {
		s := KeybindingSection{Title: title}
		for _, a := range actions {
			addBinding(&s, registry, a)
		}
		return s
	}

	sections := []KeybindingSection{
		section("Apps",
			ActionOpenLauncher, ActionOpenNotes, ActionOpenClock, ActionOpenSysmon),
		section("Windows",
			ActionCloseWindow, ActionMinimizeWindow, ActionRestoreAll,
			ActionToggleMaximize, ActionNextWindow, ActionPrevWindow),
		section("Move and Resize",
			ActionMoveLeft, ActionMoveDown, ActionMoveUp, ActionMoveRight,
			ActionGrowWidth, ActionShrinkWidth, ActionGrowHeight, ActionShrinkHeight),
		section("Modes",
			ActionEnterAppMode, ActionExitAppMode),
		section("System",
			ActionToggleHelp, ActionToggleLogs, ActionQuit),
		{
			Title: "Mouse",
			Bindings: []Keybinding{
				{"Drag title", "Move window"},
				{"Drag edge", "Resize window"},
				{"Right-drag", "Resize from nearest corner"},
				{"Click taskbar", "Restore, focus or minimize"},
				{"Title buttons", "Minimize, maximize, close"},
			},
		},
	}

	out := sections[:0]
	for _, s := range sections {
		if len(s.Bindings) > 0 {
			out = append(out, s)
		}
	}
	return out
}

func addBinding(s *KeybindingSection, registry *KeybindRegistry, action string) {
	keys := registry.GetKeysForDisplay(action)
	if keys == "" {
		return
	}
	s.Bindings = append(s.Bindings, Keybinding{Key: keys, Description: ActionDescription(action)})
}
