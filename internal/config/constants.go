// Package config provides layout constants, keybindings and the user's
// TOML settings.
package config

import (
	"charm.land/lipgloss/v2"
)

// =============================================================================
// Window Defaults
// =============================================================================

const (
	// MinWindowWidth is the default width floor windows are clamped to.
	MinWindowWidth = 16

	// MinWindowHeight is the default height floor windows are clamped to.
	MinWindowHeight = 4

	// DefaultCascadeStep is the vertical offset between cascaded windows.
	DefaultCascadeStep = 1
)

// =============================================================================
// Refresh
// =============================================================================

const (
	// NormalFPS is the renderer frame rate cap.
	NormalFPS = 60

	// TickSeconds is how often ticker apps (clock, sysmon) are refreshed.
	TickSeconds = 1
)

// =============================================================================
// UI Layout Dimensions
// =============================================================================

const (
	// TaskbarHeight is the number of rows reserved for the taskbar.
	TaskbarHeight = 1

	// TaskbarItemMaxTitle is the longest title shown in a taskbar entry.
	TaskbarItemMaxTitle = 14

	// LogViewerWidth is the width of the log overlay.
	LogViewerWidth = 80

	// BorderWidth is the horizontal space taken by the left and right borders.
	BorderWidth = 2

	// BorderHeight is the vertical space taken by the title row and bottom border.
	BorderHeight = 2
)

// =============================================================================
// Limits
// =============================================================================

const (
	// MaxLogMessages is how many log lines the shell keeps for the overlay.
	MaxLogMessages = 100
)

// =============================================================================
// Z-Index Layers
// =============================================================================

// Windows use their own z values from the window manager. Chrome layers
// sit above any value the manager can reach in practice.
const (
	ZIndexTaskbar = 1 << 30
	ZIndexHelp    = ZIndexTaskbar + 1
	ZIndexLogs    = ZIndexTaskbar + 2
)

// =============================================================================
// Defaults
// =============================================================================

const (
	// DefaultSSHPort is the default SSH server port.
	DefaultSSHPort = "2222"

	// DefaultSSHHost is the default SSH server host.
	DefaultSSHHost = "localhost"

	// DefaultWebPort is the default port of the browser server.
	DefaultWebPort = "7681"

	// DefaultTerminalWidth and DefaultTerminalHeight are used until the
	// first window size message arrives.
	DefaultTerminalWidth  = 80
	DefaultTerminalHeight = 24
)

// =============================================================================
// Runtime Configuration
// =============================================================================

// UseASCIIOnly swaps icon glyphs for plain ASCII. Set via --ascii-only or
// appearance.ascii_only.
var UseASCIIOnly = false

// BorderStyle selects the window border. Set via --border-style or
// appearance.border_style.
var BorderStyle = "rounded"

// TaskbarPosition is top, bottom or hidden. Set via --taskbar-position or
// appearance.taskbar_position.
var TaskbarPosition = "bottom"

// HideWindowButtons removes the title bar buttons. Set via
// --hide-window-buttons or appearance.hide_window_buttons.
var HideWindowButtons = false

// ShowClock shows the clock at the right end of the taskbar.
var ShowClock = true

// =============================================================================
// Glyphs
// =============================================================================

const (
	buttonClose    = "×"
	buttonMaximize = "□"
	buttonMinimize = "_"
	modeWindow     = " WIN "
	modeApp        = " APP "
	taskbarSep     = " │ "

	buttonCloseASCII    = "x"
	buttonMaximizeASCII = "o"
	buttonMinimizeASCII = "_"
	taskbarSepASCII     = " | "
)

// ButtonClose returns the close button glyph.
func ButtonClose() string {
	if UseASCIIOnly {
		return buttonCloseASCII
	}
	return buttonClose
}

// ButtonMaximize returns the maximize button glyph.
func ButtonMaximize() string {
	if UseASCIIOnly {
		return buttonMaximizeASCII
	}
	return buttonMaximize
}

// ButtonMinimize returns the minimize button glyph.
func ButtonMinimize() string {
	if UseASCIIOnly {
		return buttonMinimizeASCII
	}
	return buttonMinimize
}

// ModeLabel returns the taskbar label for the window mode or app mode pill.
func ModeLabel(appMode bool) string {
	if appMode {
		return modeApp
	}
	return modeWindow
}

// TaskbarSeparator returns the separator between taskbar entries.
func TaskbarSeparator() string {
	if UseASCIIOnly {
		return taskbarSepASCII
	}
	return taskbarSep
}

// TitleButtonsWidth is the number of columns the three title bar buttons
// occupy, including the spaces between them.
const TitleButtonsWidth = 6

// GetBorderForStyle returns the lipgloss border for BorderStyle.
func GetBorderForStyle() lipgloss.Border {
	if UseASCIIOnly || BorderStyle == "ascii" {
		return lipgloss.ASCIIBorder()
	}
	switch BorderStyle {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	case "block":
		return lipgloss.BlockBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

// WorkAreaTop returns the first row windows may occupy.
func WorkAreaTop() int {
	if TaskbarPosition == "top" {
		return TaskbarHeight
	}
	return 0
}

// WorkAreaHeight returns the rows available to windows on a screen of the
// given height.
func WorkAreaHeight(screenHeight int) int {
	if TaskbarPosition == "hidden" {
		return screenHeight
	}
	return max(screenHeight-TaskbarHeight, 1)
}

// TaskbarRow returns the screen row the taskbar is drawn on, or -1 when hidden.
func TaskbarRow(screenHeight int) int {
	switch TaskbarPosition {
	case "hidden":
		return -1
	case "top":
		return 0
	default:
		return screenHeight - TaskbarHeight
	}
}
