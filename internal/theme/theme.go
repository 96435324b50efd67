// Package theme resolves the colors the shell paints with. With no theme
// selected it falls back to fixed colors adapted to the terminal's color
// profile.
package theme

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/log/v2"
	"github.com/charmbracelet/colorprofile"
	tint "github.com/lrstanley/bubbletint/v2"
)

var (
	enabled bool
	profile = colorprofile.TrueColor
)

// Initialize loads the built-in and custom themes and selects themeName.
// An empty name disables theming. Unknown names fall back to "default".
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	tint.NewDefaultRegistry()
	if dir, err := GetThemesDir(); err == nil {
		if _, err := LoadCustomThemes(dir); err != nil {
			log.Warn("custom themes not loaded", "dir", dir, "err", err)
		}
	}

	enabled = true
	if !tint.SetTintID(themeName) {
		log.Warn("unknown theme, using default", "theme", themeName)
		tint.SetTintID("default")
	}
	return nil
}

// SetProfile sets the color profile fallback colors are degraded to.
func SetProfile(p colorprofile.Profile) {
	profile = p
}

// DetectProfile sets the profile from the environment of the given output.
func DetectProfile(w io.Writer, environ []string) colorprofile.Profile {
	p := colorprofile.Detect(w, environ)
	SetProfile(p)
	return p
}

// IsEnabled reports whether a theme is active.
func IsEnabled() bool {
	return enabled
}

// Current returns the active theme or nil.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// IDs returns every registered theme id.
func IDs() []string {
	return tint.TintIDs()
}

// adaptive picks the fallback for the current profile.
func adaptive(ansi, ansi256, trueColor string) color.Color {
	return lipgloss.Complete(profile)(
		lipgloss.Color(ansi),
		lipgloss.Color(ansi256),
		lipgloss.Color(trueColor),
	)
}

// BorderUnfocused is the border of windows without focus.
func BorderUnfocused() color.Color {
	if t := Current(); t != nil {
		return t.BrightBlack
	}
	return adaptive("8", "245", "#8a8a9a")
}

// BorderFocused is the border of the focused window while keys drive the
// window manager.
func BorderFocused() color.Color {
	if t := Current(); t != nil {
		return t.BrightCyan
	}
	return adaptive("14", "123", "#afffff")
}

// BorderFocusedApp is the border of the focused window while keys go to its app.
func BorderFocusedApp() color.Color {
	if t := Current(); t != nil {
		return t.BrightGreen
	}
	return adaptive("10", "157", "#aaffaa")
}

// TitleFg colors window titles.
func TitleFg() color.Color {
	if t := Current(); t != nil {
		return t.Fg
	}
	return adaptive("15", "255", "#e5e5e5")
}

// ButtonClose, ButtonMaximize and ButtonMinimize color the title bar buttons.
func ButtonClose() color.Color {
	if t := Current(); t != nil {
		return t.Red
	}
	return adaptive("9", "203", "#ff5f5f")
}

func ButtonMaximize() color.Color {
	if t := Current(); t != nil {
		return t.Green
	}
	return adaptive("10", "114", "#87d787")
}

func ButtonMinimize() color.Color {
	if t := Current(); t != nil {
		return t.Yellow
	}
	return adaptive("11", "221", "#ffd75f")
}

// DesktopBg is the background behind all windows.
func DesktopBg() color.Color {
	if t := Current(); t != nil {
		return t.Bg
	}
	return lipgloss.NoColor{}
}

// TaskbarBg and TaskbarFg color the taskbar strip.
func TaskbarBg() color.Color {
	if t := Current(); t != nil {
		return t.Black
	}
	return adaptive("0", "235", "#1a1a2e")
}

func TaskbarFg() color.Color {
	if t := Current(); t != nil {
		return t.White
	}
	return adaptive("7", "250", "#a0a0b0")
}

// TaskbarFocused highlights the entry of the focused window.
func TaskbarFocused() color.Color {
	if t := Current(); t != nil {
		return t.BrightBlue
	}
	return adaptive("12", "63", "#4865f2")
}

// TaskbarMinimized dims the entries of minimized windows.
func TaskbarMinimized() color.Color {
	if t := Current(); t != nil {
		return t.BrightBlack
	}
	return adaptive("8", "240", "#585b70")
}

// ModeWindow and ModeApp color the mode pill in the taskbar.
func ModeWindow() color.Color {
	if t := Current(); t != nil {
		return t.BrightBlue
	}
	return adaptive("12", "69", "#5c5cff")
}

func ModeApp() color.Color {
	if t := Current(); t != nil {
		return t.BrightGreen
	}
	return adaptive("10", "78", "#4ade80")
}

// AppError colors the message shown in place of an app that failed to render.
func AppError() color.Color {
	if t := Current(); t != nil {
		return t.BrightRed
	}
	return adaptive("9", "196", "#ff4d4d")
}

// LogLevel returns the color for a log overlay level label.
func LogLevel(level string) color.Color {
	switch strings.ToUpper(level) {
	case "ERROR":
		return AppError()
	case "WARN":
		return ButtonMinimize()
	case "DEBUG":
		return TaskbarMinimized()
	default:
		return BorderFocused()
	}
}

// OverlayBg is the background of the help and log overlays.
func OverlayBg() color.Color {
	return TaskbarBg()
}

// HelpKey colors key badges in the help overlay and help app.
func HelpKey() color.Color {
	return adaptive("11", "220", "#ffd700")
}

// CLITableHeader, CLITableBorder and CLITableDim style command line tables.
func CLITableHeader() color.Color {
	return lipgloss.Color("14")
}

func CLITableBorder() color.Color {
	return lipgloss.Color("8")
}

func CLITableDim() color.Color {
	return lipgloss.Color("8")
}

// ColorToString formats a color as #rrggbb.
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// Preview writes a swatch of the named theme's palette to w.
func Preview(w io.Writer, themeName string) error {
	if err := Initialize(themeName); err != nil {
		return err
	}
	t := Current()
	if t == nil || t.ID != themeName {
		return fmt.Errorf("theme %q not found", themeName)
	}

	out := colorprofile.NewWriter(w, os.Environ())
	swatches := []struct {
		name string
		c    color.Color
	}{
		{"fg", t.Fg}, {"bg", t.Bg},
		{"black", t.Black}, {"red", t.Red}, {"green", t.Green}, {"yellow", t.Yellow},
		{"blue", t.Blue}, {"purple", t.Purple}, {"cyan", t.Cyan}, {"white", t.White},
		{"bright_black", t.BrightBlack}, {"bright_red", t.BrightRed},
		{"bright_green", t.BrightGreen}, {"bright_yellow", t.BrightYellow},
		{"bright_blue", t.BrightBlue}, {"bright_purple", t.BrightPurple},
		{"bright_cyan", t.BrightCyan}, {"bright_white", t.BrightWhite},
	}

	fmt.Fprintf(out, "%s (%s profile)\n", t.DisplayName, out.Profile)
	for _, s := range swatches {
		block := lipgloss.NewStyle().Background(s.c).Render("    ")
		fmt.Fprintf(out, "%s %-14s %s\n", block, s.name, ColorToString(s.c))
	}
	return nil
}
