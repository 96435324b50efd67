// Package apps holds the apps that ship with the shell.
package apps

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/oriaxos/oriax/internal/config"
	"github.com/oriaxos/oriax/internal/geom"
	"github.com/oriaxos/oriax/internal/registry"
)

// Built-in app ids.
const (
	LauncherID = "launcher"
	NotesID    = "notes"
	ClockID    = "clock"
	SysmonID   = "sysmon"
	HelpID     = "help"
)

// RegisterBuiltins adds every built-in app to reg. keys feeds the help app
// and may be nil for the default bindings.
func RegisterBuiltins(reg *registry.Registry, keys *config.KeybindRegistry) error {
	if keys == nil {
		keys = config.NewKeybindRegistry(nil)
	}
	manifests := []registry.Manifest{
		{
			ID:             LauncherID,
			Title:          "Launcher",
			Description:    "Open any installed app",
			Icon:           ">",
			Geometry:       geom.Rect{Width: 36, Height: 12},
			SingleInstance: true,
			New:            func(registry.Props) registry.App { return NewLauncher(reg) },
		},
		{
			ID:          NotesID,
			Title:       "Notes",
			Description: "Scratch text buffer",
			Icon:        "#",
			Geometry:    geom.Rect{Width: 44, Height: 14},
			New:         func(p registry.Props) registry.App { return NewNotes(p) },
		},
		{
			ID:          ClockID,
			Title:       "Clock",
			Description: "Current time",
			Icon:        "@",
			Geometry:    geom.Rect{Width: 28, Height: 7},
			New:         func(p registry.Props) registry.App { return NewClock(p) },
		},
		{
			ID:             SysmonID,
			Title:          "System Monitor",
			Description:    "CPU and memory usage",
			Icon:           "%",
			Geometry:       geom.Rect{Width: 40, Height: 8},
			SingleInstance: true,
			New:            func(registry.Props) registry.App { return NewSysmon(nil) },
		},
		{
			ID:             HelpID,
			Title:          "Help",
			Description:    "Key and mouse bindings",
			Icon:           "?",
			Geometry:       geom.Rect{Width: 52, Height: 20},
			SingleInstance: true,
			New:            func(registry.Props) registry.App { return NewHelp(keys) },
		},
	}
	for _, m := range manifests {
		if err := reg.Register(m); err != nil {
			return err
		}
	}
	return nil
}

// ApplyConfig overrides titles and sizes from the [apps] table. Unknown app
// ids are returned so the caller can warn about them.
func ApplyConfig(reg *registry.Registry, apps map[string]config.AppConfig) []string {
	var unknown []string
	for id, c := range apps {
		if err := reg.Override(id, c.Title, c.Width, c.Height); err != nil {
			unknown = append(unknown, id)
		}
	}
	return unknown
}

// fit truncates every line to width and keeps at most height lines.
func fit(lines []string, width, height int) string {
	if height >= 0 && len(lines) > height {
		lines = lines[:height]
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		if width >= 0 && ansi.StringWidth(l) > width {
			l = ansi.Truncate(l, width, "…")
		}
		out[i] = l
	}
	return strings.Join(out, "\n")
}
