package config

import (
	"charm.land/log/v2"
	"github.com/oriaxos/oriax/internal/theme"
)

// Overrides holds command line flag values. Zero values mean the flag was
// not set and the user config decides.
type Overrides struct {
	ASCIIOnly         bool
	BorderStyle       string
	TaskbarPosition   string
	HideWindowButtons bool
	HideClock         bool
	ThemeName         string
}

// ApplyOverrides sets the runtime globals from flags, falling back to
// userConfig. A nil userConfig applies only the flags that were set.
func ApplyOverrides(overrides Overrides, userConfig *UserConfig) {
	if overrides.ASCIIOnly || (userConfig != nil && userConfig.Appearance.ASCIIOnly) {
		UseASCIIOnly = true
	}

	if overrides.BorderStyle != "" {
		BorderStyle = overrides.BorderStyle
	} else if userConfig != nil && userConfig.Appearance.BorderStyle != "" {
		BorderStyle = userConfig.Appearance.BorderStyle
	}

	if overrides.TaskbarPosition != "" {
		TaskbarPosition = overrides.TaskbarPosition
	} else if userConfig != nil && userConfig.Appearance.TaskbarPosition != "" {
		TaskbarPosition = userConfig.Appearance.TaskbarPosition
	}

	HideWindowButtons = overrides.HideWindowButtons ||
		(userConfig != nil && userConfig.Appearance.HideWindowButtons)

	ShowClock = !overrides.HideClock
	if ShowClock && userConfig != nil && userConfig.Appearance.ShowClock != nil {
		ShowClock = *userConfig.Appearance.ShowClock
	}

	themeName := overrides.ThemeName
	if themeName == "" && userConfig != nil {
		themeName = userConfig.Appearance.Theme
	}
	if themeName != "" {
		if err := theme.Initialize(themeName); err != nil {
			log.Warn("failed to load theme", "theme", themeName, "err", err)
		}
	}
}
