package config

import (
	"fmt"
	"slices"
)

// ValidationIssue is one problem found in a config file.
type ValidationIssue struct {
	Field   string
	Key     string
	Message string
}

// ValidationResult collects config errors and warnings. Errors stop startup.
type ValidationResult struct {
	Errors   []ValidationIssue
	Warnings []ValidationIssue
}

// HasErrors reports whether any errors were found.
func (v *ValidationResult) HasErrors() bool { return len(v.Errors) > 0 }

// HasWarnings reports whether any warnings were found.
func (v *ValidationResult) HasWarnings() bool { return len(v.Warnings) > 0 }

func (v *ValidationResult) errorf(field, key, format string, args ...any) {
	v.Errors = append(v.Errors, ValidationIssue{field, key, fmt.Sprintf(format, args...)})
}

func (v *ValidationResult) warnf(field, key, format string, args ...any) {
	v.Warnings = append(v.Warnings, ValidationIssue{field, key, fmt.Sprintf(format, args...)})
}

var (
	validBorderStyles     = []string{"rounded", "normal", "thick", "double", "hidden", "block", "ascii"}
	validTaskbarPositions = []string{"bottom", "top", "hidden"}
	validLogLevels        = []string{"debug", "info", "warn", "error"}
)

// ValidateConfig checks cfg after defaults were filled in.
func ValidateConfig(cfg *UserConfig) *ValidationResult {
	v := &ValidationResult{}

	if !slices.Contains(validBorderStyles, cfg.Appearance.BorderStyle) {
		v.errorf("appearance", "border_style", "unknown border style %q", cfg.Appearance.BorderStyle)
	}
	if !slices.Contains(validTaskbarPositions, cfg.Appearance.TaskbarPosition) {
		v.errorf("appearance", "taskbar_position", "must be one of bottom, top or hidden, got %q", cfg.Appearance.TaskbarPosition)
	}
	if cfg.Log.Level != "" && !slices.Contains(validLogLevels, cfg.Log.Level) {
		v.errorf("log", "level", "unknown level %q", cfg.Log.Level)
	}

	if cfg.Windows.MinWidth > 200 {
		v.warnf("windows", "min_width", "%d is larger than most terminals", cfg.Windows.MinWidth)
	}
	if cfg.Windows.MinHeight > 60 {
		v.warnf("windows", "min_height", "%d is larger than most terminals", cfg.Windows.MinHeight)
	}

	for id, app := range cfg.Apps {
		if app.Width < 0 || app.Height < 0 {
			v.errorf("apps."+id, "size", "width and height must not be negative")
		}
	}

	validateBindings(v, "keybindings.window_mode", cfg.Keybindings.WindowMode)
	validateBindings(v, "keybindings.app_mode", cfg.Keybindings.AppMode)
	return v
}

func validateBindings(v *ValidationResult, field string, bindings map[string][]string) {
	actions := make([]string, 0, len(bindings))
	for a := range bindings {
		actions = append(actions, a)
	}
	slices.Sort(actions)

	owner := make(map[string]string)
	for _, action := range actions {
		if !IsKnownAction(action) {
			v.warnf(field, action, "unknown action")
			continue
		}
		for _, key := range bindings[action] {
			k := NormalizeKey(key)
			if k == "" {
				v.warnf(field, action, "empty key")
				continue
			}
			if prev, ok := owner[k]; ok && prev != action {
				v.warnf(field, action, "key %q is already bound to %s", key, prev)
				continue
			}
			owner[k] = action
		}
	}
}
