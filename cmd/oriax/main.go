// Package main implements oriax, a desktop shell for the terminal: windows
// that open, focus, stack, move, resize, minimize and maximize, with a
// taskbar and a handful of built-in apps.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/oriaxos/oriax/internal/config"
	"github.com/oriaxos/oriax/internal/theme"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode         bool
	asciiOnly         bool
	themeName         string
	listThemes        bool
	previewTheme      string
	borderStyle       string
	taskbarPosition   string
	hideWindowButtons bool
	hideClock         bool
	scriptFile        string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "oriax",
		Short: "A desktop shell for the terminal",
		Long: `OriaX - a desktop shell for the terminal

Open apps in windows, then focus, stack, drag, resize, minimize and maximize
them with the keyboard or the mouse. A taskbar lists every open window.`,
		Example: `  # Run OriaX
  oriax

  # Run with debug logging
  oriax --debug

  # Run with a specific theme and ASCII chrome
  oriax --theme dracula --ascii-only

  # List all available themes
  oriax --list-themes

  # Open windows from a script on startup
  oriax --script layout.oxs

  # Serve OriaX over SSH or in the browser
  oriax ssh --port 2222
  oriax web --port 7681

  # List the installed apps
  oriax apps list`,
		Version: version,
		RunE: func(_ *cobra.Command, _ []string) error {
			if previewTheme != "" {
				return theme.Preview(os.Stdout, previewTheme)
			}
			if listThemes {
				if err := theme.Initialize("default"); err != nil {
					return fmt.Errorf("failed to initialize themes: %w", err)
				}
				for _, t := range theme.IDs() {
					fmt.Println(t)
				}
				return nil
			}
			return runLocal(scriptFile)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Write debug logs to the state directory")
	rootCmd.PersistentFlags().BoolVar(&asciiOnly, "ascii-only", false, "Use ASCII characters for window chrome")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme to use (e.g., dracula, nord, tokyonight). Leave empty to use standard terminal colors")
	rootCmd.PersistentFlags().BoolVar(&listThemes, "list-themes", false, "List all available themes and exit")
	rootCmd.PersistentFlags().StringVar(&previewTheme, "preview-theme", "", "Preview a theme's 16 ANSI colors")
	rootCmd.PersistentFlags().StringVar(&borderStyle, "border-style", "", "Window border style: rounded, normal, thick, double, hidden, block, ascii (default: from config or rounded)")
	rootCmd.PersistentFlags().StringVar(&taskbarPosition, "taskbar-position", "", "Taskbar position: bottom, top, hidden (default: from config or bottom)")
	rootCmd.PersistentFlags().BoolVar(&hideWindowButtons, "hide-window-buttons", false, "Hide window control buttons (minimize, maximize, close)")
	rootCmd.PersistentFlags().BoolVar(&hideClock, "hide-clock", false, "Hide the taskbar clock")
	rootCmd.Flags().StringVar(&scriptFile, "script", "", "Run a window script on startup")

	var sshHost, sshPort, sshKeyPath string
	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Serve OriaX over SSH",
		Long: `Start an SSH server that gives every connection its own desktop.

The host key is generated on first start unless --key-path names one.`,
		Example: `  oriax ssh
  oriax ssh --host 0.0.0.0 --port 2222
  oriax ssh --key-path /path/to/host_key`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSSHServer(cmd.Context(), sshHost, sshPort, sshKeyPath)
		},
	}
	sshCmd.Flags().StringVar(&sshHost, "host", config.DefaultSSHHost, "SSH server host")
	sshCmd.Flags().StringVar(&sshPort, "port", config.DefaultSSHPort, "SSH server port")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "Path to SSH host key (auto-generated if not specified)")

	var webHost, webPort string
	webCmd := &cobra.Command{
		Use:   "web",
		Short: "Serve OriaX in the browser",
		Long:  `Start a web server that gives every browser tab its own desktop.`,
		Example: `  oriax web
  oriax web --host 0.0.0.0 --port 8080`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWebServer(cmd.Context(), webHost, webPort)
		},
	}
	webCmd.Flags().StringVar(&webHost, "host", config.DefaultSSHHost, "Web server host")
	webCmd.Flags().StringVar(&webPort, "port", config.DefaultWebPort, "Web server port")

	appsCmd := &cobra.Command{
		Use:   "apps",
		Short: "Inspect installed apps",
	}
	appsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List installed apps",
		Long:  `Display every registered app with its default window size`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listApps()
		},
	}
	appsCmd.AddCommand(appsListCmd)

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage OriaX configuration",
		Long:  `Manage the OriaX configuration file and settings`,
	}
	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}
	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the OriaX configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi and nano in that order.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return editConfigFile()
		},
	}
	var resetYes bool
	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the OriaX configuration file to default settings

This overwrites your existing configuration after confirmation.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return resetConfigToDefaults(resetYes)
		},
	}
	configResetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Do not ask for confirmation")
	configValidateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration file",
		RunE: func(_ *cobra.Command, _ []string) error {
			return validateConfigFile()
		},
	}
	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd, configValidateCmd)

	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
	}
	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		Long:  `Display all configured keybindings in a formatted table`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listKeybindings()
		},
	}
	keybindsCmd.AddCommand(keybindsListCmd)

	scriptCmd := &cobra.Command{
		Use:   "script",
		Short: "Run and check window scripts",
		Long: `Window scripts drive the window manager line by line:

  Open notes text="hello"
  Move $1 10 4
  Expect focused $1

Scripts run against a live desktop so you can watch them, or are checked
without running.`,
	}
	scriptRunCmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Start OriaX and run a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runLocal(args[0])
		},
	}
	scriptValidateCmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a script without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return validateScriptFile(args[0])
		},
	}
	scriptCmd.AddCommand(scriptRunCmd, scriptValidateCmd)

	rootCmd.AddCommand(sshCmd, webCmd, appsCmd, configCmd, keybindsCmd, scriptCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
