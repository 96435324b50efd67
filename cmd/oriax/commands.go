package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/colorprofile"
	"github.com/oriaxos/oriax/internal/apps"
	"github.com/oriaxos/oriax/internal/config"
	"github.com/oriaxos/oriax/internal/registry"
	"github.com/oriaxos/oriax/internal/theme"
)

// stdout downsamples colors to what the terminal (or pipe) supports.
func stdout() io.Writer {
	return colorprofile.NewWriter(os.Stdout, os.Environ())
}

func newTable(headers ...string) *table.Table {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableHeader()).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	dimStyle := cellStyle.Foreground(theme.CLITableDim())

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.CLITableBorder())).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == len(headers)-1:
				return dimStyle
			default:
				return cellStyle
			}
		}).
		Headers(headers...)
}

func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func findEditor() (string, error) {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if e := os.Getenv(env); e != "" {
			return e, nil
		}
	}
	for _, e := range []string{"vim", "vi", "nano"} {
		if path, err := exec.LookPath(e); err == nil {
			return path, nil
		}
	}
	return "", errors.New("no editor found; set $EDITOR")
}

func editConfigFile() error {
	// Loading creates the file with defaults when it is missing.
	if _, err := config.LoadUserConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	editor, err := findEditor()
	if err != nil {
		return err
	}

	fields := strings.Fields(editor)
	cmd := exec.Command(fields[0], append(fields[1:], path)...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	return validateConfigFile()
}

func resetConfigToDefaults(yes bool) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	if !yes {
		fmt.Printf("This will overwrite %s with the defaults. Continue? [y/N] ", path)
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Println("Cancelled.")
			return nil
		}
	}
	if _, err := config.WriteDefaultConfig(path); err != nil {
		return err
	}
	fmt.Printf("Configuration reset: %s\n", path)
	return nil
}

func validateConfigFile() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	cfg, err := config.LoadUserConfigFrom(path)
	if err != nil {
		return err
	}
	result := config.ValidateConfig(cfg)
	for _, w := range result.Warnings {
		fmt.Printf("warning: %s %s: %s\n", w.Field, w.Key, w.Message)
	}
	fmt.Printf("%s is valid\n", path)
	return nil
}

func listKeybindings() error {
	keys := config.NewKeybindRegistry(loadUserConfig())

	t := newTable("Section", "Keys", "Action")
	for _, section := range config.GetKeybindings(keys) {
		for _, kb := range section.Bindings {
			t.Row(section.Title, kb.Key, kb.Description)
		}
	}
	_, err := fmt.Fprintln(stdout(), t.Render())
	return err
}

func listApps() error {
	userConfig := loadUserConfig()
	keys := config.NewKeybindRegistry(userConfig)
	reg := registry.New()
	if err := apps.RegisterBuiltins(reg, keys); err != nil {
		return err
	}
	apps.ApplyConfig(reg, userConfig.Apps)

	t := newTable("ID", "Title", "Size", "Single", "Description")
	for _, m := range reg.Manifests() {
		single := ""
		if m.SingleInstance {
			single = "yes"
		}
		t.Row(m.ID, m.Title, fmt.Sprintf("%dx%d", m.Geometry.Width, m.Geometry.Height), single, m.Description)
	}
	_, err := fmt.Fprintln(stdout(), t.Render())
	return err
}

func validateScriptFile(path string) error {
	cmds, err := loadScript(path)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d commands\n", path, len(cmds))
	return nil
}
