package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/adrg/xdg"
	"github.com/oriaxos/oriax/internal/config"
	"github.com/oriaxos/oriax/internal/script"
	"github.com/oriaxos/oriax/internal/server"
	"github.com/oriaxos/oriax/pkg/oriax"
	"golang.org/x/term"
)

var errNoTTY = errors.New("oriax needs an interactive terminal; try `oriax ssh` or `oriax web` to serve it instead")

// newLogger returns the debug logger. Without --debug logs are discarded so
// they never draw over the desktop.
func newLogger() (*log.Logger, io.Closer, error) {
	if !debugMode {
		return log.New(io.Discard), io.NopCloser(nil), nil
	}
	path, err := xdg.StateFile("oriax/oriax.log")
	if err != nil {
		return nil, nil, fmt.Errorf("log path: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		Prefix:          "oriax",
		Level:           log.DebugLevel,
		ReportTimestamp: true,
	})
	return logger, f, nil
}

func loadUserConfig() *config.UserConfig {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		log.Warn("failed to load config, using defaults", "err", err)
		return config.DefaultConfig()
	}
	return userConfig
}

// shellOptions are the flag-driven options shared by local and remote shells.
func shellOptions(userConfig *config.UserConfig, logger *log.Logger) []oriax.Option {
	return []oriax.Option{
		oriax.WithUserConfig(userConfig),
		oriax.WithLogger(logger),
		oriax.WithTheme(themeName),
		oriax.WithASCIIOnly(asciiOnly),
		oriax.WithBorderStyle(borderStyle),
		oriax.WithTaskbarPosition(taskbarPosition),
		oriax.WithHideWindowButtons(hideWindowButtons),
		oriax.WithHideClock(hideClock),
	}
}

func loadScript(path string) ([]script.Command, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	cmds, err := script.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cmds, nil
}

func runLocal(scriptPath string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTTY
	}

	logger, closer, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	userConfig := loadUserConfig()
	opts := shellOptions(userConfig, logger)
	if scriptPath != "" {
		cmds, err := loadScript(scriptPath)
		if err != nil {
			return err
		}
		opts = append(opts, oriax.WithScript(cmds))
	}
	if debugMode {
		configPath, _ := config.GetConfigPath()
		logger.Debug("starting", "version", version, "config", configPath)
	}

	oriax.Setup(opts...)
	model, err := oriax.New(opts...)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, append(oriax.ProgramOptions(), tea.WithoutSignalHandler())...)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		if _, ok := <-sigChan; ok {
			p.Send(tea.QuitMsg{})
		}
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

// remoteFactory applies the shared appearance once, then builds one shell per
// remote session. Sessions run concurrently, so the factory must not touch
// process state.
func remoteFactory(userConfig *config.UserConfig, logger *log.Logger) server.ModelFactory {
	oriax.Setup(shellOptions(userConfig, logger)...)
	return func(s server.Session) (tea.Model, []tea.ProgramOption, error) {
		opts := append(shellOptions(userConfig, logger),
			oriax.WithSize(s.Width, s.Height),
			oriax.WithSessionName(s.User),
		)
		m, err := oriax.New(opts...)
		if err != nil {
			return nil, nil, err
		}
		return m, oriax.ProgramOptions(), nil
	}
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func runSSHServer(parent context.Context, host, port, keyPath string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "oriax", ReportTimestamp: true})
	if debugMode {
		logger.SetLevel(log.DebugLevel)
	}
	ctx, cancel := signalContext(parent)
	defer cancel()

	cfg := &server.SSHServerConfig{
		Host:     host,
		Port:     port,
		KeyPath:  keyPath,
		Version:  version,
		NewModel: remoteFactory(loadUserConfig(), logger),
		Logger:   logger,
	}
	if err := server.StartSSHServer(ctx, cfg); err != nil {
		return fmt.Errorf("SSH server error: %w", err)
	}
	return nil
}

func runWebServer(parent context.Context, host, port string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "oriax", ReportTimestamp: true})
	if debugMode {
		logger.SetLevel(log.DebugLevel)
	}
	ctx, cancel := signalContext(parent)
	defer cancel()

	cfg := &server.WebServerConfig{
		Host:     host,
		Port:     port,
		NewModel: remoteFactory(loadUserConfig(), logger),
		Logger:   logger,
	}
	if err := server.StartWebServer(ctx, cfg); err != nil {
		return fmt.Errorf("web server error: %w", err)
	}
	return nil
}
