package server

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/sip"
	"github.com/oriaxos/oriax/internal/config"
)

// WebServerConfig configures StartWebServer.
type WebServerConfig struct {
	Host string
	Port string

	NewModel ModelFactory
	Logger   *log.Logger
}

// sipConfig maps the web settings onto sip's defaults.
func (c *WebServerConfig) sipConfig() sip.Config {
	sc := sip.DefaultConfig()
	sc.Host = config.DefaultSSHHost
	sc.Port = config.DefaultWebPort
	if c.Host != "" {
		sc.Host = c.Host
	}
	if c.Port != "" {
		sc.Port = c.Port
	}
	return sc
}

// StartWebServer serves shells to browsers until ctx is done.
func StartWebServer(ctx context.Context, cfg *WebServerConfig) error {
	if cfg.NewModel == nil {
		return ErrNoFactory
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	sc := cfg.sipConfig()
	logger.Info("web server listening", "host", sc.Host, "port", sc.Port)

	srv := sip.NewServer(sc)
	err := srv.Serve(ctx, func(sess sip.Session) (tea.Model, []tea.ProgramOption) {
		pty := sess.Pty()
		s := Session{User: "web", Width: pty.Width, Height: pty.Height}
		m, opts, err := newModel(cfg.NewModel, s)
		if err != nil {
			logger.Error("web session rejected", "err", err)
			return nil, nil
		}
		logger.Info("web session started", "size", fmt.Sprintf("%dx%d", s.Width, s.Height))
		return m, opts
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("web server: %w", err)
	}
	return nil
}
