package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/activeterm"
	bm "charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/ssh"
	"github.com/oriaxos/oriax/internal/config"
)

// SSHServerConfig configures StartSSHServer.
type SSHServerConfig struct {
	Host string
	Port string
	// KeyPath is the host key. Empty uses the XDG data dir; a missing key
	// is generated.
	KeyPath string
	Version string

	NewModel ModelFactory
	Logger   *log.Logger
}

// HostKeyPath returns the host key location StartSSHServer will use.
func (c *SSHServerConfig) HostKeyPath() (string, error) {
	if c.KeyPath != "" {
		return c.KeyPath, nil
	}
	path, err := xdg.DataFile("oriax/ssh_host_ed25519")
	if err != nil {
		return "", fmt.Errorf("host key path: %w", err)
	}
	return path, nil
}

// Address is the listen address.
func (c *SSHServerConfig) Address() string {
	host, port := c.Host, c.Port
	if host == "" {
		host = config.DefaultSSHHost
	}
	if port == "" {
		port = config.DefaultSSHPort
	}
	return net.JoinHostPort(host, port)
}

// StartSSHServer serves shells over SSH until ctx is done.
func StartSSHServer(ctx context.Context, cfg *SSHServerConfig) error {
	if cfg.NewModel == nil {
		return ErrNoFactory
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	keyPath, err := cfg.HostKeyPath()
	if err != nil {
		return err
	}

	srv, err := wish.NewServer(
		wish.WithAddress(cfg.Address()),
		wish.WithHostKeyPath(keyPath),
		wish.WithMiddleware(
			bm.Middleware(sshHandler(cfg.NewModel, logger)),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("create ssh server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("ssh server listening", "addr", cfg.Address(), "version", cfg.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("ssh server: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("ssh server stopping")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("ssh shutdown: %w", err)
		}
		return nil
	}
}

func sshHandler(factory ModelFactory, logger *log.Logger) bm.Handler {
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := sess.Pty()
		s := Session{
			User:   sess.User(),
			Remote: sess.RemoteAddr().String(),
			Width:  pty.Window.Width,
			Height: pty.Window.Height,
		}
		m, opts, err := newModel(factory, s)
		if err != nil {
			logger.Error("session rejected", "user", s.User, "remote", s.Remote, "err", err)
			wish.Errorln(sess, err)
			return nil, nil
		}
		logger.Info("session started", "user", s.User, "remote", s.Remote, "size", fmt.Sprintf("%dx%d", s.Width, s.Height))
		return m, opts
	}
}
