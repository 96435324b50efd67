package server

import (
	"context"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/oriaxos/oriax/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopModel struct{}

func (nopModel) Init() tea.Cmd                       { return nil }
func (nopModel) Update(tea.Msg) (tea.Model, tea.Cmd) { return nopModel{}, nil }
func (nopModel) View() tea.View                      { return tea.View{} }

func TestNewModelFillsSize(t *testing.T) {
	var got Session
	factory := func(s Session) (tea.Model, []tea.ProgramOption, error) {
		got = s
		return nopModel{}, nil, nil
	}

	m, _, err := newModel(factory, Session{User: "ada"})
	require.NoError(t, err)
	assert.NotNil(t, m)
	assert.Equal(t, Session{
		User:   "ada",
		Width:  config.DefaultTerminalWidth,
		Height: config.DefaultTerminalHeight,
	}, got)

	_, _, _ = newModel(factory, Session{User: "bob", Width: 132, Height: 50})
	assert.Equal(t, 132, got.Width)
	assert.Equal(t, 50, got.Height)
}

func TestNewModelRecoversFactoryPanic(t *testing.T) {
	factory := func(Session) (tea.Model, []tea.ProgramOption, error) {
		panic("boom")
	}
	m, _, err := newModel(factory, Session{User: "ada"})
	assert.Nil(t, m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Contains(t, err.Error(), "ada")
}

func TestSSHConfigDefaults(t *testing.T) {
	cfg := &SSHServerConfig{}
	assert.Equal(t, config.DefaultSSHHost+":"+config.DefaultSSHPort, cfg.Address())

	cfg = &SSHServerConfig{Host: "0.0.0.0", Port: "2022", KeyPath: "/tmp/key"}
	assert.Equal(t, "0.0.0.0:2022", cfg.Address())
	path, err := cfg.HostKeyPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/key", path)
}

func TestWebConfigDefaults(t *testing.T) {
	sc := (&WebServerConfig{}).sipConfig()
	assert.Equal(t, config.DefaultWebPort, sc.Port)

	sc = (&WebServerConfig{Host: "0.0.0.0", Port: "9000"}).sipConfig()
	assert.Equal(t, "0.0.0.0", sc.Host)
	assert.Equal(t, "9000", sc.Port)
}

func TestStartRequiresFactory(t *testing.T) {
	ctx := context.Background()
	assert.ErrorIs(t, StartSSHServer(ctx, &SSHServerConfig{}), ErrNoFactory)
	assert.ErrorIs(t, StartWebServer(ctx, &WebServerConfig{}), ErrNoFactory)
}

func TestSSHServerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := &SSHServerConfig{
		Host:    "127.0.0.1",
		Port:    "0",
		KeyPath: filepath.Join(t.TempDir(), "host_key"),
		NewModel: func(Session) (tea.Model, []tea.ProgramOption, error) {
			return nopModel{}, nil, nil
		},
	}

	done := make(chan error, 1)
	go func() { done <- StartSSHServer(ctx, cfg) }()
	cancel()
	assert.NoError(t, <-done)
}
