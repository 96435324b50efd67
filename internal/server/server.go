// Package server serves shells to remote clients over SSH and in the
// browser. Every connection gets its own shell; nothing is shared between
// sessions except the process-wide appearance settings.
package server

import (
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/oriaxos/oriax/internal/config"
)

// ErrNoFactory is returned when a server is started without a ModelFactory.
var ErrNoFactory = errors.New("server: no model factory")

// Session describes a remote client at connect time.
type Session struct {
	// User is the SSH user name, or "web" for browser sessions.
	User   string
	Remote string
	Width  int
	Height int
}

// ModelFactory builds the model for one session.
type ModelFactory func(s Session) (tea.Model, []tea.ProgramOption, error)

// normalize fills in the terminal size when the client did not report one.
func (s Session) normalize() Session {
	if s.Width <= 0 {
		s.Width = config.DefaultTerminalWidth
	}
	if s.Height <= 0 {
		s.Height = config.DefaultTerminalHeight
	}
	return s
}

// newModel runs factory for s. A panicking factory is reported as an error
// so one bad session cannot take the server down.
func newModel(factory ModelFactory, s Session) (m tea.Model, opts []tea.ProgramOption, err error) {
	defer func() {
		if r := recover(); r != nil {
			m, opts, err = nil, nil, fmt.Errorf("session for %s: %v", s.User, r)
		}
	}()
	return factory(s.normalize())
}
