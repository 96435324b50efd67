package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/oriaxos/oriax/internal/config"
)

// TickerMsg drives clocks and monitors.
type TickerMsg time.Time

// InputHandler handles keyboard and mouse messages. It lives in the input
// package, which imports this one.
type InputHandler func(msg tea.Msg, s *Shell) (tea.Model, tea.Cmd)

var inputHandler InputHandler

// SetInputHandler registers the input handler. Call it before the program runs.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// TickCmd schedules the next tick.
func TickCmd() tea.Cmd {
	return tea.Tick(config.TickSeconds*time.Second, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// Init starts the tick loop.
func (s *Shell) Init() tea.Cmd {
	return TickCmd()
}

// Update handles one message.
func (s *Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickerMsg:
		s.Tick(time.Time(msg))
		return s, TickCmd()

	case tea.WindowSizeMsg:
		shrunk := msg.Width < s.Width || msg.Height < s.Height
		s.Width, s.Height = msg.Width, msg.Height
		if shrunk {
			s.ClampWindowsToView()
		} else {
			s.WM.RefitMaximized(s.WorkArea())
		}
		return s, nil

	case tea.BlurMsg:
		// Lost capture: the release will never arrive.
		s.Pointer.Cancel()
		return s, nil

	case tea.KeyPressMsg, tea.MouseClickMsg, tea.MouseMotionMsg,
		tea.MouseReleaseMsg, tea.MouseWheelMsg, tea.PasteMsg:
		if inputHandler != nil {
			return inputHandler(msg, s)
		}
		return s, nil
	}
	return s, nil
}
