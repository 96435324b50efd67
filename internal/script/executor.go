package script

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"charm.land/log/v2"
	"github.com/oriaxos/oriax/internal/geom"
	"github.com/oriaxos/oriax/internal/pointer"
	"github.com/oriaxos/oriax/internal/registry"
	"github.com/oriaxos/oriax/internal/wm"
)

// ErrExpectation is wrapped by every failed Expect command.
var ErrExpectation = errors.New("expectation failed")

// ErrNoWindow is returned when a reference resolves to nothing.
var ErrNoWindow = errors.New("no such window")

// Executor runs commands against a window manager and a pointer controller
// that drives the same manager.
type Executor struct {
	wm     *wm.Manager
	ptr    *pointer.Controller
	area   geom.Rect
	logger *log.Logger

	// opened holds the ids of successful opens in order, for $N references.
	opened []string
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithArea sets the rectangle Maximize fills. The default is 80x23.
func WithArea(r geom.Rect) ExecutorOption {
	return func(e *Executor) { e.area = r }
}

// WithLogger logs every command at debug level.
func WithLogger(l *log.Logger) ExecutorOption {
	return func(e *Executor) { e.logger = l }
}

// NewExecutor returns an executor. A nil controller gets a fresh one over m.
func NewExecutor(m *wm.Manager, ptr *pointer.Controller, opts ...ExecutorOption) *Executor {
	if ptr == nil {
		ptr = pointer.New(m)
	}
	e := &Executor{
		wm:   m,
		ptr:  ptr,
		area: geom.Rect{Width: 80, Height: 23},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Opened returns the window ids created so far, in $N order.
func (e *Executor) Opened() []string {
	return append([]string(nil), e.opened...)
}

// Run executes cmds in order and stops at the first failure, returned as
// an *ExecError.
func (e *Executor) Run(cmds []Command) error {
	for _, c := range cmds {
		if err := e.Execute(c); err != nil {
			return &ExecError{Command: c, Err: err}
		}
	}
	return nil
}

// Execute runs a single command. Window manager operations on references
// that no longer exist are no-ops, matching the manager; only a reference
// that never existed is an error. Commands built by hand are checked the
// same way Parse checks them.
func (e *Executor) Execute(c Command) error {
	if err := check(c); err != nil {
		return err
	}
	if e.logger != nil {
		e.logger.Debug("script", "line", c.Line, "cmd", c.String())
	}
	args := c.Args

	switch c.Type {
	case CommandOpen:
		return e.open(args)

	case CommandClose, CommandFocus, CommandMinimize, CommandRestore, CommandMaximize:
		id, err := e.resolve(args[0])
		if err != nil {
			return err
		}
		switch c.Type {
		case CommandClose:
			e.wm.CloseWindow(id)
		case CommandFocus:
			e.wm.FocusWindow(id)
		case CommandMinimize:
			e.wm.Minimize(id)
		case CommandRestore:
			e.wm.Restore(id)
		case CommandMaximize:
			e.wm.ToggleMaximize(id, e.area)
		}
		return nil

	case CommandMove, CommandResize:
		id, err := e.resolve(args[0])
		if err != nil {
			return err
		}
		a, b := atoi(args[1]), atoi(args[2])
		if c.Type == CommandMove {
			e.wm.MoveWindow(id, a, b)
		} else {
			e.wm.ResizeWindow(id, a, b)
		}
		return nil

	case CommandDrag:
		id, err := e.resolve(args[0])
		if err != nil {
			return err
		}
		cancel := len(args) == 6
		return e.gesture(id, 0, ints(args[1:5]), cancel)

	case CommandResizeDrag:
		id, err := e.resolve(args[0])
		if err != nil {
			return err
		}
		edge, _ := pointer.ParseEdge(args[1])
		return e.gesture(id, edge, ints(args[2:6]), false)

	case CommandCycle:
		e.wm.CycleFocus(len(args) == 0)
		return nil

	case CommandExpect:
		return e.expect(args)
	}
	return fmt.Errorf("unsupported command %s", c.Type)
}

func (e *Executor) open(args []string) error {
	appID := args[0]
	title := ""
	var props registry.Props
	for _, a := range args[1:] {
		if k, v, ok := strings.Cut(a, "="); ok {
			if props == nil {
				props = registry.Props{}
			}
			props[k] = v
			continue
		}
		title = a
	}
	id, err := e.wm.OpenApp(appID, props, title)
	if err != nil {
		return err
	}
	e.opened = append(e.opened, id)
	return nil
}

// gesture replays a press at p[0],p[1], one motion to p[2],p[3] and a release.
func (e *Executor) gesture(id string, edge pointer.Edge, p []int, cancel bool) error {
	from, to := geom.Pt(p[0], p[1]), geom.Pt(p[2], p[3])
	var ok bool
	if edge == 0 {
		ok = e.ptr.BeginDrag(id, from)
	} else {
		ok = e.ptr.BeginResize(id, edge, from)
	}
	if !ok {
		return fmt.Errorf("window %s cannot be grabbed", shortID(id))
	}
	e.ptr.Move(to)
	if cancel {
		e.ptr.Cancel()
	} else {
		e.ptr.End()
	}
	return nil
}

func (e *Executor) expect(args []string) error {
	switch args[0] {
	case "focused":
		got := e.wm.FocusedID()
		want := ""
		if args[1] != "none" {
			id, err := e.resolve(args[1])
			if err != nil {
				return err
			}
			want = id
		}
		if got != want {
			return fmt.Errorf("%w: focused is %s, want %s", ErrExpectation, describe(got), describe(want))
		}

	case "count":
		if got, want := e.wm.Len(), atoi(args[1]); got != want {
			return fmt.Errorf("%w: %d open windows, want %d", ErrExpectation, got, want)
		}

	case "geometry":
		id, err := e.resolve(args[1])
		if err != nil {
			return err
		}
		w, ok := e.wm.Window(id)
		if !ok {
			return fmt.Errorf("%w: window %s is closed", ErrExpectation, shortID(id))
		}
		n := ints(args[2:6])
		want := geom.Rect{X: n[0], Y: n[1], Width: n[2], Height: n[3]}
		if w.Geometry != want {
			return fmt.Errorf("%w: geometry is %v, want %v", ErrExpectation, w.Geometry, want)
		}

	case "state":
		id, err := e.resolve(args[1])
		if err != nil {
			return err
		}
		got := wm.Closed
		if w, ok := e.wm.Window(id); ok {
			got = w.State
		}
		if !strings.EqualFold(got.String(), args[2]) {
			return fmt.Errorf("%w: state is %s, want %s", ErrExpectation, got, args[2])
		}
	}
	return nil
}

// resolve turns a reference into a window id. $N for a window that was
// closed since still resolves, so the command becomes a no-op.
func (e *Executor) resolve(ref string) (string, error) {
	if ref == "focused" {
		id := e.wm.FocusedID()
		if id == "" {
			return "", fmt.Errorf("%w: nothing is focused", ErrNoWindow)
		}
		return id, nil
	}
	n, err := strconv.Atoi(strings.TrimPrefix(ref, "$"))
	if err != nil || n < 1 || n > len(e.opened) {
		return "", fmt.Errorf("%w: %s (%d opened so far)", ErrNoWindow, ref, len(e.opened))
	}
	return e.opened[n-1], nil
}

func describe(id string) string {
	if id == "" {
		return "none"
	}
	return shortID(id)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func ints(args []string) []int {
	out := make([]int, len(args))
	for i, a := range args {
		out[i] = atoi(a)
	}
	return out
}
