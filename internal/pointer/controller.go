// Package pointer turns raw pointer events into window manager calls. At
// most one drag or resize is active at a time.
package pointer

import (
	"github.com/oriaxos/oriax/internal/geom"
	"github.com/oriaxos/oriax/internal/wm"
)

// Mode is the controller state.
type Mode int

const (
	Idle Mode = iota
	Dragging
	Resizing
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// WindowManager is the part of *wm.Manager the controller drives.
type WindowManager interface {
	Window(id string) (wm.Window, bool)
	FocusWindow(id string)
	MoveWindow(id string, dx, dy int)
	ResizeWindow(id string, width, height int)
	MinSize() geom.Size
}

// Interaction is the captured state of an active drag or resize.
type Interaction struct {
	Mode     Mode
	WindowID string
	Edge     Edge

	// Start is the pointer position at pointer-down.
	Start geom.Point
	// StartGeometry is the window geometry at pointer-down.
	StartGeometry geom.Rect
}

// Controller is the drag/resize state machine.
type Controller struct {
	wm  WindowManager
	cur Interaction
}

// New returns an idle controller driving m.
func New(m WindowManager) *Controller {
	return &Controller{wm: m}
}

// Interaction returns the current interaction. Mode is Idle when none is active.
func (c *Controller) Interaction() Interaction {
	return c.cur
}

// Mode returns the current state.
func (c *Controller) Mode() Mode {
	return c.cur.Mode
}

// Active reports whether a drag or resize is in progress.
func (c *Controller) Active() bool {
	return c.cur.Mode != Idle
}

// BeginDrag starts dragging the window by its title. The window is focused
// first. It returns false, changing nothing, if an interaction is already
// active or the window cannot be dragged.
func (c *Controller) BeginDrag(id string, p geom.Point) bool {
	return c.begin(Dragging, id, 0, p)
}

// BeginResize starts resizing the window from edge. Same rules as BeginDrag.
func (c *Controller) BeginResize(id string, edge Edge, p geom.Point) bool {
	if edge == 0 {
		return false
	}
	return c.begin(Resizing, id, edge, p)
}

func (c *Controller) begin(mode Mode, id string, edge Edge, p geom.Point) bool {
	if c.Active() {
		return false
	}
	w, ok := c.wm.Window(id)
	if !ok || !w.Visible() {
		return false
	}

	c.wm.FocusWindow(id)
	c.cur = Interaction{
		Mode:          mode,
		WindowID:      id,
		Edge:          edge,
		Start:         p,
		StartGeometry: w.Geometry,
	}
	return true
}

// Move applies a pointer move. The target geometry is always computed from
// the captured start, so rounding never accumulates across moves.
func (c *Controller) Move(p geom.Point) {
	if !c.Active() {
		return
	}
	w, ok := c.wm.Window(c.cur.WindowID)
	if !ok {
		// The window closed under the pointer.
		c.cur = Interaction{}
		return
	}

	dx := p.X - c.cur.Start.X
	dy := p.Y - c.cur.Start.Y
	start := c.cur.StartGeometry

	switch c.cur.Mode {
	case Dragging:
		c.wm.MoveWindow(w.ID, start.X+dx-w.Geometry.X, start.Y+dy-w.Geometry.Y)
	case Resizing:
		c.resize(w, dx, dy)
	}
}

func (c *Controller) resize(w wm.Window, dx, dy int) {
	start := c.cur.StartGeometry
	edge := c.cur.Edge

	width, height := start.Width, start.Height
	if edge.Has(EdgeRight) {
		width += dx
	}
	if edge.Has(EdgeLeft) {
		width -= dx
	}
	if edge.Has(EdgeBottom) {
		height += dy
	}
	if edge.Has(EdgeTop) {
		height -= dy
	}
	c.wm.ResizeWindow(w.ID, width, height)

	// West and north edges move the origin so the opposite edge stays put.
	resized, ok := c.wm.Window(w.ID)
	if !ok {
		return
	}
	x, y := start.X, start.Y
	if edge.Has(EdgeLeft) {
		x = start.X + start.Width - resized.Geometry.Width
	}
	if edge.Has(EdgeTop) {
		y = start.Y + start.Height - resized.Geometry.Height
	}
	c.wm.MoveWindow(w.ID, x-resized.Geometry.X, y-resized.Geometry.Y)
}

// End finishes the interaction on pointer-up. Geometry stays where the last
// move put it.
func (c *Controller) End() {
	c.cur = Interaction{}
}

// Cancel aborts the interaction on pointer-cancel or lost capture. Moves
// already applied are kept; there is no rollback.
func (c *Controller) Cancel() {
	c.cur = Interaction{}
}
