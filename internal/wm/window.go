package wm

import (
	"github.com/oriaxos/oriax/internal/geom"
	"github.com/oriaxos/oriax/internal/registry"
)

// State is the lifecycle state of a window.
type State int

const (
	// Normal windows are visible at their own geometry.
	Normal State = iota
	// Minimized windows are hidden and listed only in the taskbar.
	Minimized
	// Maximized windows fill the work area until moved, resized or restored.
	Maximized
	// Closed is only ever seen on the copy handed to listeners of EventClosed.
	Closed
)

func (s State) String() string {
	switch s {
	case Normal:
		return "normal"
	case Minimized:
		return "minimized"
	case Maximized:
		return "maximized"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Window is one open app instance. Values returned by the Manager are
// snapshots; changing them does not change the managed window.
type Window struct {
	ID    string
	AppID string
	Props registry.Props
	Title string

	Geometry geom.Rect
	// NormalGeometry is where a maximized window goes back to.
	NormalGeometry geom.Rect

	Z     int
	State State
	// Seq is the creation order. The taskbar lists windows by it.
	Seq int

	// Focused is derived by the manager when it hands out the snapshot.
	Focused bool

	// restoreState is what Restore returns a minimized window to.
	restoreState State
}

// Visible reports whether the window is drawn on screen.
func (w Window) Visible() bool {
	return w.State == Normal || w.State == Maximized
}

// ShortID returns the first eight characters of the id for logs and labels.
func (w Window) ShortID() string {
	if len(w.ID) > 8 {
		return w.ID[:8]
	}
	return w.ID
}
