// Package wm implements the window manager: the single owner of every open
// window, its geometry, stacking order and focus.
//
// The manager is not safe for concurrent use. It is meant to be driven from
// one event loop (the shell's Bubble Tea Update), which serializes every
// mutation in the order its triggering event was dispatched.
package wm

import (
	"io"
	"sort"

	"charm.land/log/v2"
	"github.com/google/uuid"

	"github.com/oriaxos/oriax/internal/geom"
	"github.com/oriaxos/oriax/internal/registry"
)

// DefaultMinSize is the smallest window the manager allows unless
// WithMinSize says otherwise.
var DefaultMinSize = geom.Size{Width: 10, Height: 3}

const (
	// DefaultWidth and DefaultHeight size windows whose manifest has no geometry.
	DefaultWidth  = 40
	DefaultHeight = 12

	cascadeSlots = 8
)

// Manager owns the window collection. Other components change windows only
// through its methods; operations on ids that no longer exist are no-ops.
type Manager struct {
	registry *registry.Registry
	windows  map[string]*Window

	// counter is the next z value. It only grows.
	counter int
	seq     int
	focused string

	minSize geom.Size
	origin  geom.Point
	cascade int

	newID     func() string
	logger    *log.Logger
	listeners []Listener
}

// Option configures a Manager.
type Option func(*Manager)

// WithMinSize sets the size floor every window is clamped to.
func WithMinSize(s geom.Size) Option {
	return func(m *Manager) {
		m.minSize = geom.Size{Width: max(s.Width, 1), Height: max(s.Height, 1)}
	}
}

// WithOrigin sets the top-left corner new windows cascade from.
func WithOrigin(p geom.Point) Option {
	return func(m *Manager) {
		m.origin = p
	}
}

// WithCascade sets the vertical step between cascaded windows. The
// horizontal step is twice as wide to account for cell aspect ratio.
func WithCascade(step int) Option {
	return func(m *Manager) {
		m.cascade = max(step, 0)
	}
}

// WithLogger sets the logger mutations are reported to at debug level.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithIDGenerator replaces the uuid window id generator.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		if fn != nil {
			m.newID = fn
		}
	}
}

// New creates a manager that resolves apps through reg.
func New(reg *registry.Registry, opts ...Option) *Manager {
	m := &Manager{
		registry: reg,
		windows:  make(map[string]*Window),
		counter:  1,
		minSize:  DefaultMinSize,
		cascade:  1,
		newID:    func() string { return uuid.New().String() },
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Registry returns the registry the manager resolves apps through.
func (m *Manager) Registry() *registry.Registry {
	return m.registry
}

// MinSize returns the size floor.
func (m *Manager) MinSize() geom.Size {
	return m.minSize
}

// OpenApp opens appID in a new window on top of the stack and focuses it.
// An empty title uses the manifest's title. Unknown ids fail with
// *registry.UnknownAppError and leave the collection untouched.
//
// For SingleInstance apps an existing window is restored and focused
// instead, and its id returned; the new props are ignored.
func (m *Manager) OpenApp(appID string, props registry.Props, title string) (string, error) {
	manifest, err := m.registry.Resolve(appID)
	if err != nil {
		m.logger.Warn("open rejected", "app", appID, "err", err)
		return "", err
	}

	if manifest.SingleInstance {
		if existing := m.firstOf(appID); existing != nil {
			if existing.State == Minimized {
				m.Restore(existing.ID)
			} else {
				m.FocusWindow(existing.ID)
			}
			return existing.ID, nil
		}
	}

	if title == "" {
		title = manifest.Title
	}

	m.seq++
	w := &Window{
		ID:       m.newID(),
		AppID:    appID,
		Props:    props.Clone(),
		Title:    title,
		Geometry: m.placement(manifest.Geometry),
		State:    Normal,
		Z:        m.nextZ(),
		Seq:      m.seq,
	}
	m.windows[w.ID] = w

	m.logger.Debug("window opened", "window", w.ShortID(), "app", appID, "z", w.Z)
	m.settle(EventOpened, w)
	return w.ID, nil
}

// CloseWindow removes the window. If it held focus, focus moves to the
// highest remaining visible window. Closing an unknown id does nothing.
func (m *Manager) CloseWindow(id string) {
	w, ok := m.windows[id]
	if !ok {
		return
	}
	delete(m.windows, id)
	w.State = Closed

	m.logger.Debug("window closed", "window", w.ShortID(), "app", w.AppID, "remaining", len(m.windows))
	m.settle(EventClosed, w)
}

// FocusWindow raises a visible window to the top of the stack.
func (m *Manager) FocusWindow(id string) {
	w, ok := m.windows[id]
	if !ok || w.State == Minimized {
		return
	}
	w.Z = m.nextZ()
	m.refocus()
}

// MoveWindow translates the window by (dx, dy). Positions are not clamped
// to the viewport. Moving a maximized window returns it to Normal.
func (m *Manager) MoveWindow(id string, dx, dy int) {
	w, ok := m.windows[id]
	if !ok || (dx == 0 && dy == 0) {
		return
	}
	if w.State == Maximized {
		w.State = Normal
	}
	w.Geometry = w.Geometry.Translate(dx, dy)
	m.emit(EventMoved, w)
}

// ResizeWindow sets the window size, clamped to the floor. The position is
// unchanged. Resizing a maximized window returns it to Normal.
func (m *Manager) ResizeWindow(id string, width, height int) {
	w, ok := m.windows[id]
	if !ok {
		return
	}
	width, height = m.minSize.Clamp(width, height)
	if w.Geometry.Width == width && w.Geometry.Height == height {
		return
	}
	if w.State == Maximized {
		w.State = Normal
	}
	w.Geometry.Width = width
	w.Geometry.Height = height
	m.emit(EventResized, w)
}

// Minimize hides the window. Focus moves on if it was focused.
func (m *Manager) Minimize(id string) {
	w, ok := m.windows[id]
	if !ok || w.State == Minimized {
		return
	}
	w.restoreState = w.State
	w.State = Minimized

	m.logger.Debug("window minimized", "window", w.ShortID())
	m.settle(EventMinimized, w)
}

// Restore shows a minimized window again with a fresh top z and focus.
func (m *Manager) Restore(id string) {
	w, ok := m.windows[id]
	if !ok || w.State != Minimized {
		return
	}
	w.State = w.restoreState
	if w.State != Maximized {
		w.State = Normal
	}
	w.Z = m.nextZ()

	m.logger.Debug("window restored", "window", w.ShortID(), "z", w.Z)
	m.settle(EventRestored, w)
}

// Maximize fills area with the window and focuses it. The previous
// geometry is kept for Unmaximize.
func (m *Manager) Maximize(id string, area geom.Rect) {
	w, ok := m.windows[id]
	if !ok || w.State == Maximized {
		return
	}
	if w.State == Minimized {
		if w.restoreState == Maximized {
			// Geometry already holds the maximized area.
			m.Restore(id)
			return
		}
		w.State = Normal
	}
	w.NormalGeometry = w.Geometry
	w.Geometry = area
	w.Geometry.Width, w.Geometry.Height = m.minSize.Clamp(area.Width, area.Height)
	w.State = Maximized
	w.Z = m.nextZ()

	m.settle(EventMaximized, w)
}

// Unmaximize returns a maximized window to its saved geometry.
func (m *Manager) Unmaximize(id string) {
	w, ok := m.windows[id]
	if !ok || w.State != Maximized {
		return
	}
	w.Geometry = w.NormalGeometry
	w.State = Normal
	m.emit(EventResized, w)
}

// RefitMaximized resizes every maximized window, including minimized ones
// that will restore to maximized, to area. Stacking and focus are unchanged.
func (m *Manager) RefitMaximized(area geom.Rect) {
	area.Width, area.Height = m.minSize.Clamp(area.Width, area.Height)
	for _, w := range m.bySeq() {
		maximized := w.State == Maximized || (w.State == Minimized && w.restoreState == Maximized)
		if !maximized || w.Geometry == area {
			continue
		}
		w.Geometry = area
		m.emit(EventResized, w)
	}
}

// ToggleMaximize maximizes a normal window or unmaximizes a maximized one.
func (m *Manager) ToggleMaximize(id string, area geom.Rect) {
	w, ok := m.windows[id]
	if !ok {
		return
	}
	if w.State == Maximized {
		m.Unmaximize(id)
		m.FocusWindow(id)
		return
	}
	m.Maximize(id, area)
}

// CycleFocus focuses the next (or previous) visible window in creation order.
func (m *Manager) CycleFocus(forward bool) {
	var visible []*Window
	for _, w := range m.bySeq() {
		if w.State != Minimized {
			visible = append(visible, w)
		}
	}
	if len(visible) < 2 {
		return
	}

	current := 0
	for i, w := range visible {
		if w.ID == m.focused {
			current = i
			break
		}
	}
	next := current + 1
	if !forward {
		next = current - 1 + len(visible)
	}
	m.FocusWindow(visible[next%len(visible)].ID)
}

// Window returns a snapshot of the window with the given id.
func (m *Manager) Window(id string) (Window, bool) {
	w, ok := m.windows[id]
	if !ok {
		return Window{}, false
	}
	return m.snapshot(w), true
}

// Focused returns the focused window, if any.
func (m *Manager) Focused() (Window, bool) {
	if m.focused == "" {
		return Window{}, false
	}
	return m.Window(m.focused)
}

// FocusedID returns the focused window id or "".
func (m *Manager) FocusedID() string {
	return m.focused
}

// Len returns the number of open windows, minimized ones included.
func (m *Manager) Len() int {
	return len(m.windows)
}

// Windows returns every open window sorted by z, bottom first. This is the
// paint order.
func (m *Manager) Windows() []Window {
	out := make([]Window, 0, len(m.windows))
	for _, w := range m.windows {
		out = append(out, m.snapshot(w))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Z < out[j].Z })
	return out
}

// WindowsByCreation returns every open window in the order it was opened.
func (m *Manager) WindowsByCreation() []Window {
	ws := m.bySeq()
	out := make([]Window, len(ws))
	for i, w := range ws {
		out[i] = m.snapshot(w)
	}
	return out
}

// WindowAt returns the topmost visible window covering the cell (x, y).
func (m *Manager) WindowAt(x, y int) (Window, bool) {
	var hit *Window
	for _, w := range m.windows {
		if w.State == Minimized || !w.Geometry.Contains(x, y) {
			continue
		}
		if hit == nil || w.Z > hit.Z {
			hit = w
		}
	}
	if hit == nil {
		return Window{}, false
	}
	return m.snapshot(hit), true
}

func (m *Manager) nextZ() int {
	z := m.counter
	m.counter++
	return z
}

// refocus derives the focused window: the visible window with the highest z.
func (m *Manager) refocus() {
	if top := m.updateFocus(); top != nil {
		m.emit(EventFocused, top)
	}
}

// settle updates focus before reporting t, so listeners see the final
// focus state on w. A focus change is reported after t.
func (m *Manager) settle(t EventType, w *Window) {
	top := m.updateFocus()
	m.emit(t, w)
	if top != nil {
		m.emit(EventFocused, top)
	}
}

// updateFocus recomputes m.focused and returns the newly focused window, or
// nil when focus did not move to a window.
func (m *Manager) updateFocus() *Window {
	var top *Window
	for _, w := range m.windows {
		if w.State == Minimized {
			continue
		}
		if top == nil || w.Z > top.Z {
			top = w
		}
	}

	prev := m.focused
	if top == nil {
		m.focused = ""
	} else {
		m.focused = top.ID
	}
	if m.focused == prev || top == nil {
		return nil
	}
	m.logger.Debug("focus changed", "window", top.ShortID(), "z", top.Z)
	return top
}

func (m *Manager) snapshot(w *Window) Window {
	s := *w
	s.Props = w.Props.Clone()
	s.Focused = w.ID == m.focused && w.State != Closed
	return s
}

func (m *Manager) firstOf(appID string) *Window {
	for _, w := range m.bySeq() {
		if w.AppID == appID {
			return w
		}
	}
	return nil
}

func (m *Manager) bySeq() []*Window {
	out := make([]*Window, 0, len(m.windows))
	for _, w := range m.windows {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// placement sizes a new window from its manifest geometry and cascades it
// when the manifest leaves the position at zero.
func (m *Manager) placement(g geom.Rect) geom.Rect {
	if g.Width <= 0 {
		g.Width = DefaultWidth
	}
	if g.Height <= 0 {
		g.Height = DefaultHeight
	}
	g.Width, g.Height = m.minSize.Clamp(g.Width, g.Height)

	if g.X == 0 && g.Y == 0 {
		slot := (m.seq - 1) % cascadeSlots
		g.X = m.origin.X + slot*m.cascade*2
		g.Y = m.origin.Y + slot*m.cascade
	}
	return g
}
