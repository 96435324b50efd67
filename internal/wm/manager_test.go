package wm

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oriaxos/oriax/internal/geom"
	"github.com/oriaxos/oriax/internal/registry"
)

type textApp string

func (t textApp) View(registry.Context) string { return string(t) }

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	for _, m := range []registry.Manifest{
		{ID: "notes", Title: "Notes", Geometry: geom.Rect{Width: 40, Height: 12}},
		{ID: "clock", Title: "Clock", Geometry: geom.Rect{X: 5, Y: 5, Width: 20, Height: 5}},
		{ID: "launcher", Title: "Launcher", SingleInstance: true},
	} {
		m.New = func(registry.Props) registry.App { return textApp(m.ID) }
		require.NoError(t, reg.Register(m))
	}
	return reg
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("w%d", n)
	}
}

func newTestManager(t *testing.T, opts ...Option) *Manager {
	t.Helper()
	opts = append([]Option{WithIDGenerator(sequentialIDs())}, opts...)
	return New(testRegistry(t), opts...)
}

// checkInvariants asserts the properties that must hold after every mutation.
func checkInvariants(t *testing.T, m *Manager) {
	t.Helper()
	seen := make(map[int]string)
	focused := 0
	visible := 0
	var top *Window
	for _, w := range m.Windows() {
		if other, dup := seen[w.Z]; dup {
			t.Fatalf("windows %s and %s share z %d", other, w.ID, w.Z)
		}
		seen[w.Z] = w.ID
		require.NotEqual(t, Closed, w.State, "closed window %s still in collection", w.ID)
		require.GreaterOrEqual(t, w.Geometry.Width, m.MinSize().Width)
		require.GreaterOrEqual(t, w.Geometry.Height, m.MinSize().Height)
		if w.Focused {
			focused++
		}
		if w.State != Minimized {
			visible++
			if top == nil || w.Z > top.Z {
				top = &w
			}
		}
	}
	if visible == 0 {
		require.Equal(t, 0, focused, "focus held with no visible windows")
		return
	}
	require.Equal(t, 1, focused, "expected exactly one focused window")
	require.True(t, top.Focused, "focus must be on the highest visible z")
}

func TestOpenAppAssignsTopZAndFocus(t *testing.T) {
	m := newTestManager(t)

	w1, err := m.OpenApp("notes", nil, "")
	require.NoError(t, err)
	w2, err := m.OpenApp("notes", nil, "")
	require.NoError(t, err)
	checkInvariants(t, m)

	a, _ := m.Window(w1)
	b, _ := m.Window(w2)
	assert.NotEqual(t, w1, w2)
	assert.Greater(t, b.Z, a.Z)
	assert.True(t, b.Focused)
	assert.False(t, a.Focused)
	assert.Equal(t, "Notes", a.Title)
	assert.Equal(t, Normal, a.State)
}

func TestOpenAppTitleOverrideAndProps(t *testing.T) {
	m := newTestManager(t)
	props := registry.Props{"text": "draft"}

	id, err := m.OpenApp("notes", props, "Scratch")
	require.NoError(t, err)
	props["text"] = "mutated after open"

	w, _ := m.Window(id)
	assert.Equal(t, "Scratch", w.Title)
	assert.Equal(t, "notes", w.AppID)
	assert.Equal(t, "draft", w.Props["text"])
}

func TestOpenUnknownAppLeavesCollectionUntouched(t *testing.T) {
	m := newTestManager(t)
	_, err := m.OpenApp("notes", nil, "")
	require.NoError(t, err)
	before := m.Windows()

	id, err := m.OpenApp("nonexistent", nil, "")
	require.ErrorIs(t, err, registry.ErrUnknownApp)
	assert.Empty(t, id)

	if diff := cmp.Diff(before, m.Windows(), cmpopts.IgnoreUnexported(Window{})); diff != "" {
		t.Errorf("collection changed after unknown open (-before +after):\n%s", diff)
	}
}

func TestOpenCascadesWindowsWithoutPosition(t *testing.T) {
	m := newTestManager(t, WithOrigin(geom.Pt(0, 1)), WithCascade(1))

	a, _ := m.OpenApp("notes", nil, "")
	b, _ := m.OpenApp("notes", nil, "")
	c, _ := m.OpenApp("clock", nil, "")

	wa, _ := m.Window(a)
	wb, _ := m.Window(b)
	wc, _ := m.Window(c)
	assert.Equal(t, geom.Rect{X: 0, Y: 1, Width: 40, Height: 12}, wa.Geometry)
	assert.Equal(t, geom.Rect{X: 2, Y: 2, Width: 40, Height: 12}, wb.Geometry)
	assert.Equal(t, geom.Rect{X: 5, Y: 5, Width: 20, Height: 5}, wc.Geometry, "explicit manifest position is kept")
}

func TestZValuesDistinctAcrossOpens(t *testing.T) {
	m := newTestManager(t)
	for i := 0; i < 25; i++ {
		_, err := m.OpenApp("notes", nil, "")
		require.NoError(t, err)
	}
	checkInvariants(t, m)
	assert.Equal(t, 25, m.Len())
}

func TestNotesScenario(t *testing.T) {
	m := newTestManager(t)

	w1, _ := m.OpenApp("notes", nil, "")
	w2, _ := m.OpenApp("notes", nil, "")
	assert.Equal(t, w2, m.FocusedID())

	m.FocusWindow(w1)
	a, _ := m.Window(w1)
	b, _ := m.Window(w2)
	assert.Greater(t, a.Z, b.Z)
	assert.True(t, a.Focused)
	checkInvariants(t, m)

	m.CloseWindow(w1)
	assert.Equal(t, w2, m.FocusedID())
	checkInvariants(t, m)

	m.Minimize(w2)
	_, ok := m.Focused()
	assert.False(t, ok, "minimizing the only window leaves nothing focused")
	checkInvariants(t, m)
}

func TestCloseTransfersFocusToHighestRemaining(t *testing.T) {
	m := newTestManager(t)
	w1, _ := m.OpenApp("notes", nil, "")
	w2, _ := m.OpenApp("notes", nil, "")
	w3, _ := m.OpenApp("notes", nil, "")

	// Stack is now w2 < w3 < w1.
	m.FocusWindow(w1)
	m.Minimize(w3)
	m.CloseWindow(w1)

	assert.Equal(t, w2, m.FocusedID(), "minimized w3 must not receive focus")
	checkInvariants(t, m)
}

func TestCloseIsIdempotent(t *testing.T) {
	m := newTestManager(t)
	id, _ := m.OpenApp("notes", nil, "")

	m.CloseWindow(id)
	m.CloseWindow(id)
	m.CloseWindow("never-existed")

	assert.Equal(t, 0, m.Len())
	_, ok := m.Focused()
	assert.False(t, ok)
}

func TestStaleIDsAreNoOps(t *testing.T) {
	m := newTestManager(t)
	id, _ := m.OpenApp("notes", nil, "")
	before := m.Windows()

	m.FocusWindow("gone")
	m.MoveWindow("gone", 3, 3)
	m.ResizeWindow("gone", 50, 50)
	m.Minimize("gone")
	m.Restore("gone")
	m.Maximize("gone", geom.Rect{Width: 80, Height: 24})
	m.Unmaximize("gone")

	if diff := cmp.Diff(before, m.Windows(), cmpopts.IgnoreUnexported(Window{})); diff != "" {
		t.Errorf("stale ids mutated state (-before +after):\n%s", diff)
	}
	assert.Equal(t, id, m.FocusedID())
}

func TestFocusMinimizedIsNoOp(t *testing.T) {
	m := newTestManager(t)
	w1, _ := m.OpenApp("notes", nil, "")
	w2, _ := m.OpenApp("notes", nil, "")
	m.Minimize(w1)
	before, _ := m.Window(w1)

	m.FocusWindow(w1)

	after, _ := m.Window(w1)
	assert.Equal(t, before.Z, after.Z)
	assert.Equal(t, w2, m.FocusedID())
}

func TestMoveWindowTranslates(t *testing.T) {
	m := newTestManager(t)
	id, _ := m.OpenApp("clock", nil, "")

	m.MoveWindow(id, -10, 3)

	w, _ := m.Window(id)
	assert.Equal(t, geom.Rect{X: -5, Y: 8, Width: 20, Height: 5}, w.Geometry, "no viewport clamp")
}

func TestResizeClampsToFloor(t *testing.T) {
	m := newTestManager(t, WithMinSize(geom.Size{Width: 100, Height: 50}))
	id, _ := m.OpenApp("clock", nil, "")

	tests := []struct {
		name  string
		w, h  int
		wantW int
		wantH int
	}{
		{"below floor", 10, 10, 100, 50},
		{"zero", 0, 0, 100, 50},
		{"negative", -20, -1, 100, 50},
		{"above floor", 120, 60, 120, 60},
		{"mixed", 150, 3, 150, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.ResizeWindow(id, tt.w, tt.h)
			w, _ := m.Window(id)
			assert.Equal(t, tt.wantW, w.Geometry.Width)
			assert.Equal(t, tt.wantH, w.Geometry.Height)
			assert.Equal(t, 5, w.Geometry.X, "resize keeps position")
			assert.Equal(t, 5, w.Geometry.Y, "resize keeps position")
		})
	}
}

func TestOpenClampsManifestGeometryToFloor(t *testing.T) {
	m := newTestManager(t, WithMinSize(geom.Size{Width: 100, Height: 50}))
	id, _ := m.OpenApp("clock", nil, "")
	w, _ := m.Window(id)
	assert.Equal(t, 100, w.Geometry.Width)
	assert.Equal(t, 50, w.Geometry.Height)
}

func TestMinimizeRestore(t *testing.T) {
	m := newTestManager(t)
	w1, _ := m.OpenApp("notes", nil, "")
	w2, _ := m.OpenApp("notes", nil, "")

	m.Minimize(w2)
	assert.Equal(t, w1, m.FocusedID())
	checkInvariants(t, m)

	m.Minimize(w2)
	w, _ := m.Window(w2)
	assert.Equal(t, Minimized, w.State, "minimizing twice is harmless")

	m.Restore(w2)
	w, _ = m.Window(w2)
	assert.Equal(t, Normal, w.State)
	assert.Equal(t, w2, m.FocusedID(), "restore gives focus")
	a, _ := m.Window(w1)
	assert.Greater(t, w.Z, a.Z)
	checkInvariants(t, m)

	m.Restore(w2)
	again, _ := m.Window(w2)
	assert.Equal(t, w.Z, again.Z, "restoring a normal window does nothing")
}

func TestMaximizeRoundTrip(t *testing.T) {
	m := newTestManager(t)
	id, _ := m.OpenApp("clock", nil, "")
	area := geom.Rect{X: 0, Y: 0, Width: 80, Height: 22}

	m.Maximize(id, area)
	w, _ := m.Window(id)
	assert.Equal(t, Maximized, w.State)
	assert.Equal(t, area, w.Geometry)

	m.ToggleMaximize(id, area)
	w, _ = m.Window(id)
	assert.Equal(t, Normal, w.State)
	assert.Equal(t, geom.Rect{X: 5, Y: 5, Width: 20, Height: 5}, w.Geometry)
}

func TestMaximizedSurvivesMinimize(t *testing.T) {
	m := newTestManager(t)
	id, _ := m.OpenApp("clock", nil, "")
	m.Maximize(id, geom.Rect{Width: 80, Height: 22})

	m.Minimize(id)
	m.Restore(id)

	w, _ := m.Window(id)
	assert.Equal(t, Maximized, w.State)
	assert.Equal(t, 80, w.Geometry.Width)
}

func TestMaximizeOnMinimizedMaximizedKeepsNormalGeometry(t *testing.T) {
	m := newTestManager(t)
	id, _ := m.OpenApp("clock", nil, "")
	area := geom.Rect{Y: 1, Width: 80, Height: 22}

	m.ToggleMaximize(id, area)
	m.Minimize(id)
	m.ToggleMaximize(id, area)

	w, _ := m.Window(id)
	assert.Equal(t, Maximized, w.State)
	assert.True(t, w.Focused)
	assert.Equal(t, area, w.Geometry)

	m.ToggleMaximize(id, area)
	w, _ = m.Window(id)
	assert.Equal(t, Normal, w.State)
	assert.Equal(t, geom.Rect{X: 5, Y: 5, Width: 20, Height: 5}, w.Geometry)
}

func TestRefitMaximizedKeepsStacking(t *testing.T) {
	m := newTestManager(t)
	a, _ := m.OpenApp("clock", nil, "")
	b, _ := m.OpenApp("notes", nil, "")
	c, _ := m.OpenApp("notes", nil, "")
	m.Maximize(a, geom.Rect{Width: 80, Height: 22})
	m.Maximize(b, geom.Rect{Width: 80, Height: 22})
	m.Minimize(b)
	before := m.Windows()

	area := geom.Rect{Width: 120, Height: 40}
	m.RefitMaximized(area)

	wa, _ := m.Window(a)
	wb, _ := m.Window(b)
	wc, _ := m.Window(c)
	assert.Equal(t, area, wa.Geometry)
	assert.Equal(t, area, wb.Geometry)
	assert.NotEqual(t, area, wc.Geometry)
	assert.Equal(t, a, m.FocusedID())
	for i, w := range m.Windows() {
		assert.Equal(t, before[i].Z, w.Z)
	}

	m.Restore(b)
	wb, _ = m.Window(b)
	assert.Equal(t, Maximized, wb.State)
	assert.Equal(t, area, wb.Geometry)
	checkInvariants(t, m)
}

func TestMoveDemotesMaximized(t *testing.T) {
	m := newTestManager(t)
	id, _ := m.OpenApp("clock", nil, "")
	m.Maximize(id, geom.Rect{Width: 80, Height: 22})

	m.MoveWindow(id, 4, 2)

	w, _ := m.Window(id)
	assert.Equal(t, Normal, w.State)
	assert.Equal(t, geom.Rect{X: 4, Y: 2, Width: 80, Height: 22}, w.Geometry)
}

func TestSingleInstanceFocusesExisting(t *testing.T) {
	m := newTestManager(t)
	first, err := m.OpenApp("launcher", registry.Props{"a": 1}, "")
	require.NoError(t, err)
	other, _ := m.OpenApp("notes", nil, "")
	assert.Equal(t, other, m.FocusedID())

	second, err := m.OpenApp("launcher", registry.Props{"a": 2}, "")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, first, m.FocusedID())

	w, _ := m.Window(first)
	assert.Equal(t, 1, w.Props["a"], "props of the re-open are ignored")

	m.Minimize(first)
	third, _ := m.OpenApp("launcher", nil, "")
	assert.Equal(t, first, third)
	w, _ = m.Window(first)
	assert.Equal(t, Normal, w.State, "re-open restores a minimized single instance")
}

func TestMultiInstanceDefault(t *testing.T) {
	m := newTestManager(t)
	a, _ := m.OpenApp("notes", nil, "")
	b, _ := m.OpenApp("notes", nil, "")
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, m.Len())
}

func TestCycleFocus(t *testing.T) {
	m := newTestManager(t)
	w1, _ := m.OpenApp("notes", nil, "")
	w2, _ := m.OpenApp("notes", nil, "")
	w3, _ := m.OpenApp("notes", nil, "")
	m.Minimize(w2)

	m.CycleFocus(true)
	assert.Equal(t, w1, m.FocusedID(), "wraps past the end and skips minimized")
	m.CycleFocus(true)
	assert.Equal(t, w3, m.FocusedID())
	m.CycleFocus(false)
	assert.Equal(t, w1, m.FocusedID())
}

func TestWindowAtPicksTopmost(t *testing.T) {
	m := newTestManager(t)
	under, _ := m.OpenApp("clock", nil, "")
	over, _ := m.OpenApp("clock", nil, "")

	w, ok := m.WindowAt(6, 6)
	require.True(t, ok)
	assert.Equal(t, over, w.ID)

	m.FocusWindow(under)
	w, _ = m.WindowAt(6, 6)
	assert.Equal(t, under, w.ID)

	m.Minimize(under)
	w, _ = m.WindowAt(6, 6)
	assert.Equal(t, over, w.ID)

	_, ok = m.WindowAt(200, 200)
	assert.False(t, ok)
}

func TestWindowsSortedByZ(t *testing.T) {
	m := newTestManager(t)
	w1, _ := m.OpenApp("notes", nil, "")
	w2, _ := m.OpenApp("notes", nil, "")
	w3, _ := m.OpenApp("notes", nil, "")
	m.FocusWindow(w1)

	var order []string
	for _, w := range m.Windows() {
		order = append(order, w.ID)
	}
	assert.Equal(t, []string{w2, w3, w1}, order)

	order = order[:0]
	for _, w := range m.WindowsByCreation() {
		order = append(order, w.ID)
	}
	assert.Equal(t, []string{w1, w2, w3}, order)
}

func TestListenersSeeEvents(t *testing.T) {
	m := newTestManager(t)
	var got []EventType
	m.Subscribe(func(ev Event) { got = append(got, ev.Type) })

	w1, _ := m.OpenApp("notes", nil, "")
	w2, _ := m.OpenApp("notes", nil, "")
	m.MoveWindow(w2, 1, 0)
	m.ResizeWindow(w2, 50, 20)
	m.Minimize(w2)
	m.Restore(w2)
	m.CloseWindow(w1)

	assert.Equal(t, []EventType{
		EventOpened, EventFocused,
		EventOpened, EventFocused,
		EventMoved,
		EventResized,
		EventMinimized, EventFocused,
		EventRestored, EventFocused,
		EventClosed,
	}, got)
}

func TestEventsCarrySettledFocus(t *testing.T) {
	m := newTestManager(t)
	first, _ := m.OpenApp("notes", nil, "")

	focusedIn := make(map[EventType]bool)
	m.Subscribe(func(ev Event) {
		if ev.Type != EventFocused {
			focusedIn[ev.Type] = ev.Window.Focused
		}
	})
	second, _ := m.OpenApp("notes", nil, "")
	m.Minimize(second)
	m.Restore(second)
	m.Maximize(first, geom.Rect{Width: 80, Height: 22})

	assert.True(t, focusedIn[EventOpened])
	assert.False(t, focusedIn[EventMinimized])
	assert.True(t, focusedIn[EventRestored])
	assert.True(t, focusedIn[EventMaximized])
}

func TestSnapshotPropsAreCopies(t *testing.T) {
	m := newTestManager(t)
	id, _ := m.OpenApp("notes", registry.Props{"text": "hello"}, "")

	w, _ := m.Window(id)
	w.Props["text"] = "changed"

	w, _ = m.Window(id)
	assert.Equal(t, "hello", w.Props["text"])
}

func TestClosedEventCarriesClosedState(t *testing.T) {
	m := newTestManager(t)
	var closed Window
	m.Subscribe(func(ev Event) {
		if ev.Type == EventClosed {
			closed = ev.Window
		}
	})
	id, _ := m.OpenApp("notes", nil, "")
	m.CloseWindow(id)

	assert.Equal(t, id, closed.ID)
	assert.Equal(t, Closed, closed.State)
	assert.False(t, closed.Focused)
}

func TestRandomOperationsKeepInvariants(t *testing.T) {
	m := newTestManager(t, WithMinSize(geom.Size{Width: 12, Height: 4}))
	rng := rand.New(rand.NewSource(42))
	apps := []string{"notes", "clock", "launcher", "nonexistent"}
	var ids []string

	pick := func() string {
		if len(ids) == 0 || rng.Intn(10) == 0 {
			return "stale"
		}
		return ids[rng.Intn(len(ids))]
	}

	for i := 0; i < 2000; i++ {
		switch rng.Intn(9) {
		case 0, 1:
			id, err := m.OpenApp(apps[rng.Intn(len(apps))], nil, "")
			if err == nil {
				ids = append(ids, id)
			}
		case 2:
			m.CloseWindow(pick())
		case 3:
			m.FocusWindow(pick())
		case 4:
			m.MoveWindow(pick(), rng.Intn(11)-5, rng.Intn(11)-5)
		case 5:
			m.ResizeWindow(pick(), rng.Intn(60)-10, rng.Intn(30)-10)
		case 6:
			m.Minimize(pick())
		case 7:
			m.Restore(pick())
		case 8:
			m.ToggleMaximize(pick(), geom.Rect{Width: 80, Height: 24})
		}
		checkInvariants(t, m)
	}
}
