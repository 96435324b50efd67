package app

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/oriaxos/oriax/internal/config"
	"github.com/oriaxos/oriax/internal/geom"
	"github.com/oriaxos/oriax/internal/pointer"
	"github.com/oriaxos/oriax/internal/registry"
	"github.com/oriaxos/oriax/internal/script"
	"github.com/oriaxos/oriax/internal/wm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoApp struct {
	keys  []string
	ticks int
}

func (a *echoApp) View(ctx registry.Context) string {
	return "echo " + strings.Join(a.keys, "")
}

func (a *echoApp) HandleKey(key string, _ registry.Context) bool {
	if key == "boom" {
		panic("bad key")
	}
	a.keys = append(a.keys, key)
	return true
}

func (a *echoApp) Tick(time.Time) { a.ticks++ }

type openerApp struct{ opened string }

func (a *openerApp) View(registry.Context) string { return "opener" }

func (a *openerApp) HandleKey(_ string, ctx registry.Context) bool {
	id, err := ctx.OpenApp("echo", registry.Props{"from": ctx.WindowID})
	if err == nil {
		a.opened = id
	}
	return true
}

type brokenApp struct{}

func (brokenApp) View(registry.Context) string { panic("render failed") }

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	reg.MustRegister(registry.Manifest{
		ID: "echo", Title: "Echo",
		Geometry: geom.Rect{Width: 30, Height: 8},
		New:      func(registry.Props) registry.App { return &echoApp{} },
	})
	reg.MustRegister(registry.Manifest{
		ID: "opener", Title: "Opener",
		Geometry: geom.Rect{Width: 20, Height: 6},
		New:      func(registry.Props) registry.App { return &openerApp{} },
	})
	reg.MustRegister(registry.Manifest{
		ID: "broken", Title: "Broken",
		Geometry: geom.Rect{Width: 20, Height: 6},
		New:      func(registry.Props) registry.App { return brokenApp{} },
	})
	reg.MustRegister(registry.Manifest{
		ID: "dud", Title: "Dud",
		Geometry: geom.Rect{Width: 20, Height: 6},
		New:      func(registry.Props) registry.App { panic("no start") },
	})
	return reg
}

func newShell(t *testing.T, opts ...Option) *Shell {
	t.Helper()
	config.TaskbarPosition = "bottom"
	config.HideWindowButtons = false
	config.ShowClock = true
	t.Cleanup(func() {
		config.TaskbarPosition = "bottom"
		config.ShowClock = true
	})
	opts = append([]Option{WithSize(100, 30)}, opts...)
	return New(testRegistry(t), nil, opts...)
}

func TestHitTest(t *testing.T) {
	g := geom.Rect{X: 10, Y: 5, Width: 20, Height: 8}

	tests := []struct {
		name string
		x, y int
		want Hit
	}{
		{"outside", 9, 5, Hit{}},
		{"title", 15, 5, Hit{Region: RegionTitle}},
		{"top left corner", 10, 5, Hit{RegionBorder, pointer.EdgeTop | pointer.EdgeLeft}},
		{"top right corner", 29, 5, Hit{RegionBorder, pointer.EdgeTop | pointer.EdgeRight}},
		{"close", 27, 5, Hit{Region: RegionClose}},
		{"maximize", 25, 5, Hit{Region: RegionMaximize}},
		{"minimize", 23, 5, Hit{Region: RegionMinimize}},
		{"bottom", 15, 12, Hit{RegionBorder, pointer.EdgeBottom}},
		{"bottom right", 29, 12, Hit{RegionBorder, pointer.EdgeBottom | pointer.EdgeRight}},
		{"bottom left", 10, 12, Hit{RegionBorder, pointer.EdgeBottom | pointer.EdgeLeft}},
		{"left", 10, 8, Hit{RegionBorder, pointer.EdgeLeft}},
		{"right", 29, 8, Hit{RegionBorder, pointer.EdgeRight}},
		{"content", 15, 8, Hit{Region: RegionContent}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HitTest(g, tt.x, tt.y))
		})
	}
}

func TestHitTestHiddenButtons(t *testing.T) {
	config.HideWindowButtons = true
	t.Cleanup(func() { config.HideWindowButtons = false })

	g := geom.Rect{X: 0, Y: 0, Width: 20, Height: 5}
	assert.Equal(t, Hit{Region: RegionTitle}, HitTest(g, 17, 0))
}

func TestFrameHasExactSize(t *testing.T) {
	for _, size := range []geom.Size{{Width: 16, Height: 4}, {Width: 40, Height: 10}} {
		out := frame("A rather long window title", "hello\nworld", size.Width, size.Height, lipgloss.NoColor{})
		lines := strings.Split(out, "\n")
		require.Len(t, lines, size.Height)
		for i, line := range lines {
			assert.Equal(t, size.Width, ansi.StringWidth(line), "line %d of %dx%d", i, size.Width, size.Height)
		}
	}
}

func TestClipOffscreen(t *testing.T) {
	block := "abcd\nefgh\nijkl"

	out, x, y := clip(block, -2, -1, 10, 10)
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
	assert.Equal(t, "gh\nkl", ansi.Strip(out))

	out, _, _ = clip(block, 8, 0, 10, 10)
	assert.Equal(t, "ab\nef\nij", ansi.Strip(out))
}

func TestOpenAppInstantiates(t *testing.T) {
	s := newShell(t)

	id, err := s.OpenApp("echo", nil)
	require.NoError(t, err)
	_, ok := s.Instance(id)
	assert.True(t, ok)

	_, err = s.OpenApp("ghost", nil)
	assert.ErrorIs(t, err, registry.ErrUnknownApp)
	assert.Equal(t, 1, s.WM.Len())

	s.WM.CloseWindow(id)
	_, ok = s.Instance(id)
	assert.False(t, ok)
}

func TestAppOpensAppThroughContext(t *testing.T) {
	s := newShell(t)
	openerID, err := s.OpenApp("opener", nil)
	require.NoError(t, err)

	assert.True(t, s.SendKey("x"))

	a, _ := s.Instance(openerID)
	child := a.(*openerApp).opened
	require.NotEmpty(t, child)
	w, ok := s.WM.Window(child)
	require.True(t, ok)
	assert.Equal(t, "echo", w.AppID)
	assert.Equal(t, openerID, w.Props["from"])
	assert.Equal(t, child, s.WM.FocusedID())
}

func TestSendKeyAndTick(t *testing.T) {
	s := newShell(t)
	id, _ := s.OpenApp("echo", nil)

	assert.True(t, s.SendKey("a"))
	assert.True(t, s.SendKey("b"))
	s.Tick(time.Now())

	a, _ := s.Instance(id)
	e := a.(*echoApp)
	assert.Equal(t, []string{"a", "b"}, e.keys)
	assert.Equal(t, 1, e.ticks)

	s.WM.Minimize(id)
	assert.False(t, s.SendKey("c"), "no focused window")
}

func TestAppPanicsAreContained(t *testing.T) {
	s := newShell(t)

	dud, err := s.OpenApp("dud", nil)
	require.NoError(t, err)
	msg, failed := s.Failure(dud)
	require.True(t, failed)
	assert.Contains(t, msg, "start")

	echo, _ := s.OpenApp("echo", nil)
	assert.True(t, s.SendKey("boom"))
	msg, failed = s.Failure(echo)
	require.True(t, failed)
	assert.Contains(t, msg, "bad key")
	assert.False(t, s.SendKey("a"), "crashed app no longer receives keys")

	broken, _ := s.OpenApp("broken", nil)
	w, _ := s.WM.Window(broken)
	out := s.renderApp(w)
	assert.Contains(t, out, "render failed")

	assert.Equal(t, 3, s.WM.Len(), "crashed windows stay open")
	assert.NotPanics(t, func() { s.GetCanvas().Render() })
}

func TestTaskbarLayoutAndClick(t *testing.T) {
	s := newShell(t)
	a, _ := s.OpenApp("echo", nil)
	b, _ := s.OpenApp("opener", nil)

	items := s.TaskbarItems()
	require.Len(t, items, 3)
	assert.Empty(t, items[0].WindowID, "mode pill first")
	assert.Equal(t, a, items[1].WindowID)
	assert.Equal(t, b, items[2].WindowID)
	for i := 1; i < len(items); i++ {
		assert.Greater(t, items[i].X0, items[i-1].X1-1)
	}

	it, ok := s.TaskbarItemAt(items[1].X0)
	require.True(t, ok)
	assert.Equal(t, a, it.WindowID)

	// unfocused: focus
	s.TaskbarClick(a)
	assert.Equal(t, a, s.WM.FocusedID())
	// focused: minimize
	s.TaskbarClick(a)
	w, _ := s.WM.Window(a)
	assert.Equal(t, wm.Minimized, w.State)
	assert.Equal(t, b, s.WM.FocusedID())
	// minimized: restore
	s.TaskbarClick(a)
	w, _ = s.WM.Window(a)
	assert.Equal(t, wm.Normal, w.State)
	assert.Equal(t, a, s.WM.FocusedID())
}

func TestTaskbarRendersOnItsRow(t *testing.T) {
	s := newShell(t, WithSessionName("ada"))
	_, _ = s.OpenApp("echo", nil)

	lines := strings.Split(ansi.Strip(s.GetCanvas().Render()), "\n")
	require.Len(t, lines, s.Height)
	bar := lines[config.TaskbarRow(s.Height)]
	assert.Contains(t, bar, strings.TrimSpace(config.ModeLabel(false)))
	assert.Contains(t, bar, "Echo")
	assert.Contains(t, bar, "ada")
}

func TestModeSwitch(t *testing.T) {
	s := newShell(t)
	assert.False(t, s.EnterAppMode(), "nothing focused")
	assert.Equal(t, WindowMode, s.Mode)

	id, _ := s.OpenApp("echo", nil)
	assert.True(t, s.EnterAppMode())
	assert.Equal(t, AppMode, s.Mode)

	s.WM.CloseWindow(id)
	assert.Equal(t, WindowMode, s.Mode, "closing the last window leaves app mode")
}

func TestLogRingIsCapped(t *testing.T) {
	s := newShell(t)
	for i := range config.MaxLogMessages + 25 {
		s.LogInfo("line %d", i)
	}
	require.Len(t, s.LogMessages, config.MaxLogMessages)
	assert.Equal(t, "line 25", s.LogMessages[0].Message)
	assert.Equal(t, s.maxLogScroll(), s.LogScrollOffset, "follows the tail")

	s.ScrollLogs(-1000)
	assert.Zero(t, s.LogScrollOffset)
	s.ScrollLogs(1000)
	assert.Equal(t, s.maxLogScroll(), s.LogScrollOffset)
}

func TestResizeRefitsAndClamps(t *testing.T) {
	s := newShell(t)
	maxed, _ := s.OpenApp("echo", nil)
	s.WM.Maximize(maxed, s.WorkArea())
	far, _ := s.OpenApp("opener", nil)
	s.WM.MoveWindow(far, 70, 15)

	_, _ = s.Update(tea.WindowSizeMsg{Width: 60, Height: 20})

	w, _ := s.WM.Window(maxed)
	assert.Equal(t, s.WorkArea(), w.Geometry)
	assert.Equal(t, far, s.WM.FocusedID(), "refit keeps stacking")

	f, _ := s.WM.Window(far)
	area := s.WorkArea()
	assert.Less(t, f.Geometry.X, area.X+area.Width)
	assert.Less(t, f.Geometry.Y, area.Y+area.Height)

	_, _ = s.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	w, _ = s.WM.Window(maxed)
	assert.Equal(t, s.WorkArea(), w.Geometry)
}

func TestClampRecoversWindowLeftOfScreen(t *testing.T) {
	s := newShell(t)
	id, _ := s.OpenApp("echo", nil)
	w, _ := s.WM.Window(id)
	s.WM.MoveWindow(id, -(w.Geometry.X + w.Geometry.Width + 5), 0)

	s.ClampWindowsToView()

	w, _ = s.WM.Window(id)
	assert.Equal(t, s.WorkArea().X, w.Geometry.X)
}

func TestStartupScript(t *testing.T) {
	cmds, err := script.ParseString("Open echo\nOpen opener\nMinimize $1\nExpect count 2")
	require.NoError(t, err)

	s := newShell(t, WithStartupScript(cmds))
	assert.Equal(t, 2, s.WM.Len())
	ws := s.WM.WindowsByCreation()
	assert.Equal(t, wm.Minimized, ws[0].State)
	_, ok := s.Instance(ws[0].ID)
	assert.True(t, ok, "scripted windows get app instances")
}

func TestStartupScriptFailureIsLogged(t *testing.T) {
	cmds, err := script.ParseString("Open echo\nExpect count 5")
	require.NoError(t, err)

	s := newShell(t, WithStartupScript(cmds))
	var errs []string
	for _, m := range s.LogMessages {
		if m.Level == "ERROR" {
			errs = append(errs, m.Message)
		}
	}
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "startup script")
}

func TestViewAfterQuit(t *testing.T) {
	s := newShell(t)
	_, _ = s.OpenApp("echo", nil)
	v := s.View()
	assert.True(t, v.AltScreen)
	assert.Equal(t, tea.MouseModeCellMotion, v.MouseMode)
	assert.Contains(t, ansi.Strip(s.GetCanvas().Render()), "echo")

	s.Quit()
	assert.True(t, s.quitting)
	assert.False(t, s.View().AltScreen)
}

func TestInputHandlerIsCalled(t *testing.T) {
	s := newShell(t)
	var got tea.Msg
	SetInputHandler(func(msg tea.Msg, sh *Shell) (tea.Model, tea.Cmd) {
		got = msg
		return sh, nil
	})
	t.Cleanup(func() { SetInputHandler(nil) })

	key := tea.KeyPressMsg{Code: 'x', Text: "x"}
	_, _ = s.Update(key)
	assert.Equal(t, key, got)
}
