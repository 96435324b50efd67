package apps

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/oriaxos/oriax/internal/config"
	"github.com/oriaxos/oriax/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builtins(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	require.NoError(t, RegisterBuiltins(reg, nil))
	return reg
}

func TestRegisterBuiltins(t *testing.T) {
	reg := builtins(t)

	var ids []string
	for _, m := range reg.Manifests() {
		ids = append(ids, m.ID)
		assert.NotNil(t, m.New(nil), "factory for %s", m.ID)
		assert.Positive(t, m.Geometry.Width, m.ID)
		assert.Positive(t, m.Geometry.Height, m.ID)
	}
	assert.Equal(t, []string{ClockID, HelpID, LauncherID, NotesID, SysmonID}, ids)

	assert.ErrorIs(t, RegisterBuiltins(reg, nil), registry.ErrDuplicateApp)
}

func TestApplyConfig(t *testing.T) {
	reg := builtins(t)
	unknown := ApplyConfig(reg, map[string]config.AppConfig{
		NotesID: {Title: "Scratch", Width: 60},
		"ghost": {Width: 10},
	})
	assert.Equal(t, []string{"ghost"}, unknown)

	m, err := reg.Resolve(NotesID)
	require.NoError(t, err)
	assert.Equal(t, "Scratch", m.Title)
	assert.Equal(t, 60, m.Geometry.Width)
	assert.Equal(t, 14, m.Geometry.Height)
}

func TestLauncherOpensThroughContext(t *testing.T) {
	reg := builtins(t)
	l := NewLauncher(reg)

	var opened []string
	ctx := registry.Context{
		Width: 40, Height: 10, Focused: true,
		Open: func(appID string, _ registry.Props) (string, error) {
			opened = append(opened, appID)
			return "abcdef0123", nil
		},
	}

	// Entries exclude the launcher itself: clock, help, notes, sysmon.
	assert.Equal(t, ClockID, l.Selected())
	assert.True(t, l.HandleKey("down", ctx))
	assert.True(t, l.HandleKey("down", ctx))
	assert.Equal(t, NotesID, l.Selected())
	assert.True(t, l.HandleKey("enter", ctx))
	assert.Equal(t, []string{NotesID}, opened)
	assert.Contains(t, l.View(ctx), "opened notes")

	assert.True(t, l.HandleKey("G", ctx))
	assert.Equal(t, SysmonID, l.Selected())
	assert.True(t, l.HandleKey("down", ctx))
	assert.Equal(t, SysmonID, l.Selected())
	assert.False(t, l.HandleKey("x", ctx))
}

func TestLauncherWithoutShell(t *testing.T) {
	l := NewLauncher(builtins(t))
	ctx := registry.Context{Width: 40, Height: 10}
	l.HandleKey("enter", ctx)
	assert.Contains(t, l.View(ctx), registry.ErrNoOpener.Error())
}

func TestNotesEditing(t *testing.T) {
	n := NewNotes(registry.Props{"text": "hello"})
	ctx := registry.Context{Width: 20, Height: 5}

	for _, k := range []string{"space", "w", "o", "enter", "x", "backspace", "backspace", "!"} {
		n.HandleKey(k, ctx)
	}
	assert.Equal(t, "hello wo!", n.Text())
	assert.False(t, n.HandleKey("ctrl+s", ctx))
	assert.False(t, n.HandleKey("up", ctx))
}

func TestNotesViewShowsTail(t *testing.T) {
	n := NewNotes(registry.Props{"text": "1\n2\n3\n4\n5"})
	got := n.View(registry.Context{Width: 10, Height: 2})
	assert.Equal(t, "4\n5", got)
}

func TestFitTruncates(t *testing.T) {
	got := fit([]string{strings.Repeat("a", 30), "b", "c"}, 10, 2)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, 10, ansi.StringWidth(lines[0]))
}

func TestClockFormat(t *testing.T) {
	c := NewClock(registry.Props{"format": "15:04"})
	c.Tick(time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC))
	out := ansi.Strip(c.View(registry.Context{Width: 20, Height: 4}))
	assert.Contains(t, out, "09:26")
	assert.Contains(t, out, "Sat 14 Mar 2026")
}

func TestSysmonTick(t *testing.T) {
	calls := 0
	s := NewSysmon(func() (Sample, error) {
		calls++
		if calls == 3 {
			return Sample{}, errors.New("sensor gone")
		}
		return Sample{CPU: 42, Memory: 90}, nil
	})
	ctx := registry.Context{Width: 30, Height: 6}

	s.Tick(time.Now())
	s.Tick(time.Now())
	assert.Equal(t, 42.0, s.Last().CPU)
	out := ansi.Strip(s.View(ctx))
	assert.Contains(t, out, "42.0%")
	assert.Contains(t, out, "90.0%")

	s.Tick(time.Now())
	assert.Contains(t, s.View(ctx), "sensor gone")
	assert.Equal(t, 42.0, s.Last().CPU, "failed reading keeps the last sample")
}

func TestSparklineAndBar(t *testing.T) {
	assert.Equal(t, "▁█", sparkline([]float64{0, 100}, 10))
	assert.Equal(t, "█", sparkline([]float64{0, 100}, 1))
	assert.Equal(t, 10, ansi.StringWidth(bar(150, 10)))
	assert.Equal(t, 10, ansi.StringWidth(bar(-5, 10)))
}

func TestHelpScroll(t *testing.T) {
	h := NewHelp(config.NewKeybindRegistry(nil))
	ctx := registry.Context{Width: 60, Height: 3}

	first := h.View(ctx)
	assert.Contains(t, ansi.Strip(first), "Apps")

	h.HandleKey("j", ctx)
	assert.NotEqual(t, first, h.View(ctx))

	for range 500 {
		h.HandleKey("j", ctx)
	}
	assert.Len(t, strings.Split(h.View(ctx), "\n"), 3)

	h.HandleKey("g", ctx)
	assert.Equal(t, first, h.View(ctx))
	assert.False(t, h.HandleKey("q", ctx))
}
