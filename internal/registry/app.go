package registry

import (
	"errors"
	"fmt"
	"maps"
	"strconv"
	"time"
)

// ErrNoOpener is returned by Context.OpenApp when the app was rendered
// outside a shell.
var ErrNoOpener = errors.New("no shell to open apps in")

// Props is the opaque configuration an app is opened with. The window
// manager stores it and hands it back; only the app reads it.
type Props map[string]any

// Clone returns a shallow copy, so later writes by the caller never reach
// an open window.
func (p Props) Clone() Props {
	if p == nil {
		return nil
	}
	return maps.Clone(p)
}

// String returns the value at key formatted as a string, or fallback.
func (p Props) String(key, fallback string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return fallback
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int returns the value at key as an int, or fallback when it is missing
// or not numeric.
func (p Props) Int(key string, fallback int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// OpenFunc opens an app in the shell that rendered the caller and returns
// the new window id.
type OpenFunc func(appID string, props Props) (string, error)

// Context is what an app sees when it renders. It is rebuilt for every frame.
type Context struct {
	WindowID string
	Props    Props
	Width    int
	Height   int
	Focused  bool

	Open OpenFunc
}

// OpenApp asks the owning shell to open another app.
func (c Context) OpenApp(appID string, props Props) (string, error) {
	if c.Open == nil {
		return "", ErrNoOpener
	}
	return c.Open(appID, props)
}

// App is a renderable unit hosted inside a window.
type App interface {
	View(ctx Context) string
}

// KeyHandler is implemented by apps that accept keyboard input. It reports
// whether the key was consumed.
type KeyHandler interface {
	HandleKey(key string, ctx Context) bool
}

// Ticker is implemented by apps that refresh on the shell clock.
type Ticker interface {
	Tick(now time.Time)
}
