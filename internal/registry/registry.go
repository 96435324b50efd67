// Package registry maps app identifiers to the manifests and factories that
// build them. The window manager resolves every open request through it.
package registry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/oriaxos/oriax/internal/geom"
)

// ErrUnknownApp is matched by every *UnknownAppError via errors.Is.
var ErrUnknownApp = errors.New("unknown app")

// ErrDuplicateApp is returned when an app id is registered twice.
var ErrDuplicateApp = errors.New("app already registered")

// UnknownAppError reports an open request for an app id nobody registered.
type UnknownAppError struct {
	AppID string
}

func (e *UnknownAppError) Error() string {
	return fmt.Sprintf("unknown app %q", e.AppID)
}

// Is makes errors.Is(err, ErrUnknownApp) succeed.
func (e *UnknownAppError) Is(target error) bool {
	return target == ErrUnknownApp
}

// Factory builds a fresh app instance from the props the window was opened with.
type Factory func(props Props) App

// Manifest describes one registered app.
type Manifest struct {
	ID          string
	Title       string
	Description string
	Icon        string

	// Geometry is the default window rectangle. A zero X and Y lets the
	// window manager cascade the window from the top-left corner.
	Geometry geom.Rect

	// SingleInstance makes a second open focus the existing window instead
	// of creating a new one.
	SingleInstance bool

	New Factory
}

// Registry is a static app table. Register everything before the shell
// starts; lookups are then safe from any number of sessions.
type Registry struct {
	manifests map[string]Manifest
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{manifests: make(map[string]Manifest)}
}

// Register adds a manifest. The id must be non-empty and unused, and the
// manifest must carry a factory.
func (r *Registry) Register(m Manifest) error {
	if m.ID == "" {
		return errors.New("app manifest has no id")
	}
	if m.New == nil {
		return fmt.Errorf("app %q has no factory", m.ID)
	}
	if _, exists := r.manifests[m.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateApp, m.ID)
	}
	if m.Title == "" {
		m.Title = m.ID
	}
	r.manifests[m.ID] = m
	return nil
}

// MustRegister is Register for built-in apps, where a failure is a programming error.
func (r *Registry) MustRegister(m Manifest) {
	if err := r.Register(m); err != nil {
		panic(err)
	}
}

// Resolve looks up an app id. It never mutates the registry.
func (r *Registry) Resolve(appID string) (Manifest, error) {
	m, ok := r.manifests[appID]
	if !ok {
		return Manifest{}, &UnknownAppError{AppID: appID}
	}
	return m, nil
}

// Manifests returns every registered manifest sorted by id.
func (r *Registry) Manifests() []Manifest {
	out := make([]Manifest, 0, len(r.manifests))
	for _, m := range r.manifests {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Override replaces the default title and size of a registered app. Zero
// values leave the corresponding field alone.
func (r *Registry) Override(appID, title string, width, height int) error {
	m, ok := r.manifests[appID]
	if !ok {
		return &UnknownAppError{AppID: appID}
	}
	if title != "" {
		m.Title = title
	}
	if width > 0 {
		m.Geometry.Width = width
	}
	if height > 0 {
		m.Geometry.Height = height
	}
	r.manifests[appID] = m
	return nil
}
