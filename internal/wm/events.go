package wm

// EventType names the mutation an Event reports.
type EventType int

const (
	EventOpened EventType = iota
	EventClosed
	EventFocused
	EventMoved
	EventResized
	EventMinimized
	EventRestored
	EventMaximized
)

func (t EventType) String() string {
	switch t {
	case EventOpened:
		return "opened"
	case EventClosed:
		return "closed"
	case EventFocused:
		return "focused"
	case EventMoved:
		return "moved"
	case EventResized:
		return "resized"
	case EventMinimized:
		return "minimized"
	case EventRestored:
		return "restored"
	case EventMaximized:
		return "maximized"
	default:
		return "unknown"
	}
}

// Event is delivered to listeners after the mutation has been applied.
type Event struct {
	Type   EventType
	Window Window
}

// Listener observes window manager mutations. Listeners run synchronously
// on the caller's goroutine and must not call back into the manager.
type Listener func(Event)

// Subscribe registers a listener for every subsequent mutation.
func (m *Manager) Subscribe(l Listener) {
	if l != nil {
		m.listeners = append(m.listeners, l)
	}
}

func (m *Manager) emit(t EventType, w *Window) {
	if len(m.listeners) == 0 {
		return
	}
	ev := Event{Type: t, Window: m.snapshot(w)}
	for _, l := range m.listeners {
		l(ev)
	}
}
