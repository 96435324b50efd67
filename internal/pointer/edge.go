package pointer

import (
	"strings"

	"github.com/oriaxos/oriax/internal/geom"
)

// Edge is a bitmask of the window sides a resize grabs. Corners combine two bits.
type Edge uint8

const (
	EdgeTop Edge = 1 << iota
	EdgeBottom
	EdgeLeft
	EdgeRight

	EdgeTopLeft     = EdgeTop | EdgeLeft
	EdgeTopRight    = EdgeTop | EdgeRight
	EdgeBottomLeft  = EdgeBottom | EdgeLeft
	EdgeBottomRight = EdgeBottom | EdgeRight
)

// Has reports whether every bit of other is set in e.
func (e Edge) Has(other Edge) bool {
	return e&other == other
}

func (e Edge) String() string {
	if e == 0 {
		return "none"
	}
	var parts []string
	if e.Has(EdgeTop) {
		parts = append(parts, "top")
	}
	if e.Has(EdgeBottom) {
		parts = append(parts, "bottom")
	}
	if e.Has(EdgeLeft) {
		parts = append(parts, "left")
	}
	if e.Has(EdgeRight) {
		parts = append(parts, "right")
	}
	return strings.Join(parts, "-")
}

// ParseEdge parses names such as "right", "bottom-left" or "topright".
func ParseEdge(s string) (Edge, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	var e Edge
	for _, name := range []struct {
		word string
		edge Edge
	}{
		{"top", EdgeTop},
		{"bottom", EdgeBottom},
		{"left", EdgeLeft},
		{"right", EdgeRight},
	} {
		if strings.Contains(s, name.word) {
			e |= name.edge
			s = strings.Replace(s, name.word, "", 1)
		}
	}
	s = strings.Trim(s, "-_ ")
	if e == 0 || s != "" || e.Has(EdgeTop|EdgeBottom) || e.Has(EdgeLeft|EdgeRight) {
		return 0, false
	}
	return e, true
}

// QuadrantCorner returns the corner of g nearest to p. It picks the resize
// corner for a right-button drag started anywhere inside the window.
func QuadrantCorner(g geom.Rect, p geom.Point) Edge {
	mid := g.Center()
	var e Edge
	if p.X < mid.X {
		e |= EdgeLeft
	} else {
		e |= EdgeRight
	}
	if p.Y < mid.Y {
		e |= EdgeTop
	} else {
		e |= EdgeBottom
	}
	return e
}
