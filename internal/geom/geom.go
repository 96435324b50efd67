// Package geom holds the integer cell geometry shared by the window manager,
// the pointer controller and the renderer.
package geom

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// Point is a cell position on screen.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Size is a width/height pair in cells.
type Size struct {
	Width, Height int
}

// Clamp raises w and h to at least the size's dimensions.
func (s Size) Clamp(w, h int) (int, int) {
	return max(w, s.Width), max(h, s.Height)
}

// Rect is a window rectangle. X and Y are the top-left corner.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Bounds converts the rectangle to an ultraviolet rectangle.
func (r Rect) Bounds() uv.Rectangle {
	return uv.Rect(r.X, r.Y, r.Width, r.Height)
}

// Contains reports whether the cell at (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return uv.Pos(x, y).In(r.Bounds())
}

// Translate returns the rectangle moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Right returns the x coordinate of the last column.
func (r Rect) Right() int {
	return r.X + r.Width - 1
}

// Bottom returns the y coordinate of the last row.
func (r Rect) Bottom() int {
	return r.Y + r.Height - 1
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Overlaps reports whether the two rectangles share at least one cell.
func (r Rect) Overlaps(other Rect) bool {
	return r.Bounds().Overlaps(other.Bounds())
}

// Size returns the width and height of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}
