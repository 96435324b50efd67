package app

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/oriaxos/oriax/internal/config"
	"github.com/oriaxos/oriax/internal/geom"
	"github.com/oriaxos/oriax/internal/pointer"
	"github.com/oriaxos/oriax/internal/theme"
)

// Region is the part of a window a screen cell belongs to.
type Region int

const (
	RegionNone Region = iota
	RegionContent
	RegionTitle
	RegionBorder
	RegionMinimize
	RegionMaximize
	RegionClose
)

// Hit is the result of a window hit test. Edge is set for RegionBorder.
type Hit struct {
	Region Region
	Edge   pointer.Edge
}

// The title bar ends in " _ □ × " before the top-right corner.
const buttonsWidth = 7

// buttonsVisible reports whether a window of the given width draws its
// title bar buttons.
func buttonsVisible(width int) bool {
	return !config.HideWindowButtons && width >= buttonsWidth+6
}

// HitTest classifies (x, y) against a window's outer rectangle. The title
// row drags, its corners and the other three sides resize.
func HitTest(g geom.Rect, x, y int) Hit {
	if !g.Contains(x, y) {
		return Hit{}
	}
	left, right := x == g.X, x == g.Right()
	switch {
	case y == g.Y:
		if left {
			return Hit{RegionBorder, pointer.EdgeTop | pointer.EdgeLeft}
		}
		if right {
			return Hit{RegionBorder, pointer.EdgeTop | pointer.EdgeRight}
		}
		if buttonsVisible(g.Width) {
			switch x {
			case g.Right() - 2:
				return Hit{Region: RegionClose}
			case g.Right() - 4:
				return Hit{Region: RegionMaximize}
			case g.Right() - 6:
				return Hit{Region: RegionMinimize}
			}
		}
		return Hit{Region: RegionTitle}
	case y == g.Bottom():
		e := pointer.EdgeBottom
		if left {
			e |= pointer.EdgeLeft
		} else if right {
			e |= pointer.EdgeRight
		}
		return Hit{RegionBorder, e}
	case left:
		return Hit{RegionBorder, pointer.EdgeLeft}
	case right:
		return Hit{RegionBorder, pointer.EdgeRight}
	}
	return Hit{Region: RegionContent}
}

// frame draws a window: title bar, side borders around content and the
// bottom border. Content lines are cut or padded to the inner width so
// the result is exactly width x height cells.
func frame(title, content string, width, height int, border color.Color) string {
	b := config.GetBorderForStyle()
	bs := lipgloss.NewStyle().Foreground(border)
	inner := max(width-2, 0)

	var sb strings.Builder
	sb.WriteString(titleBar(b, title, width, border))

	lines := strings.Split(content, "\n")
	for i := range max(height-2, 0) {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		sb.WriteByte('\n')
		sb.WriteString(bs.Render(b.Left))
		sb.WriteString(padCells(line, inner))
		sb.WriteString(bs.Render(b.Right))
	}
	if height > 1 {
		sb.WriteByte('\n')
		sb.WriteString(bs.Render(b.BottomLeft + strings.Repeat(b.Bottom, inner) + b.BottomRight))
	}
	return sb.String()
}

func titleBar(b lipgloss.Border, title string, width int, border color.Color) string {
	bs := lipgloss.NewStyle().Foreground(border)
	inner := max(width-2, 0)

	buttons := ""
	if buttonsVisible(width) {
		buttons = " " +
			lipgloss.NewStyle().Foreground(theme.ButtonMinimize()).Render(config.ButtonMinimize()) + " " +
			lipgloss.NewStyle().Foreground(theme.ButtonMaximize()).Render(config.ButtonMaximize()) + " " +
			lipgloss.NewStyle().Foreground(theme.ButtonClose()).Render(config.ButtonClose()) + " "
	}
	bw := 0
	if buttons != "" {
		bw = buttonsWidth
	}

	label := ""
	if room := inner - bw - 3; room > 0 && title != "" {
		t := ansi.Truncate(title, room, "…")
		label = bs.Render(b.Top) + " " + lipgloss.NewStyle().Bold(true).Foreground(theme.TitleFg()).Render(t) + " "
	}
	fill := max(inner-ansi.StringWidth(label)-bw, 0)

	return bs.Render(b.TopLeft) + label + bs.Render(strings.Repeat(b.Top, fill)) + buttons + bs.Render(b.TopRight)
}

// padCells fits s to exactly n cells.
func padCells(s string, n int) string {
	w := ansi.StringWidth(s)
	if w > n {
		return ansi.Truncate(s, n, "")
	}
	return s + strings.Repeat(" ", n-w)
}

// clip cuts a rendered block to the part inside the screen and returns it
// with its on-screen position.
func clip(block string, x, y, screenW, screenH int) (string, int, int) {
	lines := strings.Split(block, "\n")
	width := 0
	if len(lines) > 0 {
		width = ansi.StringWidth(lines[0])
	}
	if x+width <= 0 || x >= screenW || y+len(lines) <= 0 || y >= screenH {
		return "", max(x, 0), max(y, 0)
	}
	if y < 0 {
		lines = lines[-y:]
		y = 0
	}
	if len(lines) > screenH-y {
		lines = lines[:screenH-y]
	}
	left := max(-x, 0)
	right := min(width, screenW-x)
	if left > 0 || right < width {
		for i, l := range lines {
			lines[i] = ansi.Cut(l, left, right)
		}
	}
	return strings.Join(lines, "\n"), max(x, 0), y
}
