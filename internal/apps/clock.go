package apps

import (
	"time"

	"charm.land/lipgloss/v2"
	"github.com/oriaxos/oriax/internal/registry"
	"github.com/oriaxos/oriax/internal/theme"
)

const defaultClockFormat = "15:04:05"

// Clock shows the time in the "format" prop's Go layout.
type Clock struct {
	format string
	now    time.Time
}

// NewClock returns a clock set to the current time.
func NewClock(props registry.Props) *Clock {
	return &Clock{
		format: props.String("format", defaultClockFormat),
		now:    time.Now(),
	}
}

// Tick advances the clock.
func (c *Clock) Tick(now time.Time) {
	c.now = now
}

// View centers the time and date in the window.
func (c *Clock) View(ctx registry.Context) string {
	timeStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.TitleFg())
	dateStyle := lipgloss.NewStyle().Foreground(theme.TaskbarMinimized())

	body := lipgloss.JoinVertical(lipgloss.Center,
		timeStyle.Render(c.now.Format(c.format)),
		dateStyle.Render(c.now.Format("Mon 2 Jan 2006")),
	)
	if ctx.Width <= 0 || ctx.Height <= 0 {
		return body
	}
	return lipgloss.Place(ctx.Width, ctx.Height, lipgloss.Center, lipgloss.Center, body)
}
