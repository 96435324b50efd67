package apps

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/oriaxos/oriax/internal/registry"
	"github.com/oriaxos/oriax/internal/theme"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Sample is one CPU and memory reading in percent.
type Sample struct {
	CPU    float64
	Memory float64
	At     time.Time
}

// Sampler takes a reading.
type Sampler func() (Sample, error)

// HostSampler reads the host through gopsutil. CPU usage is measured since
// the previous call, so the first reading after start may be zero.
func HostSampler() (Sample, error) {
	var s Sample
	pct, err := cpu.Percent(0, false)
	if err != nil {
		return s, fmt.Errorf("cpu: %w", err)
	}
	if len(pct) > 0 {
		s.CPU = pct[0]
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		return s, fmt.Errorf("memory: %w", err)
	}
	s.Memory = vm.UsedPercent
	s.At = time.Now()
	return s, nil
}

// Sysmon graphs CPU and memory usage, refreshed on every tick.
type Sysmon struct {
	sample  Sampler
	last    Sample
	history []float64
	err     error
}

const sysmonHistory = 64

// NewSysmon returns a monitor over sampler, or over the host when nil.
func NewSysmon(sampler Sampler) *Sysmon {
	if sampler == nil {
		sampler = HostSampler
	}
	return &Sysmon{sample: sampler}
}

// Tick takes a new reading.
func (s *Sysmon) Tick(time.Time) {
	sample, err := s.sample()
	s.err = err
	if err != nil {
		return
	}
	s.last = sample
	s.history = append(s.history, sample.CPU)
	if len(s.history) > sysmonHistory {
		s.history = s.history[len(s.history)-sysmonHistory:]
	}
}

// Last returns the most recent reading.
func (s *Sysmon) Last() Sample {
	return s.last
}

// View renders usage bars and a CPU sparkline.
func (s *Sysmon) View(ctx registry.Context) string {
	if s.err != nil {
		return fit([]string{
			lipgloss.NewStyle().Foreground(theme.AppError()).Render(s.err.Error()),
		}, ctx.Width, ctx.Height)
	}
	label := lipgloss.NewStyle().Foreground(theme.HelpKey())
	barWidth := max(ctx.Width-12, 4)

	lines := []string{
		label.Render("CPU ") + bar(s.last.CPU, barWidth) + fmt.Sprintf(" %5.1f%%", s.last.CPU),
		label.Render("MEM ") + bar(s.last.Memory, barWidth) + fmt.Sprintf(" %5.1f%%", s.last.Memory),
		"",
		sparkline(s.history, max(ctx.Width, 1)),
	}
	return fit(lines, ctx.Width, ctx.Height)
}

func bar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	filled = min(max(filled, 0), width)
	fill := lipgloss.NewStyle().Foreground(theme.ModeApp())
	if pct >= 80 {
		fill = fill.Foreground(theme.AppError())
	}
	return fill.Render(strings.Repeat("█", filled)) + strings.Repeat("░", width-filled)
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

func sparkline(values []float64, width int) string {
	if len(values) > width {
		values = values[len(values)-width:]
	}
	var sb strings.Builder
	for _, v := range values {
		i := int(v / 100 * float64(len(sparkRunes)-1))
		i = min(max(i, 0), len(sparkRunes)-1)
		sb.WriteRune(sparkRunes[i])
	}
	return sb.String()
}
