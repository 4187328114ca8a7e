package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/scisim/internal/surface"
)

// Styles are the lipgloss styles of one theme.
type Styles struct {
	Header    lipgloss.Style
	Subtitle  lipgloss.Style
	Canvas    lipgloss.Style
	Stats     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Active    lipgloss.Style
	Subtle    lipgloss.Style
	Running   lipgloss.Style
	Paused    lipgloss.Style
	Recording lipgloss.Style
	Error     lipgloss.Style
	Graph     lipgloss.Style
	Key       lipgloss.Style
	Help      lipgloss.Style
	Cursor    lipgloss.Style
	Selected  lipgloss.Style
	Dim       lipgloss.Style
	Spark     [3]lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Secondary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		Subtitle: lipgloss.NewStyle().Foreground(t.Muted),
		Canvas:   lipgloss.NewStyle().Padding(1, 2).Foreground(t.Primary),
		Stats: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(46),
		Label:     lipgloss.NewStyle().Foreground(t.Muted).Width(18),
		Value:     lipgloss.NewStyle().Foreground(t.Text),
		Active:    lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Subtle:    lipgloss.NewStyle().Foreground(t.Muted),
		Running:   lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		Paused:    lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		Recording: lipgloss.NewStyle().Bold(true).Foreground(t.Error).Blink(true),
		Error:     lipgloss.NewStyle().Foreground(t.Error),
		Graph:     lipgloss.NewStyle().Foreground(t.Secondary).Padding(1, 0),
		Key:       lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
		Help:      lipgloss.NewStyle().Foreground(t.Muted).Italic(true).MarginTop(1),
		Cursor:    lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
		Selected:  lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		Dim:       lipgloss.NewStyle().Foreground(t.Muted),
		Spark: [3]lipgloss.Style{
			lipgloss.NewStyle().Foreground(t.Error),
			lipgloss.NewStyle().Foreground(t.Warning),
			lipgloss.NewStyle().Foreground(t.Success),
		},
	}
}

// GradientText colours each rune along a gradient between two colours.
func GradientText(text string, startColor, endColor lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	start, end := surface.Hex(string(startColor)), surface.Hex(string(endColor))

	var result strings.Builder
	for i, c := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		col := surface.Mix(start, end, t)
		style := lipgloss.NewStyle().Foreground(hex(col))
		result.WriteString(style.Render(string(c)))
	}
	return result.String()
}

// ProgressBar renders a filled bar for a fraction in [0, 1].
func (s Styles) ProgressBar(percent float64, width int) string {
	if math.IsNaN(percent) {
		percent = 0
	}
	filled := int(math.Round(percent * float64(width)))
	filled = max(0, min(width, filled))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	switch {
	case percent > 0.8:
		return s.Spark[2].Render(bar)
	case percent > 0.4:
		return s.Spark[1].Render(bar)
	}
	return s.Spark[0].Render(bar)
}

// Sparkline renders values, sampled to width, as block characters.
func (s Styles) Sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := max(1, len(values)/width)
	var result strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := max(0, min(len(chars)-1, int(norm*float64(len(chars)-1))))
		band := 0
		if norm > 0.7 {
			band = 2
		} else if norm > 0.3 {
			band = 1
		}
		result.WriteString(s.Spark[band].Render(string(chars[idx])))
	}
	return result.String()
}

// Separator is a thin rule with a centred diamond.
func (s Styles) Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(0, mid-3))
	right := strings.Repeat("─", max(0, width-mid-3))
	return s.Subtle.Render(left + " ◆ " + right)
}

// KeyHints renders "key action" pairs on one line.
func (s Styles) KeyHints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(s.Key.Render(pairs[i]) + s.Subtle.Render(" "+pairs[i+1]))
	}
	return b.String()
}
