package viz

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/scisim/internal/scene"
)

// Theme defines the colour scheme of the terminal UI. Each theme mirrors
// the scene palette of the same name, so the canvas and the panels agree.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// ThemeFrom derives a terminal theme from a scene palette.
func ThemeFrom(p scene.Palette) Theme {
	return Theme{
		Name:       p.Name,
		Primary:    hex(p.Primary),
		Secondary:  hex(p.Secondary),
		Accent:     hex(p.Accent),
		Background: hex(p.Background),
		Text:       hex(p.Text),
		Muted:      hex(p.Muted),
		Success:    hex(p.Success),
		Warning:    hex(p.Warning),
		Error:      hex(p.Error),
	}
}

// Themes lists every theme in palette order.
var Themes = func() []Theme {
	out := make([]Theme, len(scene.Palettes))
	for i, p := range scene.Palettes {
		out[i] = ThemeFrom(p)
	}
	return out
}()

// GetTheme returns a theme by name, falling back to the first.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme is the theme after name, wrapping around.
func NextTheme(name string) string {
	names := ThemeNames()
	for i, n := range names {
		if n == name {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}
