package scene

import (
	"image/color"

	"github.com/san-kum/scisim/internal/surface"
)

// Palette is the colour set a frame is drawn with. Names match the
// terminal themes so one setting drives both.
type Palette struct {
	Name       string
	Background color.RGBA
	Grid       color.RGBA
	Text       color.RGBA
	Muted      color.RGBA
	Primary    color.RGBA
	Secondary  color.RGBA
	Accent     color.RGBA
	North      color.RGBA
	South      color.RGBA
	Wire       color.RGBA
	Success    color.RGBA
	Warning    color.RGBA
	Error      color.RGBA
}

var (
	PaletteCyberpunk = Palette{
		Name:       "cyberpunk",
		Background: surface.Hex("#0a0a12"),
		Grid:       surface.Hex("#1c1c2c"),
		Text:       surface.Hex("#ffffff"),
		Muted:      surface.Hex("#666688"),
		Primary:    surface.Hex("#ff00ff"),
		Secondary:  surface.Hex("#00ffff"),
		Accent:     surface.Hex("#ffff00"),
		North:      surface.Hex("#ff3355"),
		South:      surface.Hex("#3388ff"),
		Wire:       surface.Hex("#c8c8d8"),
		Success:    surface.Hex("#00ff88"),
		Warning:    surface.Hex("#ff8800"),
		Error:      surface.Hex("#ff0033"),
	}

	PaletteRetro = Palette{
		Name:       "retro",
		Background: surface.Hex("#001100"),
		Grid:       surface.Hex("#003300"),
		Text:       surface.Hex("#00ff00"),
		Muted:      surface.Hex("#005500"),
		Primary:    surface.Hex("#00ff00"),
		Secondary:  surface.Hex("#00cc00"),
		Accent:     surface.Hex("#88ff88"),
		North:      surface.Hex("#aaff00"),
		South:      surface.Hex("#00aa55"),
		Wire:       surface.Hex("#00dd00"),
		Success:    surface.Hex("#88ff88"),
		Warning:    surface.Hex("#ffff00"),
		Error:      surface.Hex("#ff0000"),
	}

	PaletteMinimal = Palette{
		Name:       "minimal",
		Background: surface.Hex("#000000"),
		Grid:       surface.Hex("#1a1a1a"),
		Text:       surface.Hex("#ffffff"),
		Muted:      surface.Hex("#888888"),
		Primary:    surface.Hex("#ffffff"),
		Secondary:  surface.Hex("#cccccc"),
		Accent:     surface.Hex("#0088ff"),
		North:      surface.Hex("#ee3333"),
		South:      surface.Hex("#3366ee"),
		Wire:       surface.Hex("#bbbbbb"),
		Success:    surface.Hex("#00ff00"),
		Warning:    surface.Hex("#ffaa00"),
		Error:      surface.Hex("#ff0000"),
	}

	PaletteOcean = Palette{
		Name:       "ocean",
		Background: surface.Hex("#001a33"),
		Grid:       surface.Hex("#0a2a4a"),
		Text:       surface.Hex("#e0f0ff"),
		Muted:      surface.Hex("#4488aa"),
		Primary:    surface.Hex("#0077be"),
		Secondary:  surface.Hex("#00a8cc"),
		Accent:     surface.Hex("#ffd700"),
		North:      surface.Hex("#ff6655"),
		South:      surface.Hex("#55aaff"),
		Wire:       surface.Hex("#a0c8e8"),
		Success:    surface.Hex("#00ff88"),
		Warning:    surface.Hex("#ffcc00"),
		Error:      surface.Hex("#ff4444"),
	}

	PaletteSunset = Palette{
		Name:       "sunset",
		Background: surface.Hex("#2d1b2e"),
		Grid:       surface.Hex("#3d2b3e"),
		Text:       surface.Hex("#fff5f5"),
		Muted:      surface.Hex("#8b6b8c"),
		Primary:    surface.Hex("#ff6b6b"),
		Secondary:  surface.Hex("#feca57"),
		Accent:     surface.Hex("#ff9ff3"),
		North:      surface.Hex("#ff4757"),
		South:      surface.Hex("#48dbfb"),
		Wire:       surface.Hex("#e8d0d8"),
		Success:    surface.Hex("#5fd068"),
		Warning:    surface.Hex("#ffc048"),
		Error:      surface.Hex("#ff4757"),
	}

	Palettes = []Palette{PaletteCyberpunk, PaletteRetro, PaletteMinimal, PaletteOcean, PaletteSunset}
)

// GetPalette returns a palette by name, falling back to cyberpunk.
func GetPalette(name string) Palette {
	for _, p := range Palettes {
		if p.Name == name {
			return p
		}
	}
	return PaletteCyberpunk
}
