// Package gui shows one simulation in a desktop window. Ebiten drives the
// display loop; every tick fires the engine's frame host once and the
// raster is uploaded as the window contents.
package gui

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/san-kum/scisim/internal/control"
	"github.com/san-kum/scisim/internal/dynamo"
	"github.com/san-kum/scisim/internal/export"
	"github.com/san-kum/scisim/internal/scene"
	"github.com/san-kum/scisim/internal/sim"
	"github.com/san-kum/scisim/internal/surface"
)

const (
	tps       = 60
	speedStep = 0.25
	seekTicks = 50
)

// Options configure a window session.
type Options struct {
	Theme  string
	Speed  float64
	Paused bool
	// ScreenshotPath is where the p key writes a PNG.
	ScreenshotPath string
	Logger         *slog.Logger
	// Configure, when set, fills the panel right after mount.
	Configure func(*control.Panel) error
}

type App struct {
	engine *sim.Engine
	host   *sim.LoopHost
	raster *surface.Raster
	logger *slog.Logger

	selected   int
	dragging   bool
	lastX      int
	lastY      int
	showHelp   bool
	screenshot string
	message    string
}

// NewApp mounts s on an engine drawing into an 800×600 raster.
func NewApp(s scene.Simulation, opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.ScreenshotPath == "" {
		opts.ScreenshotPath = s.ID() + ".png"
	}
	a := &App{
		host:       sim.NewLoopHost(),
		raster:     surface.NewRaster(surface.Width, surface.Height),
		logger:     opts.Logger,
		screenshot: opts.ScreenshotPath,
	}
	pal := scene.PaletteCyberpunk
	if opts.Theme != "" {
		pal = scene.GetPalette(opts.Theme)
	}
	a.engine = sim.NewEngine(s, a.host, a.raster, sim.WithLogger(opts.Logger), sim.WithPalette(pal))
	a.engine.Mount()
	if opts.Configure != nil {
		if err := opts.Configure(a.engine.Panel()); err != nil {
			a.message = err.Error()
		}
		a.engine.Redraw()
	}
	if opts.Speed > 0 {
		a.engine.SetSpeed(opts.Speed)
	}
	if !opts.Paused {
		a.engine.Start()
	}
	return a
}

// Run opens the window and blocks until it closes.
func Run(s scene.Simulation, opts Options) error {
	ebiten.SetWindowSize(surface.Width, surface.Height)
	ebiten.SetWindowTitle("scisim :: " + s.Title())
	ebiten.SetTPS(tps)

	app := NewApp(s, opts)
	defer app.engine.Unmount()
	if err := ebiten.RunGame(app); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Update handles input, which only writes state or queues a repaint, then
// fires the host so every draw happens inside a frame callback.
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	a.handleKeys()
	a.handlePointer()
	a.host.Fire()
	return nil
}

func (a *App) handleKeys() {
	e := a.engine
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		e.Toggle()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			e.Panel().Reset()
			e.Redraw()
		} else {
			e.Reset()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyTab), inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		a.cycle(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		a.cycle(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		a.adjust(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		a.adjust(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		e.SetSpeed(e.State().Speed + speedStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		e.SetSpeed(e.State().Speed - speedStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		e.Seek(max(0, e.State().ElapsedTime-seekTicks*e.Simulation().BaseRate()))
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		e.Seek(e.State().ElapsedTime + seekTicks*e.Simulation().BaseRate())
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		next := scene.Palettes[0]
		for i, p := range scene.Palettes {
			if p.Name == e.Palette().Name {
				next = scene.Palettes[(i+1)%len(scene.Palettes)]
			}
		}
		e.SetPalette(next)
		e.Redraw()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		a.saveScreenshot()
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		a.showHelp = !a.showHelp
	}
}

// handlePointer orbits the camera on left drag and zooms on the wheel. The
// camera only matters for 3D scenes, so 2D scenes ignore the pointer.
func (a *App) handlePointer() {
	if !scene.Uses3D(a.engine.Simulation()) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if a.dragging {
			a.engine.DragCamera(float64(mx-a.lastX), float64(my-a.lastY))
			a.engine.Redraw()
		}
		a.dragging = true
	} else {
		a.dragging = false
	}
	a.lastX, a.lastY = mx, my

	if _, wy := ebiten.Wheel(); wy != 0 {
		a.engine.ZoomCamera(wy)
		a.engine.Redraw()
	}
}

func (a *App) cycle(dir int) {
	n := len(a.engine.Simulation().Schema())
	if n > 0 {
		a.selected = (a.selected + dir + n) % n
	}
}

func (a *App) adjust(dir int) {
	schema := a.engine.Simulation().Schema()
	if len(schema) == 0 {
		return
	}
	spec := schema[a.selected]
	panel := a.engine.Panel()
	var err error
	switch spec.Kind {
	case dynamo.KindFloat, dynamo.KindAngle:
		_, err = panel.Nudge(spec.Name, dir)
	case dynamo.KindEnum:
		_, err = panel.CycleEnum(spec.Name, dir)
	case dynamo.KindToggle:
		_, err = panel.Flip(spec.Name)
	}
	if err != nil {
		a.message = err.Error()
		return
	}
	a.engine.Redraw()
}

func (a *App) saveScreenshot() {
	if err := export.WritePNG(a.screenshot, a.raster); err != nil {
		a.logger.Error("screenshot failed", "path", a.screenshot, "error", err)
		a.message = err.Error()
		return
	}
	a.logger.Info("screenshot saved", "path", a.screenshot)
	a.message = "saved " + a.screenshot
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.WritePixels(a.raster.RGBA().Pix)

	pal := a.engine.Palette()
	face := basicfont.Face7x13
	status := "PAUSED"
	if a.engine.Running() {
		status = "RUNNING"
	}
	state := a.engine.State()
	text.Draw(screen, fmt.Sprintf("%s  speed %.2fx  t %.2f", status, state.Speed, state.ElapsedTime), face, 560, 20, pal.Muted)

	if schema := a.engine.Simulation().Schema(); len(schema) > 0 {
		spec := schema[a.selected]
		label := spec.Label
		if label == "" {
			label = spec.Name
		}
		line := fmt.Sprintf("> %s: %s  (%d/%d)", label, a.engine.Panel().Display(spec.Name), a.selected+1, len(schema))
		text.Draw(screen, line, face, 10, surface.Height-28, pal.Accent)
	}
	hint := "[space] pause  [tab] control  [<- ->] adjust  [h] help  [q] quit"
	if a.message != "" {
		hint = a.message
	}
	text.Draw(screen, hint, face, 10, surface.Height-10, pal.Muted)

	if a.showHelp {
		a.drawHelp(screen, pal.Text)
	}
}

var helpLines = []string{
	"space      pause / resume",
	"r / R      reset time / parameters",
	"tab, up/dn select control",
	"left/right adjust control",
	"- / =      speed",
	"[ / ]      seek",
	"t          next palette",
	"p          save PNG",
	"drag/wheel orbit and zoom (3D)",
	"q / esc    quit",
}

func (a *App) drawHelp(screen *ebiten.Image, c color.Color) {
	for i, l := range helpLines {
		text.Draw(screen, l, basicfont.Face7x13, 520, 60+16*i, c)
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return surface.Width, surface.Height
}
