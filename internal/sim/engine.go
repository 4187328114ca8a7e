package sim

import (
	"log/slog"

	"github.com/san-kum/scisim/internal/control"
	"github.com/san-kum/scisim/internal/dynamo"
	"github.com/san-kum/scisim/internal/scene"
	"github.com/san-kum/scisim/internal/surface"
)

// Engine binds one simulation to a control panel, a stepper and a drawing
// surface for as long as it is mounted. All methods must be called from
// the goroutine that pumps the frame host. Apart from the first frame
// painted by Mount, drawing only happens inside frame callbacks.
type Engine struct {
	sim     scene.Simulation
	host    FrameHost
	surf    surface.Surface
	logger  *slog.Logger
	palette scene.Palette

	metrics   []Metric
	observers []Observer

	panel   *control.Panel
	stepper *Stepper
	camera  dynamo.Camera
	result  dynamo.Result
	frames  int
	invalid int
	mounted bool

	// At most one repaint is queued while stopped.
	dirty      bool
	repaint    FrameID
	repaintGen uint64
}

// Option configures an Engine.
type Option func(*Engine)

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func WithPalette(p scene.Palette) Option {
	return func(e *Engine) { e.palette = p }
}

func WithMetrics(ms ...Metric) Option {
	return func(e *Engine) { e.metrics = append(e.metrics, ms...) }
}

func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

func NewEngine(sim scene.Simulation, host FrameHost, surf surface.Surface, opts ...Option) *Engine {
	e := &Engine{
		sim:     sim,
		host:    host,
		surf:    surf,
		logger:  slog.Default(),
		palette: scene.PaletteCyberpunk,
		camera:  dynamo.DefaultCamera(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Mount builds the parameter set from the schema defaults, creates a
// stopped stepper and paints the first frame.
func (e *Engine) Mount() {
	if e.mounted {
		return
	}
	e.panel = control.NewPanel(e.sim.Schema())
	e.stepper = NewStepper(e.host, e.sim.BaseRate(), e.draw)
	e.camera = dynamo.DefaultCamera()
	e.frames, e.invalid = 0, 0
	for _, m := range e.metrics {
		m.Reset()
	}
	e.mounted = true
	e.logger.Info("simulation mounted", "simulation", e.sim.ID())
	e.draw(e.stepper.State())
}

// Unmount cancels any pending frame and drops the parameter set. Nothing
// is drawn after Unmount returns.
func (e *Engine) Unmount() {
	if !e.mounted {
		return
	}
	e.cancelRepaint()
	e.stepper.Dispose()
	e.mounted = false
	e.panel = nil
	attrs := []any{"simulation", e.sim.ID(), "frames", e.frames, "invalid", e.invalid}
	for _, m := range e.metrics {
		attrs = append(attrs, m.Name(), m.Value())
	}
	e.logger.Info("simulation unmounted", attrs...)
}

func (e *Engine) Mounted() bool                { return e.mounted }
func (e *Engine) Simulation() scene.Simulation { return e.sim }
func (e *Engine) Palette() scene.Palette       { return e.palette }
func (e *Engine) SetPalette(p scene.Palette)   { e.palette = p }

// Panel is the control surface; nil while unmounted.
func (e *Engine) Panel() *control.Panel { return e.panel }

// Start resumes stepping. A queued repaint is dropped; the next tick
// draws instead.
func (e *Engine) Start() {
	if e.mounted {
		e.cancelRepaint()
		e.stepper.Start()
	}
}

func (e *Engine) Stop() {
	if e.mounted {
		e.stepper.Stop()
	}
}

// Toggle flips between running and stopped.
func (e *Engine) Toggle() {
	if !e.mounted {
		return
	}
	if e.stepper.Running() {
		e.stepper.Stop()
	} else {
		e.cancelRepaint()
		e.stepper.Start()
	}
}

// Reset zeroes elapsed time. When stopped the new state shows on the
// next frame.
func (e *Engine) Reset() {
	if !e.mounted {
		return
	}
	e.stepper.Reset()
	e.invalidate()
}

func (e *Engine) SetSpeed(v float64) {
	if e.mounted {
		e.stepper.SetSpeed(v)
	}
}

// Seek jumps to an elapsed time. When stopped the new state shows on the
// next frame.
func (e *Engine) Seek(t float64) {
	if !e.mounted {
		return
	}
	e.stepper.Seek(t)
	e.invalidate()
}

// Redraw asks for the current state to be painted again on the next
// frame, e.g. after a parameter or camera change while stopped. A running
// engine picks changes up on its next tick anyway.
func (e *Engine) Redraw() {
	e.invalidate()
}

// Dirty reports whether a repaint is queued.
func (e *Engine) Dirty() bool { return e.dirty }

// invalidate queues one repaint through the frame host. Calls before that
// frame fires collapse into the same repaint.
func (e *Engine) invalidate() {
	if !e.mounted || e.stepper.Running() || e.dirty {
		return
	}
	e.dirty = true
	gen := e.repaintGen
	e.repaint = e.host.RequestFrame(func() {
		if gen != e.repaintGen {
			return
		}
		e.dirty = false
		if e.mounted && !e.stepper.Running() {
			e.draw(e.stepper.State())
		}
	})
}

func (e *Engine) cancelRepaint() {
	if e.dirty {
		e.host.CancelFrame(e.repaint)
		e.dirty = false
	}
	e.repaintGen++
}

func (e *Engine) Running() bool {
	return e.mounted && e.stepper.Running()
}

// State returns the animation state, zero while unmounted.
func (e *Engine) State() dynamo.AnimationState {
	if !e.mounted {
		return dynamo.AnimationState{}
	}
	return e.stepper.State()
}

func (e *Engine) Camera() dynamo.Camera { return e.camera }

// DragCamera and ZoomCamera only write camera state; the change shows on
// the next drawn frame.
func (e *Engine) DragCamera(dx, dy float64)  { e.camera.Drag(dx, dy) }
func (e *Engine) ZoomCamera(notches float64) { e.camera.Zoom(notches) }

// Result is the model output of the last drawn frame.
func (e *Engine) Result() dynamo.Result { return e.result }

// Frames counts frames drawn since Mount.
func (e *Engine) Frames() int { return e.frames }

func (e *Engine) params() dynamo.Params {
	if e.panel != nil {
		return e.panel.Params()
	}
	return e.sim.Schema().Defaults()
}

// Frame assembles what a renderer reads for the given animation state.
func (e *Engine) Frame(anim dynamo.AnimationState) dynamo.Frame {
	w, h := e.surf.Size()
	return dynamo.Frame{
		Params: e.params(),
		Anim:   anim,
		Camera: e.camera,
		Width:  w,
		Height: h,
		Index:  e.frames,
	}
}

// RenderAt draws one frame onto s without touching the stepper, metrics
// or the engine's own surface.
func (e *Engine) RenderAt(s surface.Surface, anim dynamo.AnimationState) dynamo.Result {
	f := e.Frame(anim)
	w, h := s.Size()
	f.Width, f.Height = w, h
	return scene.Render(s, e.sim, f, e.palette)
}

func (e *Engine) draw(anim dynamo.AnimationState) {
	if !e.mounted {
		return
	}
	f := e.Frame(anim)
	res := scene.Render(e.surf, e.sim, f, e.palette)
	e.result = res
	e.frames++
	if !res.Valid() {
		e.invalid++
		e.logger.Debug("derived overlays suppressed",
			"error", &dynamo.InvalidResultError{Simulation: e.sim.ID(), Frame: f.Index, Wrapped: res.Err()})
	}
	for _, m := range e.metrics {
		m.Observe(f, res)
	}
	for _, o := range e.observers {
		o.OnFrame(f, res)
	}
}
