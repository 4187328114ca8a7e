package sim

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/san-kum/scisim/internal/dynamo"
	"github.com/san-kum/scisim/internal/scene"
	"github.com/san-kum/scisim/internal/surface"
)

type frameCounter struct{ n int }

func (c *frameCounter) Name() string                        { return "frames" }
func (c *frameCounter) Observe(dynamo.Frame, dynamo.Result) { c.n++ }
func (c *frameCounter) Value() float64                      { return float64(c.n) }
func (c *frameCounter) Reset()                              { c.n = 0 }

func newTestEngine(sim scene.Simulation, opts ...Option) (*Engine, *LoopHost, *surface.Recorder) {
	host := NewLoopHost()
	rec := surface.NewRecorder()
	return NewEngine(sim, host, rec, opts...), host, rec
}

func TestEngineMountPaintsOnce(t *testing.T) {
	e, host, rec := newTestEngine(scene.Circuit{})
	e.Mount()
	e.Mount()
	if e.Frames() != 1 {
		t.Errorf("expected 1 frame, got %d", e.Frames())
	}
	if rec.Count("") == 0 {
		t.Error("expected draw calls")
	}
	if host.Pending() != 0 {
		t.Errorf("expected no request before start, got %d", host.Pending())
	}
	if e.Running() {
		t.Error("expected mounted engine to be stopped")
	}
}

func TestEngineNoDrawAfterStop(t *testing.T) {
	e, host, rec := newTestEngine(scene.Motor{})
	e.Mount()
	e.Start()
	host.Fire()
	host.Fire()
	if e.Frames() != 3 {
		t.Errorf("expected 3 frames, got %d", e.Frames())
	}
	e.Stop()
	ops := len(rec.Ops)
	state := e.State()
	for i := 0; i < 5; i++ {
		host.Fire()
	}
	if len(rec.Ops) != ops {
		t.Errorf("expected no draw calls after stop, got %d more", len(rec.Ops)-ops)
	}
	if e.State() != state {
		t.Errorf("expected state unchanged, got %+v", e.State())
	}
}

func TestEngineUnmountCancels(t *testing.T) {
	e, host, rec := newTestEngine(scene.Circuit{})
	e.Mount()
	e.Start()
	e.Unmount()
	ops := len(rec.Ops)
	host.Fire()
	if len(rec.Ops) != ops {
		t.Error("expected no drawing after unmount")
	}
	if e.Panel() != nil {
		t.Error("expected params dropped on unmount")
	}
	e.Start()
	if host.Pending() != 0 {
		t.Error("expected start after unmount to do nothing")
	}
}

func TestEngineParamChangeShowsNextFrame(t *testing.T) {
	e, host, _ := newTestEngine(scene.Circuit{})
	e.Mount()
	e.Start()
	if _, err := e.Panel().SetFloat("voltage", 18); err != nil {
		t.Fatal(err)
	}
	host.Fire()
	got, _ := dynamo.Lookup(e.Result(), "current")
	if got != 2 {
		t.Errorf("expected current 2, got %v", got)
	}
}

func TestEngineRedrawWhileStopped(t *testing.T) {
	e, host, rec := newTestEngine(scene.Circuit{})
	e.Mount()
	e.Panel().SetEnum("topology", "parallel")
	ops := len(rec.Ops)
	e.Redraw()
	e.Redraw()
	if len(rec.Ops) != ops || e.Frames() != 1 {
		t.Errorf("expected no drawing before the next frame, got %d frames", e.Frames())
	}
	if host.Pending() != 1 || !e.Dirty() {
		t.Errorf("expected one queued repaint, got %d pending", host.Pending())
	}
	host.Fire()
	got, _ := dynamo.Lookup(e.Result(), "resistance")
	if got != 2 {
		t.Errorf("expected 3 ∥ 6 = 2, got %v", got)
	}
	if e.Frames() != 2 {
		t.Errorf("expected 2 frames, got %d", e.Frames())
	}
	if host.Pending() != 0 || e.Dirty() {
		t.Error("expected nothing queued after the repaint")
	}
}

func TestEngineStoppedInputOnlyQueues(t *testing.T) {
	e, host, rec := newTestEngine(scene.Lunar3D{})
	e.Mount()
	e.Start()
	host.Fire()
	e.Stop()
	frames, ops := e.Frames(), len(rec.Ops)

	e.DragCamera(40, 10)
	e.Redraw()
	e.ZoomCamera(2)
	e.Redraw()
	e.Reset()
	e.Seek(3)
	if e.Frames() != frames || len(rec.Ops) != ops {
		t.Fatalf("expected no drawing outside a frame callback, frames %d -> %d, ops %d -> %d",
			frames, e.Frames(), ops, len(rec.Ops))
	}
	if host.Pending() != 1 {
		t.Errorf("expected a single queued repaint, got %d", host.Pending())
	}

	host.Fire()
	if e.Frames() != frames+1 {
		t.Errorf("expected one repaint, got %d frames", e.Frames()-frames)
	}
	if e.State().ElapsedTime != 3 {
		t.Errorf("expected repaint at t=3, got %v", e.State().ElapsedTime)
	}
	host.Fire()
	if e.Frames() != frames+1 {
		t.Error("expected nothing more while stopped")
	}
}

func TestEngineStartDropsQueuedRepaint(t *testing.T) {
	e, host, _ := newTestEngine(scene.Motor{})
	e.Mount()
	e.Redraw()
	e.Start()
	if host.Pending() != 1 || e.Dirty() {
		t.Errorf("expected only the stepper request, got %d pending", host.Pending())
	}
	host.Fire()
	if e.Frames() != 2 {
		t.Errorf("expected one tick drawn, got %d frames", e.Frames())
	}
}

func TestEngineUnmountDropsQueuedRepaint(t *testing.T) {
	e, host, rec := newTestEngine(scene.Optics{})
	e.Mount()
	e.Seek(1)
	e.Unmount()
	ops := len(rec.Ops)
	if host.Pending() != 0 {
		t.Errorf("expected repaint cancelled, got %d pending", host.Pending())
	}
	host.Fire()
	if len(rec.Ops) != ops {
		t.Error("expected no drawing after unmount")
	}
}

func TestEngineRenderAtLeavesStateAlone(t *testing.T) {
	e, _, _ := newTestEngine(scene.LunarPhases{})
	e.Mount()
	other := surface.NewRecorder()
	res := e.RenderAt(other, dynamo.AnimationState{ElapsedTime: physicsHalfMonth})
	if e.Frames() != 1 {
		t.Errorf("expected frame count untouched, got %d", e.Frames())
	}
	if e.State().ElapsedTime != 0 {
		t.Errorf("expected stepper untouched, got %v", e.State().ElapsedTime)
	}
	f, _ := dynamo.Lookup(res, "illuminated")
	if f < 99 {
		t.Errorf("expected full moon, got %v%%", f)
	}
	if other.Count("") == 0 {
		t.Error("expected drawing on the export surface")
	}
}

const physicsHalfMonth = 29.530 / 2

func TestEngineMetricsAndLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	counter := &frameCounter{}
	var seen int
	e, host, _ := newTestEngine(scene.Circuit{},
		WithLogger(logger),
		WithMetrics(counter),
		WithObserver(ObserverFunc(func(dynamo.Frame, dynamo.Result) { seen++ })),
	)
	e.Mount()
	e.Panel().SetFloat("r1", 0)
	e.Panel().SetFloat("r2", 0)
	e.Start()
	host.Fire()
	e.Unmount()

	if counter.n != 2 || seen != 2 {
		t.Errorf("expected 2 observed frames, got metric %d observer %d", counter.n, seen)
	}
	out := buf.String()
	if !strings.Contains(out, "derived overlays suppressed") {
		t.Errorf("expected invalid frame logged, got %s", out)
	}
	if !strings.Contains(out, "simulation unmounted") || !strings.Contains(out, "frames=2") {
		t.Errorf("expected unmount summary, got %s", out)
	}
}

func TestEngineCamera(t *testing.T) {
	e, _, _ := newTestEngine(scene.Lunar3D{})
	e.Mount()
	before := e.Camera()
	e.DragCamera(100, 0)
	e.ZoomCamera(100)
	after := e.Camera()
	if after.Yaw == before.Yaw {
		t.Error("expected yaw to change")
	}
	if after.Distance != dynamo.MinCameraDistance {
		t.Errorf("expected distance clamped to %v, got %v", dynamo.MinCameraDistance, after.Distance)
	}
	if e.Frames() != 1 {
		t.Errorf("expected camera input not to draw, got %d frames", e.Frames())
	}
}
