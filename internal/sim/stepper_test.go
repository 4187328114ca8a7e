package sim

import (
	"math"
	"testing"

	"github.com/san-kum/scisim/internal/dynamo"
)

// keepHost hands out callbacks but never forgets them, so tests can fire
// superseded requests by hand.
type keepHost struct {
	fns       map[FrameID]func()
	next      FrameID
	cancelled []FrameID
}

func newKeepHost() *keepHost { return &keepHost{fns: make(map[FrameID]func())} }

func (h *keepHost) RequestFrame(fn func()) FrameID {
	h.next++
	h.fns[h.next] = fn
	return h.next
}

func (h *keepHost) CancelFrame(id FrameID) { h.cancelled = append(h.cancelled, id) }

func TestStepperStartsStopped(t *testing.T) {
	host := NewLoopHost()
	s := NewStepper(host, 0.1, nil)
	if s.Running() {
		t.Error("expected stopped stepper")
	}
	if s.State().Speed != 1 {
		t.Errorf("expected speed 1, got %v", s.State().Speed)
	}
	if host.Pending() != 0 {
		t.Errorf("expected no pending request, got %d", host.Pending())
	}
}

func TestStepperAdvancesOncePerFrame(t *testing.T) {
	host := NewLoopHost()
	var ticks []dynamo.AnimationState
	s := NewStepper(host, 0.1, func(a dynamo.AnimationState) { ticks = append(ticks, a) })
	s.SetSpeed(2)
	s.Start()
	s.Start()
	if host.Pending() != 1 {
		t.Fatalf("expected exactly one pending request, got %d", host.Pending())
	}
	for i := 0; i < 5; i++ {
		if n := host.Fire(); n != 1 {
			t.Fatalf("expected one callback per frame, got %d", n)
		}
	}
	if len(ticks) != 5 {
		t.Fatalf("expected 5 ticks, got %d", len(ticks))
	}
	if got := s.State().ElapsedTime; math.Abs(got-1.0) > 1e-12 {
		t.Errorf("expected elapsed time 1.0, got %v", got)
	}
	if got := ticks[0].ElapsedAngle; math.Abs(got-0.2) > 1e-12 {
		t.Errorf("expected first angle 0.2, got %v", got)
	}
}

func TestStepperStopCancelsPending(t *testing.T) {
	host := NewLoopHost()
	calls := 0
	s := NewStepper(host, 0.1, func(dynamo.AnimationState) { calls++ })
	s.Start()
	host.Fire()
	running := s.State()
	s.Stop()
	before := s.State()
	if before.Running {
		t.Error("expected stopped state")
	}
	if before.ElapsedAngle != running.ElapsedAngle || before.ElapsedTime != running.ElapsedTime {
		t.Errorf("expected stop to keep elapsed values, got %+v", before)
	}
	if host.Pending() != 0 {
		t.Errorf("expected cancelled request, got %d pending", host.Pending())
	}
	for i := 0; i < 3; i++ {
		host.Fire()
	}
	if s.State() != before {
		t.Errorf("expected no mutation after stop, got %+v", s.State())
	}
	if calls != 1 {
		t.Errorf("expected 1 tick, got %d", calls)
	}
}

func TestStepperIgnoresStaleCallbacks(t *testing.T) {
	host := newKeepHost()
	s := NewStepper(host, 0.5, nil)
	s.Start()
	stale := host.fns[host.next]
	s.Stop()
	if len(host.cancelled) != 1 {
		t.Errorf("expected one cancel, got %d", len(host.cancelled))
	}

	stale()
	if s.State().ElapsedTime != 0 {
		t.Errorf("expected no mutation while stopped, got %v", s.State().ElapsedTime)
	}

	s.Start()
	stale()
	if s.State().ElapsedTime != 0 {
		t.Errorf("expected superseded callback ignored, got %v", s.State().ElapsedTime)
	}
	host.fns[host.next]()
	if s.State().ElapsedTime != 0.5 {
		t.Errorf("expected one advance, got %v", s.State().ElapsedTime)
	}
}

func TestStepperStopInsideTick(t *testing.T) {
	host := NewLoopHost()
	var s *Stepper
	s = NewStepper(host, 0.1, func(a dynamo.AnimationState) {
		if a.ElapsedTime > 0.25 {
			s.Stop()
		}
	})
	s.Start()
	for i := 0; i < 10; i++ {
		host.Fire()
	}
	if s.Running() {
		t.Error("expected stepper stopped from its own tick")
	}
	if got := s.State().ElapsedTime; math.Abs(got-0.3) > 1e-9 {
		t.Errorf("expected 0.3, got %v", got)
	}
	if host.Pending() != 0 {
		t.Errorf("expected nothing pending, got %d", host.Pending())
	}
}

func TestStepperResetKeepsRunState(t *testing.T) {
	host := NewLoopHost()
	s := NewStepper(host, 1, nil)
	s.Start()
	host.Fire()
	host.Fire()
	s.Reset()
	if !s.Running() {
		t.Error("expected reset to keep running")
	}
	if s.State().ElapsedAngle != 0 || s.State().ElapsedTime != 0 {
		t.Errorf("expected zeroed state, got %+v", s.State())
	}
	s.Stop()
	s.Seek(1)
	s.Reset()
	if s.State().ElapsedTime != 0 {
		t.Errorf("expected reset while stopped, got %v", s.State().ElapsedTime)
	}
}

func TestStepperSpeedAndSeek(t *testing.T) {
	s := NewStepper(NewLoopHost(), 1, nil)
	s.SetSpeed(-3)
	if s.State().Speed != 0 {
		t.Errorf("expected speed clamped to 0, got %v", s.State().Speed)
	}
	s.SetSpeed(100)
	if s.State().Speed != MaxSpeed {
		t.Errorf("expected speed %v, got %v", MaxSpeed, s.State().Speed)
	}
	s.SetSpeed(math.NaN())
	if s.State().Speed != MaxSpeed {
		t.Errorf("expected NaN ignored, got %v", s.State().Speed)
	}
	s.Seek(3 * math.Pi)
	if math.Abs(s.State().ElapsedAngle-math.Pi) > 1e-9 {
		t.Errorf("expected angle π, got %v", s.State().ElapsedAngle)
	}
	s.Seek(math.Inf(1))
	if s.State().ElapsedTime != 3*math.Pi {
		t.Errorf("expected Inf ignored, got %v", s.State().ElapsedTime)
	}
}

func TestStepperDispose(t *testing.T) {
	host := NewLoopHost()
	s := NewStepper(host, 1, nil)
	s.Start()
	s.Dispose()
	s.Start()
	if s.Running() || host.Pending() != 0 {
		t.Error("expected disposed stepper to stay stopped")
	}
}
