package sim

import (
	"math"

	"github.com/san-kum/scisim/internal/dynamo"
)

// MaxSpeed bounds the speed multiplier.
const MaxSpeed = 10.0

// Stepper owns the animation state of one mounted screen. It keeps at most
// one frame request pending; a callback from a superseded request, or one
// that arrives while stopped, changes nothing.
type Stepper struct {
	host     FrameHost
	baseRate float64
	onTick   func(dynamo.AnimationState)

	state   dynamo.AnimationState
	pending FrameID
	waiting bool
	gen     uint64
}

// NewStepper returns a stopped stepper at speed 1. onTick runs after every
// advance with the new state.
func NewStepper(host FrameHost, baseRate float64, onTick func(dynamo.AnimationState)) *Stepper {
	return &Stepper{
		host:     host,
		baseRate: baseRate,
		onTick:   onTick,
		state:    dynamo.AnimationState{Speed: 1},
	}
}

// State returns a copy of the animation state.
func (s *Stepper) State() dynamo.AnimationState { return s.state }

func (s *Stepper) Running() bool { return s.state.Running }

// Pending reports whether a frame request is outstanding.
func (s *Stepper) Pending() bool { return s.waiting }

// Start begins ticking. Starting a running or disposed stepper does nothing.
func (s *Stepper) Start() {
	if s.host == nil || s.state.Running {
		return
	}
	s.state.Running = true
	s.gen++
	s.request()
}

// Stop cancels the pending request and keeps the elapsed values.
func (s *Stepper) Stop() {
	if !s.state.Running {
		return
	}
	s.state.Running = false
	s.gen++
	if s.waiting {
		s.waiting = false
		if s.host != nil {
			s.host.CancelFrame(s.pending)
		}
	}
}

// Reset zeroes the elapsed values in either state.
func (s *Stepper) Reset() {
	s.state.ElapsedAngle = 0
	s.state.ElapsedTime = 0
}

// Seek jumps to an elapsed time.
func (s *Stepper) Seek(t float64) {
	if !dynamo.Finite(t) {
		return
	}
	s.state.ElapsedTime = t
	s.state.ElapsedAngle = dynamo.NormalizeAngle(t)
}

// SetSpeed sets the multiplier, clamped to [0, MaxSpeed]. NaN is ignored.
func (s *Stepper) SetSpeed(v float64) {
	if math.IsNaN(v) {
		return
	}
	s.state.Speed = math.Max(0, math.Min(MaxSpeed, v))
}

// Dispose stops the stepper and detaches it from its host for good.
func (s *Stepper) Dispose() {
	s.Stop()
	s.host = nil
	s.onTick = nil
}

func (s *Stepper) request() {
	gen := s.gen
	s.pending = s.host.RequestFrame(func() { s.tick(gen) })
	s.waiting = true
}

func (s *Stepper) tick(gen uint64) {
	if gen != s.gen || !s.state.Running || s.host == nil {
		return
	}
	s.waiting = false
	s.state = s.state.Advance(s.baseRate)
	if s.onTick != nil {
		s.onTick(s.state)
	}
	// onTick may have stopped or restarted the stepper.
	if s.state.Running && gen == s.gen && !s.waiting && s.host != nil {
		s.request()
	}
}
