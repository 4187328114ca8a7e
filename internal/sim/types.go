package sim

import "github.com/san-kum/scisim/internal/dynamo"

// FrameID identifies one pending frame request.
type FrameID uint64

// FrameHost delivers frame callbacks, at most one per display frame.
type FrameHost interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

// Metric accumulates a statistic over rendered frames.
type Metric interface {
	Name() string
	Observe(f dynamo.Frame, r dynamo.Result)
	Value() float64
	Reset()
}

// Observer is told about every rendered frame.
type Observer interface {
	OnFrame(f dynamo.Frame, r dynamo.Result)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(f dynamo.Frame, r dynamo.Result)

func (fn ObserverFunc) OnFrame(f dynamo.Frame, r dynamo.Result) { fn(f, r) }
