package sim

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLoopHostFiresInOrder(t *testing.T) {
	h := NewLoopHost()
	var order []int
	h.RequestFrame(func() { order = append(order, 1) })
	id := h.RequestFrame(func() { order = append(order, 2) })
	h.RequestFrame(func() {
		order = append(order, 3)
		h.RequestFrame(func() { order = append(order, 4) })
	})
	h.CancelFrame(id)

	if n := h.Fire(); n != 2 {
		t.Errorf("expected 2 callbacks, got %d", n)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 3 {
		t.Errorf("expected [1 3], got %v", order)
	}
	if h.Pending() != 1 {
		t.Errorf("expected the nested request to wait, got %d pending", h.Pending())
	}
	h.Fire()
	if order[len(order)-1] != 4 {
		t.Errorf("expected nested callback on the next frame, got %v", order)
	}
}

func TestTickerHostRuns(t *testing.T) {
	h, err := NewTickerHost(200, nil)
	if err != nil {
		t.Fatal(err)
	}
	s := NewStepper(h, 0.1, nil)
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	frames, err := h.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline, got %v", err)
	}
	if frames == 0 {
		t.Error("expected at least one frame")
	}
	if s.State().ElapsedTime <= 0 {
		t.Error("expected the stepper to advance")
	}
}

func TestTickerHostRejectsBadFPS(t *testing.T) {
	for _, fps := range []int{0, -5, 5000} {
		if _, err := NewTickerHost(fps, nil); err == nil {
			t.Errorf("expected error for fps %d", fps)
		}
	}
}
