package sim

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// LoopHost queues frame callbacks until an external display loop calls
// Fire once per frame.
type LoopHost struct {
	mu      sync.Mutex
	next    FrameID
	pending map[FrameID]func()
}

func NewLoopHost() *LoopHost {
	return &LoopHost{pending: make(map[FrameID]func())}
}

func (h *LoopHost) RequestFrame(fn func()) FrameID {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	h.pending[h.next] = fn
	return h.next
}

func (h *LoopHost) CancelFrame(id FrameID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.pending, id)
}

// Pending is the number of queued callbacks.
func (h *LoopHost) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.pending)
}

// Fire runs the callbacks queued before the call, oldest first, and
// returns how many ran. Requests made by those callbacks wait for the
// next Fire.
func (h *LoopHost) Fire() int {
	h.mu.Lock()
	ids := make([]FrameID, 0, len(h.pending))
	for id := range h.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	fns := make([]func(), len(ids))
	for i, id := range ids {
		fns[i] = h.pending[id]
		delete(h.pending, id)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// TickerHost fires queued callbacks from a ticker at a fixed rate. Run
// drives it on the calling goroutine, so callbacks never overlap.
type TickerHost struct {
	LoopHost
	fps    int
	logger *slog.Logger
}

func NewTickerHost(fps int, logger *slog.Logger) (*TickerHost, error) {
	if fps <= 0 || fps > 1000 {
		return nil, fmt.Errorf("fps must be in (0, 1000], got %d", fps)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TickerHost{
		LoopHost: LoopHost{pending: make(map[FrameID]func())},
		fps:      fps,
		logger:   logger,
	}, nil
}

// Run fires pending callbacks on every tick until ctx is done, and returns
// the number of ticks that ran at least one callback.
func (h *TickerHost) Run(ctx context.Context) (int, error) {
	ticker := time.NewTicker(time.Second / time.Duration(h.fps))
	defer ticker.Stop()

	h.logger.Debug("frame loop started", "fps", h.fps)
	frames := 0
	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("frame loop stopped", "frames", frames, "reason", ctx.Err())
			return frames, ctx.Err()
		case <-ticker.C:
			if h.Fire() > 0 {
				frames++
			}
		}
	}
}
