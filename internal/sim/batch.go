package sim

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"sync"

	"github.com/san-kum/scisim/internal/dynamo"
	"github.com/san-kum/scisim/internal/scene"
)

// Batch renders a precomputed timeline on a bounded pool of workers, one
// raster per worker. Every frame depends only on its params, animation
// state and camera, so frames are independent.
type Batch struct {
	Sim     scene.Simulation
	Params  dynamo.Params
	Camera  dynamo.Camera
	Palette scene.Palette
	Width   int
	Height  int
	Workers int
	Logger  *slog.Logger
}

// Timeline returns n successive states starting from zero elapsed time,
// advanced at the given speed.
func Timeline(n int, baseRate, speed float64) []dynamo.AnimationState {
	states := make([]dynamo.AnimationState, 0, n)
	st := dynamo.AnimationState{Running: true, Speed: speed}
	for i := 0; i < n; i++ {
		states = append(states, st)
		st = st.Advance(baseRate)
	}
	return states
}

// Render draws every state and returns the frames in order together with
// the model results.
func (b *Batch) Render(ctx context.Context, states []dynamo.AnimationState) ([]*image.RGBA, []dynamo.Result, error) {
	if b.Sim == nil {
		return nil, nil, fmt.Errorf("batch: no simulation")
	}
	if b.Width <= 0 || b.Height <= 0 {
		return nil, nil, fmt.Errorf("batch: invalid size %dx%d", b.Width, b.Height)
	}
	workers := b.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(states) {
		workers = len(states)
	}
	logger := b.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cam := b.Camera
	cam.Clamp()

	frames := make([]*image.RGBA, len(states))
	results := make([]dynamo.Result, len(states))
	pool := NewRasterPool(b.Width, b.Height)
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := pool.Get()
			defer pool.Put(r)
			for i := range jobs {
				w, h := r.Size()
				f := dynamo.Frame{
					Params: b.Params,
					Anim:   states[i],
					Camera: cam,
					Width:  w,
					Height: h,
					Index:  i,
				}
				results[i] = scene.Render(r, b.Sim, f, b.Palette)
				src := r.RGBA()
				dst := image.NewRGBA(src.Bounds())
				copy(dst.Pix, src.Pix)
				frames[i] = dst
			}
		}()
	}

	var err error
feed:
	for i := range states {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("batch rendered", "simulation", b.Sim.ID(), "frames", len(states), "workers", workers)
	return frames, results, nil
}
