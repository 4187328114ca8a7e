package sim

import (
	"sync"

	"github.com/san-kum/scisim/internal/surface"
)

// RasterPool recycles raster surfaces of one pixel size.
type RasterPool struct {
	pool          sync.Pool
	width, height int
}

func NewRasterPool(width, height int) *RasterPool {
	return &RasterPool{
		width:  width,
		height: height,
		pool: sync.Pool{
			New: func() interface{} {
				return surface.NewRaster(width, height)
			},
		},
	}
}

func (p *RasterPool) Get() *surface.Raster {
	return p.pool.Get().(*surface.Raster)
}

func (p *RasterPool) Put(r *surface.Raster) {
	if r == nil {
		return
	}
	if w, h := r.Pixels(); w == p.width && h == p.height {
		p.pool.Put(r)
	}
}
