package compute

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

const (
	tileSize       = 32
	minAdvanceSpan = 4096
)

// ParallelRenderer shades screen tiles concurrently. Each tile keeps the
// ordered list of circles overlapping it, so per-pixel blend order matches
// RefRenderer exactly.
type ParallelRenderer struct {
	base
	workers int
	tilesX  int
	tilesY  int
	bins    [][]int32
}

func NewParallelRenderer() *ParallelRenderer {
	return &ParallelRenderer{
		workers: runtime.NumCPU(),
	}
}

func (p *ParallelRenderer) Name() string { return Accelerated }

func (p *ParallelRenderer) Setup() {
	if p.img == nil {
		return
	}
	p.tilesX = (p.img.Width + tileSize - 1) / tileSize
	p.tilesY = (p.img.Height + tileSize - 1) / tileSize
	p.bins = make([][]int32, p.tilesX*p.tilesY)
}

func (p *ParallelRenderer) AdvanceAnimation() {
	if p.state == nil {
		return
	}
	p.parallelFor(p.state.Len(), minAdvanceSpan, p.state.AdvanceRange)
	p.state.Tick()
}

func (p *ParallelRenderer) Render() {
	if p.img == nil || p.state == nil {
		return
	}
	if p.bins == nil || p.tilesX != (p.img.Width+tileSize-1)/tileSize || p.tilesY != (p.img.Height+tileSize-1)/tileSize {
		p.Setup()
	}
	p.binCircles()

	g := new(errgroup.Group)
	g.SetLimit(p.workers)
	for t := range p.bins {
		if len(p.bins[t]) == 0 {
			continue
		}
		tile := t
		g.Go(func() error {
			p.shadeTile(tile)
			return nil
		})
	}
	_ = g.Wait()
}

func (p *ParallelRenderer) binCircles() {
	for t := range p.bins {
		p.bins[t] = p.bins[t][:0]
	}
	w, h := p.img.Width, p.img.Height
	for i := 0; i < p.state.Len(); i++ {
		x0, x1, y0, y1 := bounds(p.state, i, w, h)
		if x0 >= x1 || y0 >= y1 {
			continue
		}
		for ty := y0 / tileSize; ty <= (y1-1)/tileSize; ty++ {
			for tx := x0 / tileSize; tx <= (x1-1)/tileSize; tx++ {
				t := ty*p.tilesX + tx
				p.bins[t] = append(p.bins[t], int32(i))
			}
		}
	}
}

func (p *ParallelRenderer) shadeTile(t int) {
	w, h := p.img.Width, p.img.Height
	invW, invH := 1/float32(w), 1/float32(h)

	x0 := (t % p.tilesX) * tileSize
	y0 := (t / p.tilesX) * tileSize
	x1 := clampInt(x0+tileSize, 0, w)
	y1 := clampInt(y0+tileSize, 0, h)

	for y := y0; y < y1; y++ {
		pcy := invH * (float32(y) + 0.5)
		for x := x0; x < x1; x++ {
			pcx := invW * (float32(x) + 0.5)
			off := 4 * (y*w + x)
			px := p.img.Data[off : off+4]
			for _, i := range p.bins[t] {
				shadePixel(px, pcx, pcy, p.state, int(i))
			}
		}
	}
}

// parallelFor splits [0, n) into contiguous chunks of at least minChunk and
// runs fn on each concurrently.
func (p *ParallelRenderer) parallelFor(n, minChunk int, fn func(start, end int)) {
	workers := p.workers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	_ = g.Wait()
}
