package compute

// RefRenderer is the sequential reference backend.
type RefRenderer struct {
	base
}

func NewRefRenderer() *RefRenderer {
	return &RefRenderer{}
}

func (r *RefRenderer) Name() string { return Reference }
func (r *RefRenderer) Setup()       {}

func (r *RefRenderer) AdvanceAnimation() {
	if r.state == nil {
		return
	}
	r.state.Advance()
}

// Render walks circles in scene order and shades each one's bounding box.
func (r *RefRenderer) Render() {
	if r.img == nil || r.state == nil {
		return
	}
	w, h := r.img.Width, r.img.Height
	invW, invH := 1/float32(w), 1/float32(h)

	for i := 0; i < r.state.Len(); i++ {
		x0, x1, y0, y1 := bounds(r.state, i, w, h)
		for y := y0; y < y1; y++ {
			pcy := invH * (float32(y) + 0.5)
			for x := x0; x < x1; x++ {
				pcx := invW * (float32(x) + 0.5)
				off := 4 * (y*w + x)
				shadePixel(r.img.Data[off:off+4], pcx, pcy, r.state, i)
			}
		}
	}
}
