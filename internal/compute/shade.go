package compute

import (
	"math"

	"github.com/san-kum/circlebench/internal/render"
	"github.com/san-kum/circlebench/internal/scene"
)

const (
	circleAlpha  = 0.5
	snowFalloff  = 4.0
	snowMinAlpha = 0.6
)

func clearGradient(img *render.Image) {
	for y := 0; y < img.Height; y++ {
		f := float32(y) / float32(img.Height)
		r := 0.4 + 0.45*f
		b := 0.5 + 0.4*f
		row := img.Data[4*y*img.Width : 4*(y+1)*img.Width]
		for i := 0; i < len(row); i += 4 {
			row[i] = r
			row[i+1] = r
			row[i+2] = b
			row[i+3] = 1
		}
	}
}

// bounds returns the pixel box [x0,x1) x [y0,y1) that can contain pixel
// centers covered by circle i. The box is padded by one pixel.
func bounds(s *scene.State, i, w, h int) (x0, x1, y0, y1 int) {
	cx, cy, r := s.Position[3*i], s.Position[3*i+1], s.Radius[i]
	x0 = clampInt(int(float32(w)*(cx-r))-1, 0, w)
	x1 = clampInt(int(float32(w)*(cx+r))+2, 0, w)
	y0 = clampInt(int(float32(h)*(cy-r))-1, 0, h)
	y1 = clampInt(int(float32(h)*(cy+r))+2, 0, h)
	return
}

// shadePixel blends circle i into px if the pixel center (pcx, pcy) lies
// inside it. Products are rounded explicitly so every call site computes the
// same bits regardless of instruction fusion.
func shadePixel(px []float32, pcx, pcy float32, s *scene.State, i int) {
	dx := pcx - s.Position[3*i]
	dy := pcy - s.Position[3*i+1]
	d2 := float32(dx*dx) + float32(dy*dy)
	r := s.Radius[i]
	r2 := float32(r * r)
	if d2 > r2 {
		return
	}

	var alpha float32 = circleAlpha
	if s.SnowShading {
		norm := float32(math.Sqrt(float64(d2))) / r
		maxAlpha := snowMinAlpha + (1-snowMinAlpha)*(1-s.Position[3*i+2])
		alpha = maxAlpha * float32(math.Exp(-snowFalloff*float64(norm*norm)))
	}
	keep := 1 - alpha

	c := s.Color[3*i : 3*i+3]
	px[0] = float32(alpha*c[0]) + float32(keep*px[0])
	px[1] = float32(alpha*c[1]) + float32(keep*px[1])
	px[2] = float32(alpha*c[2]) + float32(keep*px[2])
	px[3] += alpha
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
