package bench

import (
	"context"
	"fmt"
	"image"

	"github.com/san-kum/circlebench/internal/frame"
	"github.com/san-kum/circlebench/internal/ppm"
	"github.com/san-kum/circlebench/internal/render"
)

type Mismatch struct {
	Frame   int
	Pixels  int
	MaxDiff float32
	First   image.Point
}

type CheckResult struct {
	Reference   string
	Candidate   string
	Frames      int
	Mismatches  []Mismatch
	Files       []string
	ReferenceMs []float64
	CandidateMs []float64
}

func (c *CheckResult) Passed() bool { return len(c.Mismatches) == 0 }

// Err wraps ErrCheckFailed with the first mismatch, or returns nil.
func (c *CheckResult) Err() error {
	if c.Passed() {
		return nil
	}
	m := c.Mismatches[0]
	return fmt.Errorf("%w: frame %d: %d pixels differ (first at %d,%d, max diff %g)",
		ErrCheckFailed, m.Frame, m.Pixels, m.First.X, m.First.Y, m.MaxDiff)
}

// Check steps ref and cand in lockstep and compares every benchmarked frame.
// Both frames of a mismatching step are written when OutputBase is set.
func Check(ctx context.Context, ref, cand render.Renderer, opts Options) (*CheckResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	ri, ci := ref.Image(), cand.Image()
	if ri == nil || ci == nil {
		return nil, render.ErrNoImage
	}
	if ri.Width != ci.Width || ri.Height != ci.Height {
		return nil, fmt.Errorf("%w: %dx%d vs %dx%d", ErrSizeMismatch, ri.Width, ri.Height, ci.Width, ci.Height)
	}

	for i := 0; i < opts.StartFrame; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ref.AdvanceAnimation()
		cand.AdvanceAnimation()
	}

	refCtrl, candCtrl := frame.New(ref), frame.New(cand)
	refFlags, candFlags := frame.Flags{Running: true}, frame.Flags{Running: true}

	res := &CheckResult{Reference: ref.Name(), Candidate: cand.Name()}
	for i := 0; i < opts.FrameCount; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		rt := refCtrl.Step(&refFlags)
		ct := candCtrl.Step(&candFlags)
		res.Frames++
		res.ReferenceMs = append(res.ReferenceMs, frame.Millis(rt.Total()))
		res.CandidateMs = append(res.CandidateMs, frame.Millis(ct.Total()))

		n := opts.StartFrame + i
		m, ok := compare(ref.Image(), cand.Image(), opts.Tolerance)
		if ok {
			logger.Debugf("frame %d matches", n)
			continue
		}
		m.Frame = n
		res.Mismatches = append(res.Mismatches, m)
		logger.Warningf("frame %d: %d pixels differ", n, m.Pixels)

		if opts.OutputBase != "" {
			res.Files = append(res.Files, writeFrame(ref.Image(), FrameFile(opts.OutputBase+"_ref", n))...)
			res.Files = append(res.Files, writeFrame(cand.Image(), FrameFile(opts.OutputBase, n))...)
		}
	}
	return res, nil
}

func writeFrame(img *render.Image, path string) []string {
	if err := ppm.Save(img, path); err != nil {
		logger.Errorf("write %s: %v", path, err)
		return nil
	}
	return []string{path}
}

// compare checks the RGB channels the image file would carry.
func compare(a, b *render.Image, tol float32) (Mismatch, bool) {
	var m Mismatch
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			i := 4 * (y*a.Width + x)
			bad := false
			for c := 0; c < 3; c++ {
				d := a.Data[i+c] - b.Data[i+c]
				if d < 0 {
					d = -d
				}
				if d > m.MaxDiff {
					m.MaxDiff = d
				}
				if d > tol {
					bad = true
				}
			}
			if bad {
				if m.Pixels == 0 {
					m.First = image.Pt(x, y)
				}
				m.Pixels++
			}
		}
	}
	return m, m.Pixels == 0
}
