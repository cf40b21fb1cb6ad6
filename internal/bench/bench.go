package bench

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/san-kum/circlebench/internal/frame"
	"github.com/san-kum/circlebench/internal/log"
	"github.com/san-kum/circlebench/internal/ppm"
	"github.com/san-kum/circlebench/internal/render"
)

var logger = log.New("bench")

type Options struct {
	StartFrame int
	FrameCount int

	// OutputBase names the per-frame files. Empty disables writing.
	OutputBase string

	// Tolerance is the largest per-channel difference Check accepts.
	Tolerance float32

	// Stats receives the per-stage timing lines of every benchmarked frame.
	Stats io.Writer
}

func (o Options) validate() error {
	if o.StartFrame < 0 || o.FrameCount < 0 {
		return fmt.Errorf("%w: start %d count %d", ErrFrameRange, o.StartFrame, o.FrameCount)
	}
	return nil
}

// FrameFile is the output path of frame n.
func FrameFile(base string, n int) string {
	return fmt.Sprintf("%s_%04d.ppm", base, n)
}

type Result struct {
	Renderer   string
	Width      int
	Height     int
	StartFrame int
	Timings    []frame.Timing
	Files      []string
	Elapsed    time.Duration
}

// Total sums every benchmarked frame per stage.
func (r *Result) Total() frame.Timing {
	var t frame.Timing
	for _, ft := range r.Timings {
		t.Clear += ft.Clear
		t.Advance += ft.Advance
		t.Render += ft.Render
	}
	return t
}

func (r *Result) Mean() frame.Timing {
	n := time.Duration(len(r.Timings))
	if n == 0 {
		return frame.Timing{}
	}
	t := r.Total()
	return frame.Timing{Clear: t.Clear / n, Advance: t.Advance / n, Render: t.Render / n}
}

// Series returns per-frame total time in milliseconds.
func (r *Result) Series() []float64 {
	out := make([]float64, len(r.Timings))
	for i, t := range r.Timings {
		out[i] = frame.Millis(t.Total())
	}
	return out
}

// Run benchmarks FrameCount frames starting at StartFrame. Earlier frames are
// advanced without clearing, rendering or timing. The renderer must already be
// allocated, loaded and set up.
func Run(ctx context.Context, r render.Renderer, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	img := r.Image()
	if img == nil {
		return nil, render.ErrNoImage
	}

	ctrl := frame.New(r)
	if opts.Stats != nil {
		ctrl.SetStatsOutput(opts.Stats)
		ctrl.PrintStats = true
	}

	for i := 0; i < opts.StartFrame; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.AdvanceAnimation()
	}

	res := &Result{
		Renderer:   r.Name(),
		Width:      img.Width,
		Height:     img.Height,
		StartFrame: opts.StartFrame,
		Timings:    make([]frame.Timing, 0, opts.FrameCount),
	}
	logger.Infof("benchmark %s: frames %d..%d", res.Renderer, opts.StartFrame, opts.StartFrame+opts.FrameCount)

	flags := frame.Flags{Running: true}
	for i := 0; i < opts.FrameCount; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		t := ctrl.Step(&flags)
		res.Timings = append(res.Timings, t)
		res.Elapsed += t.Total()

		if opts.OutputBase == "" {
			continue
		}
		path := FrameFile(opts.OutputBase, opts.StartFrame+i)
		if err := ppm.Save(r.Image(), path); err != nil {
			logger.Errorf("write %s: %v", path, err)
			continue
		}
		res.Files = append(res.Files, path)
	}
	return res, nil
}
