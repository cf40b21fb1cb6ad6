package frame

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/san-kum/circlebench/internal/render"
)

// Flags are the simulation switches read by Step.
type Flags struct {
	// Running makes the advance stage eligible on the next Step.
	Running bool

	// Paused clears Running at the end of the frame in which it is observed.
	Paused bool
}

// Timing is the wall time of each stage of one frame.
type Timing struct {
	Clear   time.Duration
	Advance time.Duration
	Render  time.Duration
}

func (t Timing) Total() time.Duration {
	return t.Clear + t.Advance + t.Render
}

// Controller runs the clear/advance/render pipeline against one backend.
// It never owns the backend.
type Controller struct {
	renderer   render.Renderer
	PrintStats bool
	stats      io.Writer
	now        func() time.Time
}

func New(r render.Renderer) *Controller {
	return &Controller{
		renderer: r,
		stats:    os.Stdout,
		now:      time.Now,
	}
}

// SetStatsOutput redirects the per-stage timing lines.
func (c *Controller) SetStatsOutput(w io.Writer) { c.stats = w }

func (c *Controller) Renderer() render.Renderer { return c.renderer }

// Image returns the backend frame buffer. Only valid between steps.
func (c *Controller) Image() *render.Image { return c.renderer.Image() }

// Step clears, optionally advances and renders one frame. A pause observed in
// flags takes effect after this frame's advance stage.
func (c *Controller) Step(flags *Flags) Timing {
	start := c.now()

	c.renderer.ClearImage()
	endClear := c.now()

	if flags.Running {
		c.renderer.AdvanceAnimation()
	}
	if flags.Paused {
		flags.Running = false
	}
	endAdvance := c.now()

	c.renderer.Render()
	endRender := c.now()

	t := Timing{
		Clear:   endClear.Sub(start),
		Advance: endAdvance.Sub(endClear),
		Render:  endRender.Sub(endAdvance),
	}
	if c.PrintStats {
		WriteTiming(c.stats, t)
	}
	return t
}

// WriteTiming prints t as three millisecond lines: Clear, Advance, Render.
func WriteTiming(w io.Writer, t Timing) error {
	_, err := fmt.Fprintf(w, "Clear:    %.3f ms\nAdvance:  %.3f ms\nRender:   %.3f ms\n",
		Millis(t.Clear), Millis(t.Advance), Millis(t.Render))
	return err
}

func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
