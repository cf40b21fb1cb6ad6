package bench

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/san-kum/circlebench/internal/frame"
)

// Summary prints one row per frame followed by the mean and the total.
func Summary(w io.Writer, r *Result) error {
	fmt.Fprintf(w, "Renderer: %s (%dx%d)\n", r.Renderer, r.Width, r.Height)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FRAME\tCLEAR\tADVANCE\tRENDER\tTOTAL")
	for i, t := range r.Timings {
		writeRow(tw, fmt.Sprint(r.StartFrame+i), t)
	}
	if len(r.Timings) > 1 {
		writeRow(tw, "mean", r.Mean())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Total: %.4f ms\n", frame.Millis(r.Total().Total()))
	return err
}

func writeRow(w io.Writer, label string, t frame.Timing) {
	fmt.Fprintf(w, "%s\t%.3f ms\t%.3f ms\t%.3f ms\t%.3f ms\n",
		label,
		frame.Millis(t.Clear),
		frame.Millis(t.Advance),
		frame.Millis(t.Render),
		frame.Millis(t.Total()))
}

// CheckSummary reports a correctness check, listing each mismatching frame.
func CheckSummary(w io.Writer, c *CheckResult) error {
	if c.Passed() {
		_, err := fmt.Fprintf(w, "Correctness passed: %s matches %s over %d frame(s)\n",
			c.Candidate, c.Reference, c.Frames)
		return err
	}
	fmt.Fprintf(w, "Correctness failed: %s differs from %s\n", c.Candidate, c.Reference)
	for _, m := range c.Mismatches {
		fmt.Fprintf(w, "  frame %04d: %d pixels, first at (%d,%d), max diff %g\n",
			m.Frame, m.Pixels, m.First.X, m.First.Y, m.MaxDiff)
	}
	for _, f := range c.Files {
		fmt.Fprintf(w, "  wrote %s\n", f)
	}
	return nil
}
