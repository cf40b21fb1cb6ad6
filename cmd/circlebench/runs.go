package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/circlebench/internal/config"
	"github.com/san-kum/circlebench/internal/frame"
	"github.com/san-kum/circlebench/internal/storage"
)

var exportPath string

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tRENDERER\tSIZE\tBENCH\tMODE")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		mode := "bench"
		switch {
		case p.Check:
			mode = "check"
		case p.Interactive && p.Headless:
			mode = "headless"
		case p.Interactive:
			mode = "interactive"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", name, p.Renderer, p.Size, p.Bench, mode)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tRENDERER\tTIME\tSIZE\tFRAMES\tMEAN")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%dx%d\t%d\t%.3f ms\n",
			run.ID,
			run.Scene,
			run.Renderer,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width,
			run.Height,
			run.FrameCount,
			run.Metrics["mean_total_ms"],
		)
	}

	return w.Flush()
}

// resolveRun picks the named run or the latest one.
func resolveRun(st *storage.Store, args []string) (*storage.RunMetadata, error) {
	if len(args) == 1 {
		return st.Load(args[0])
	}
	return st.Latest()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := resolveRun(st, args)
	if err != nil {
		return err
	}

	_, timings, err := st.LoadTimings(meta.ID)
	if err != nil {
		return err
	}
	if len(timings) < 2 {
		return fmt.Errorf("not enough frames to plot: %d", len(timings))
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s  renderer: %s  %dx%d\n", meta.Scene, meta.Renderer, meta.Width, meta.Height)
	fmt.Printf("frames: %d\n\n", len(timings))

	stages := []struct {
		caption string
		pick    func(frame.Timing) float64
	}{
		{"total ms", func(t frame.Timing) float64 { return frame.Millis(t.Total()) }},
		{"render ms", func(t frame.Timing) float64 { return frame.Millis(t.Render) }},
		{"advance ms", func(t frame.Timing) float64 { return frame.Millis(t.Advance) }},
		{"clear ms", func(t frame.Timing) float64 { return frame.Millis(t.Clear) }},
	}
	for _, s := range stages {
		data := make([]float64, len(timings))
		for i, t := range timings {
			data[i] = s.pick(t)
		}
		fmt.Println(plotTimings(data, s.caption))
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := resolveRun(st, args)
	if err != nil {
		return err
	}

	data, err := st.Export(meta.ID)
	if err != nil {
		return err
	}
	if exportPath != "" {
		if err := storage.ExportJSON(exportPath, data); err != nil {
			return err
		}
		fmt.Printf("exported %s to %s\n", meta.ID, exportPath)
		return nil
	}
	return storage.WriteJSON(os.Stdout, data)
}
