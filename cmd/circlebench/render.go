package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/circlebench/internal/bench"
	"github.com/san-kum/circlebench/internal/compute"
	"github.com/san-kum/circlebench/internal/config"
	"github.com/san-kum/circlebench/internal/display"
	"github.com/san-kum/circlebench/internal/frame"
	"github.com/san-kum/circlebench/internal/render"
	"github.com/san-kum/circlebench/internal/scene"
	"github.com/san-kum/circlebench/internal/storage"
)

func renderScene(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	name, err := scene.Parse(cfg.Scene)
	if err != nil {
		return err
	}
	// Fail on a bad renderer name before anything is rendered.
	if _, err := compute.New(cfg.Renderer); err != nil {
		return err
	}

	ctx := cmd.Context()
	fmt.Printf("Rendering to %dx%d image\n", cfg.Size, cfg.Size)

	if cfg.Check {
		return runCheck(ctx, cfg, name)
	}

	r, err := newRenderer(cfg.Renderer, name, cfg.Size)
	if err != nil {
		return err
	}
	if cfg.Interactive {
		return runDisplay(ctx, cfg, r)
	}
	return runBench(ctx, cfg, r)
}

// newRenderer builds a backend and prepares it for the first frame.
func newRenderer(backend string, name scene.Name, size int) (render.Renderer, error) {
	r, err := compute.New(backend)
	if err != nil {
		return nil, err
	}
	r.AllocOutputImage(size, size)
	if err := r.LoadScene(name); err != nil {
		return nil, err
	}
	r.Setup()
	logger.Infof("%s ready: scene %s at %dx%d", r.Name(), name, size, size)
	return r, nil
}

func runBench(ctx context.Context, cfg *config.Config, r render.Renderer) error {
	start, count, err := cfg.FrameRange()
	if err != nil {
		return err
	}

	opts := bench.Options{StartFrame: start, FrameCount: count, OutputBase: cfg.File}
	if cfg.PrintStats {
		opts.Stats = os.Stdout
	}
	res, err := bench.Run(ctx, r, opts)
	if err != nil {
		return err
	}
	if err := bench.Summary(os.Stdout, res); err != nil {
		return err
	}

	if cfg.Plot && len(res.Timings) > 1 {
		fmt.Println()
		fmt.Println(plotTimings(res.Series(), fmt.Sprintf("%s %s frame ms", cfg.Scene, res.Renderer)))
	}

	if cfg.NoSave {
		return nil
	}
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		logger.Errorf("storage: %v", err)
		return nil
	}
	runID, err := st.Save(cfg.Scene, res)
	if err != nil {
		logger.Errorf("storage: %v", err)
		return nil
	}
	logger.Noticef("saved run %s", runID)
	return nil
}

func runCheck(ctx context.Context, cfg *config.Config, name scene.Name) error {
	start, count, err := cfg.FrameRange()
	if err != nil {
		return err
	}

	candidate := cfg.Renderer
	if candidate == compute.Reference {
		candidate = compute.Accelerated
	}
	ref, err := newRenderer(compute.Reference, name, cfg.Size)
	if err != nil {
		return err
	}
	cand, err := newRenderer(candidate, name, cfg.Size)
	if err != nil {
		return err
	}

	res, err := bench.Check(ctx, ref, cand, bench.Options{
		StartFrame: start,
		FrameCount: count,
		OutputBase: cfg.File,
	})
	if err != nil {
		return err
	}
	if err := bench.CheckSummary(os.Stdout, res); err != nil {
		return err
	}
	return res.Err()
}

func runDisplay(ctx context.Context, cfg *config.Config, r render.Renderer) error {
	useDisplay := !cfg.Headless && display.DisplayAvailable()
	if !cfg.Headless && !useDisplay {
		logger.Notice("no terminal attached, running headless batch")
	}

	ctrl := frame.New(r)
	ctrl.PrintStats = cfg.PrintStats

	opts := display.Options{
		Interactive:    useDisplay,
		HeadlessFrames: cfg.HeadlessFrames,
		OutputPath:     cfg.Output,
		ShowStats:      cfg.PrintStats,
	}
	if useDisplay {
		// The stats panel replaces the stdout lines while the view is up.
		ctrl.SetStatsOutput(io.Discard)
		if w, h, ok := display.TerminalViewport(cfg.PrintStats); ok {
			opts.ViewWidth, opts.ViewHeight = w, h
		}
	}

	mgr := display.NewManager(ctrl, opts)
	return mgr.Run(ctx)
}

func plotTimings(series []float64, caption string) string {
	return asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Precision(3),
		asciigraph.Caption(caption),
	)
}
