package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/circlebench/internal/compute"
	"github.com/san-kum/circlebench/internal/config"
	"github.com/san-kum/circlebench/internal/log"
	"github.com/san-kum/circlebench/internal/scene"
)

var (
	dataDir          string
	rendererName     string
	imageSize        int
	benchRange       string
	checkCorrectness bool
	interactive      bool
	frameFile        string
	headless         bool
	headlessFrames   int
	outputPath       string
	printStats       bool
	configFile       string
	preset           string
	plot             bool
	noSave           bool
	verbose          bool
	debug            bool
)

var logger = log.New("main")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "circlebench [flags] scenename",
		Short: "circle renderer benchmark and viewer",
		Long: "Render a circle scene with the reference or accelerated backend.\n\n" +
			"Scenes: " + strings.Join(scene.Names(), ", "),
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: setupLogging,
		RunE:              renderScene,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.BoolVarP(&verbose, "verbose", "v", false, "info logging")
	pf.BoolVar(&debug, "vv", false, "debug logging")

	f := rootCmd.Flags()
	f.StringVarP(&rendererName, "renderer", "r", config.DefaultRenderer, "renderer: "+strings.Join(compute.Names(), ", "))
	f.IntVarP(&imageSize, "size", "s", config.DefaultImageSize, "image width and height in pixels")
	f.StringVarP(&benchRange, "bench", "b", config.DefaultBench, "benchmark frames START:END")
	f.BoolVarP(&checkCorrectness, "check", "c", false, "compare against the reference renderer")
	f.BoolVarP(&interactive, "interactive", "i", false, "show the live display")
	f.StringVarP(&frameFile, "file", "f", config.DefaultFile, "base name for benchmark frame files")
	f.BoolVar(&headless, "headless", false, "run the fixed frame batch instead of the live display")
	f.IntVar(&headlessFrames, "frames", config.DefaultHeadlessFrames, "frames in a headless batch")
	f.StringVarP(&outputPath, "output", "o", config.DefaultOutput, "image written by a headless batch")
	f.BoolVar(&printStats, "stats", true, "print per-stage timings")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration: "+strings.Join(config.ListPresets(), ", "))
	f.BoolVar(&plot, "plot", false, "plot frame times after a benchmark")
	f.BoolVar(&noSave, "no-save", false, "do not record the benchmark run")

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list scenes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range scene.Names() {
				fmt.Println(name)
			}
		},
	}

	renderersCmd := &cobra.Command{
		Use:   "renderers",
		Short: "list renderers",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range compute.Names() {
				fmt.Println(name)
			}
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded benchmark runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot frame times of a run (latest by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as JSON (latest by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&exportPath, "out", "o", "", "write to file instead of stdout")

	rootCmd.AddCommand(scenesCmd, renderersCmd, presetsCmd, listCmd, plotCmd, exportCmd)
	return rootCmd
}

func setupLogging(cmd *cobra.Command, args []string) error {
	switch {
	case debug:
		log.SetLevel(log.Debug)
	case verbose:
		log.SetLevel(log.Info)
	default:
		log.SetLevel(log.Notice)
	}
	return nil
}

// resolveConfig layers defaults, preset, config file and explicitly set flags
// in that order. A positional scene name always wins.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Overlay(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("renderer") {
		cfg.Renderer = rendererName
	}
	if flags.Changed("size") {
		cfg.Size = imageSize
	}
	if flags.Changed("bench") {
		cfg.Bench = benchRange
	}
	if flags.Changed("check") {
		cfg.Check = checkCorrectness
	}
	if flags.Changed("interactive") {
		cfg.Interactive = interactive
	}
	if flags.Changed("file") {
		cfg.File = frameFile
	}
	if flags.Changed("headless") {
		cfg.Headless = headless
	}
	if flags.Changed("frames") {
		cfg.HeadlessFrames = headlessFrames
	}
	if flags.Changed("output") {
		cfg.Output = outputPath
	}
	if flags.Changed("stats") {
		cfg.PrintStats = printStats
	}
	if flags.Changed("plot") {
		cfg.Plot = plot
	}
	if flags.Changed("no-save") {
		cfg.NoSave = noSave
	}
	if cmd.Flags().Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}

	if len(args) == 1 {
		cfg.Scene = args[0]
	}
	if cfg.Scene == "" {
		return nil, fmt.Errorf("scene name required (one of: %s)", strings.Join(scene.Names(), ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
