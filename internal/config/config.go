package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultImageSize      = 1024
	DefaultRenderer       = "cuda"
	DefaultFile           = "output"
	DefaultOutput         = "output.ppm"
	DefaultBench          = "0:1"
	DefaultHeadlessFrames = 20
	DefaultDataDir        = ".circlebench"
)

var (
	ErrFrameRange = errors.New("config: invalid frame range")
	ErrImageSize  = errors.New("config: image size must be positive")
	ErrFrameCount = errors.New("config: headless frame count must be positive")
)

type Config struct {
	Scene          string `yaml:"scene"`
	Renderer       string `yaml:"renderer"`
	Size           int    `yaml:"size"`
	Bench          string `yaml:"bench"`
	File           string `yaml:"file"`
	Check          bool   `yaml:"check"`
	Interactive    bool   `yaml:"interactive"`
	Headless       bool   `yaml:"headless"`
	HeadlessFrames int    `yaml:"headless_frames"`
	Output         string `yaml:"output"`
	PrintStats     bool   `yaml:"print_stats"`
	Plot           bool   `yaml:"plot"`
	DataDir        string `yaml:"data_dir"`
	NoSave         bool   `yaml:"no_save"`
}

func DefaultConfig() *Config {
	return &Config{
		Renderer:       DefaultRenderer,
		Size:           DefaultImageSize,
		Bench:          DefaultBench,
		File:           DefaultFile,
		HeadlessFrames: DefaultHeadlessFrames,
		Output:         DefaultOutput,
		PrintStats:     true,
		DataDir:        DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	return Overlay(path, DefaultConfig())
}

// Overlay reads a yaml file on top of a copy of base. Keys missing from the
// file keep base's values.
func Overlay(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ParseFrameRange parses "START:END" into the start frame and the number of
// frames in [START, END).
func ParseFrameRange(s string) (start, count int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrFrameRange, s)
	}
	start, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrFrameRange, s)
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrFrameRange, s)
	}
	if start < 0 || end < start {
		return 0, 0, fmt.Errorf("%w: %q", ErrFrameRange, s)
	}
	return start, end - start, nil
}

// FrameRange returns the parsed bench range.
func (c *Config) FrameRange() (start, count int, err error) {
	return ParseFrameRange(c.Bench)
}

// Validate checks everything that can be checked without a backend.
func (c *Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("%w: %d", ErrImageSize, c.Size)
	}
	if c.HeadlessFrames <= 0 {
		return fmt.Errorf("%w: %d", ErrFrameCount, c.HeadlessFrames)
	}
	if _, _, err := c.FrameRange(); err != nil {
		return err
	}
	return nil
}
