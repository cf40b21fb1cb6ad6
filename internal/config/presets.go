package config

import "sort"

// Presets are complete configurations selectable with --preset.
var Presets = map[string]*Config{
	"smoke": {
		Renderer: "cpuref", Size: 64, Bench: "0:1", File: "smoke",
		HeadlessFrames: DefaultHeadlessFrames, Output: DefaultOutput, DataDir: DefaultDataDir,
		NoSave: true,
	},
	"perf": {
		Renderer: "cuda", Size: 1024, Bench: "0:10", File: "perf",
		HeadlessFrames: DefaultHeadlessFrames, Output: DefaultOutput, DataDir: DefaultDataDir,
		Plot: true,
	},
	"check": {
		Renderer: "cuda", Size: 512, Bench: "0:1", File: "check", Check: true,
		HeadlessFrames: DefaultHeadlessFrames, Output: DefaultOutput, DataDir: DefaultDataDir,
	},
	"demo": {
		Scene: "bouncingballs", Renderer: "cuda", Size: 96, Bench: DefaultBench, File: DefaultFile,
		Interactive: true, HeadlessFrames: DefaultHeadlessFrames, Output: DefaultOutput,
		DataDir: DefaultDataDir,
	},
	"headless": {
		Renderer: "cuda", Size: 256, Bench: DefaultBench, File: DefaultFile,
		Interactive: true, Headless: true, HeadlessFrames: DefaultHeadlessFrames,
		Output: DefaultOutput, PrintStats: true, DataDir: DefaultDataDir,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
