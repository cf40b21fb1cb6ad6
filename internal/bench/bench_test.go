package bench

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/circlebench/internal/compute"
	"github.com/san-kum/circlebench/internal/render"
	"github.com/san-kum/circlebench/internal/scene"
)

// countingRenderer paints a gray level that follows the animation frame.
type countingRenderer struct {
	name                      string
	img                       *render.Image
	clears, advances, renders int
	bias                      float32
	frame                     int
}

func newCounting(name string, w, h int) *countingRenderer {
	r := &countingRenderer{name: name}
	r.AllocOutputImage(w, h)
	return r
}

func (r *countingRenderer) Name() string                    { return r.name }
func (r *countingRenderer) AllocOutputImage(w, h int)       { r.img = render.NewImage(w, h) }
func (r *countingRenderer) LoadScene(name scene.Name) error { return nil }
func (r *countingRenderer) Setup()                          {}
func (r *countingRenderer) Image() *render.Image            { return r.img }

func (r *countingRenderer) ClearImage() {
	r.clears++
	r.img.Clear(1, 1, 1, 1)
}

func (r *countingRenderer) AdvanceAnimation() {
	r.advances++
	r.frame++
}

func (r *countingRenderer) Render() {
	r.renders++
	v := float32(r.frame%10)/10 + r.bias
	r.img.Clear(v, v, v, 1)
}

func TestRun_CountsAndFiles(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "out")
	r := newCounting("fake", 4, 4)

	res, err := Run(context.Background(), r, Options{StartFrame: 3, FrameCount: 2, OutputBase: base})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if r.clears != 2 || r.renders != 2 {
		t.Errorf("expected 2 clears and renders, got %d and %d", r.clears, r.renders)
	}
	if r.advances != 5 {
		t.Errorf("expected 5 advances, got %d", r.advances)
	}
	if len(res.Timings) != 2 {
		t.Errorf("expected 2 timings, got %d", len(res.Timings))
	}

	want := []string{base + "_0003.ppm", base + "_0004.ppm"}
	if len(res.Files) != len(want) {
		t.Fatalf("expected files %v, got %v", want, res.Files)
	}
	for i, f := range want {
		if res.Files[i] != f {
			t.Errorf("file %d: expected %s, got %s", i, f, res.Files[i])
		}
		if _, err := os.Stat(f); err != nil {
			t.Errorf("missing %s: %v", f, err)
		}
	}
	if _, err := os.Stat(base + "_0000.ppm"); !os.IsNotExist(err) {
		t.Error("frames before start should not be written")
	}
}

func TestRun_NoOutput(t *testing.T) {
	r := newCounting("fake", 2, 2)
	res, err := Run(context.Background(), r, Options{FrameCount: 3})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(res.Files) != 0 {
		t.Errorf("expected no files, got %v", res.Files)
	}
	if len(res.Series()) != 3 {
		t.Errorf("expected 3 series points, got %d", len(res.Series()))
	}
}

func TestRun_UnwritableOutputContinues(t *testing.T) {
	r := newCounting("fake", 2, 2)
	base := filepath.Join(t.TempDir(), "missing", "out")
	res, err := Run(context.Background(), r, Options{FrameCount: 2, OutputBase: base})
	if err != nil {
		t.Fatalf("run should not fail on write errors: %v", err)
	}
	if r.renders != 2 || len(res.Files) != 0 {
		t.Errorf("expected 2 renders and no files, got %d and %v", r.renders, res.Files)
	}
}

func TestRun_Errors(t *testing.T) {
	if _, err := Run(context.Background(), newCounting("fake", 2, 2), Options{StartFrame: -1}); !errors.Is(err, ErrFrameRange) {
		t.Errorf("expected ErrFrameRange, got %v", err)
	}

	r := &countingRenderer{name: "empty"}
	if _, err := Run(context.Background(), r, Options{FrameCount: 1}); !errors.Is(err, render.ErrNoImage) {
		t.Errorf("expected ErrNoImage, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r = newCounting("fake", 2, 2)
	if _, err := Run(ctx, r, Options{FrameCount: 4}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if r.renders != 0 {
		t.Errorf("cancelled run rendered %d frames", r.renders)
	}
}

func TestRun_StatsLines(t *testing.T) {
	var buf bytes.Buffer
	r := newCounting("fake", 2, 2)
	if _, err := Run(context.Background(), r, Options{FrameCount: 2, Stats: &buf}); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "Render:"); n != 2 {
		t.Errorf("expected 2 stats blocks, got %d", n)
	}
}

func TestCheck_Match(t *testing.T) {
	ref, cand := newCounting("ref", 3, 3), newCounting("cand", 3, 3)
	res, err := Check(context.Background(), ref, cand, Options{StartFrame: 1, FrameCount: 3, OutputBase: filepath.Join(t.TempDir(), "c")})
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !res.Passed() || res.Err() != nil {
		t.Errorf("expected pass, got %+v", res.Mismatches)
	}
	if res.Frames != 3 || len(res.Files) != 0 {
		t.Errorf("expected 3 frames and no files, got %d and %v", res.Frames, res.Files)
	}
}

func TestCheck_Mismatch(t *testing.T) {
	base := filepath.Join(t.TempDir(), "c")
	ref, cand := newCounting("ref", 3, 2), newCounting("cand", 3, 2)
	cand.bias = 0.05

	res, err := Check(context.Background(), ref, cand, Options{FrameCount: 2, OutputBase: base})
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if res.Passed() {
		t.Fatal("expected mismatch")
	}
	if !errors.Is(res.Err(), ErrCheckFailed) {
		t.Errorf("expected ErrCheckFailed, got %v", res.Err())
	}
	m := res.Mismatches[0]
	if m.Pixels != 6 || m.Frame != 0 {
		t.Errorf("unexpected mismatch %+v", m)
	}
	for _, f := range []string{base + "_ref_0000.ppm", base + "_0000.ppm", base + "_ref_0001.ppm", base + "_0001.ppm"} {
		if _, err := os.Stat(f); err != nil {
			t.Errorf("missing %s", f)
		}
	}
}

func TestCheck_Tolerance(t *testing.T) {
	ref, cand := newCounting("ref", 2, 2), newCounting("cand", 2, 2)
	cand.bias = 0.001
	res, err := Check(context.Background(), ref, cand, Options{FrameCount: 1, Tolerance: 0.01})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Passed() {
		t.Errorf("difference within tolerance should pass: %+v", res.Mismatches)
	}
}

func TestCheck_SizeMismatch(t *testing.T) {
	_, err := Check(context.Background(), newCounting("a", 2, 2), newCounting("b", 3, 2), Options{FrameCount: 1})
	if !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("expected ErrSizeMismatch, got %v", err)
	}
}

func TestCheck_Backends(t *testing.T) {
	for _, name := range []scene.Name{scene.CircleRGBY, scene.BouncingBalls, scene.SnowflakesSingleFrame} {
		t.Run(name.String(), func(t *testing.T) {
			ref, err := compute.New(compute.Reference)
			if err != nil {
				t.Fatal(err)
			}
			acc, err := compute.New(compute.Accelerated)
			if err != nil {
				t.Fatal(err)
			}
			for _, r := range []render.Renderer{ref, acc} {
				r.AllocOutputImage(64, 64)
				if err := r.LoadScene(name); err != nil {
					t.Fatal(err)
				}
				r.Setup()
			}

			res, err := Check(context.Background(), ref, acc, Options{FrameCount: 2})
			if err != nil {
				t.Fatal(err)
			}
			if !res.Passed() {
				t.Error(res.Err())
			}
		})
	}
}

func TestSummary(t *testing.T) {
	r := newCounting("fake", 2, 2)
	res, err := Run(context.Background(), r, Options{StartFrame: 7, FrameCount: 2})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Summary(&buf, res); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Renderer: fake (2x2)", "FRAME", "mean", "Total:"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "\n7 ") || !strings.Contains(out, "\n8 ") {
		t.Errorf("summary should number frames from the start frame:\n%s", out)
	}
}

func TestFrameFile(t *testing.T) {
	if got := FrameFile("logs/output", 12); got != "logs/output_0012.ppm" {
		t.Errorf("got %s", got)
	}
}
