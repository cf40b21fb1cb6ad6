package display

import (
	"context"
	"image"
	"time"

	"golang.org/x/image/draw"

	"github.com/san-kum/circlebench/internal/frame"
	"github.com/san-kum/circlebench/internal/log"
	"github.com/san-kum/circlebench/internal/ppm"
	"github.com/san-kum/circlebench/internal/render"
)

const (
	DefaultHeadlessFrames = 20
	DefaultOutputPath     = "output.ppm"

	historyCapacity = 120
)

var logger = log.New("display")

// Sink persists a finished frame.
type Sink func(img *render.Image, path string) error

type Options struct {
	// Interactive requests a live display. The caller decides whether one is
	// actually available.
	Interactive bool

	HeadlessFrames int
	OutputPath     string
	ShowStats      bool

	// ViewWidth and ViewHeight seed the viewport. Zero means the backend
	// buffer size.
	ViewWidth  int
	ViewHeight int

	Sink Sink
}

// Manager drives one frame controller in either headless or interactive mode.
type Manager struct {
	ctrl  *frame.Controller
	opts  Options
	state State
	now   func() time.Time

	frameRGBA *image.RGBA
	surface   *image.RGBA
	visible   image.Rectangle

	lastTiming frame.Timing
	frameTime  time.Duration
	history    []float64
	frames     int
}

func NewManager(ctrl *frame.Controller, opts Options) *Manager {
	if opts.HeadlessFrames <= 0 {
		opts.HeadlessFrames = DefaultHeadlessFrames
	}
	if opts.OutputPath == "" {
		opts.OutputPath = DefaultOutputPath
	}
	if opts.Sink == nil {
		opts.Sink = ppm.Save
	}

	m := &Manager{
		ctrl: ctrl,
		opts: opts,
		now:  time.Now,
	}
	m.state.Mode = InitialMode(opts.Interactive)
	m.state.Running = true
	m.state.ShowStats = opts.ShowStats
	m.state.ViewWidth, m.state.ViewHeight = opts.ViewWidth, opts.ViewHeight
	if img := ctrl.Image(); img != nil {
		if m.state.ViewWidth == 0 {
			m.state.ViewWidth = img.Width
		}
		if m.state.ViewHeight == 0 {
			m.state.ViewHeight = img.Height
		}
	}
	return m
}

func (m *Manager) State() State { return m.state }

// Surface is the presentation image from the most recent RenderFrame.
func (m *Manager) Surface() *image.RGBA { return m.surface }

// Visible is the clipped region of Surface that holds frame pixels.
func (m *Manager) Visible() image.Rectangle { return m.visible }

func (m *Manager) LastTiming() frame.Timing { return m.lastTiming }

// FrameTime is the wall time between the two most recent presented frames.
func (m *Manager) FrameTime() time.Duration { return m.frameTime }

// Frames counts presented frames.
func (m *Manager) Frames() int { return m.frames }

// History holds recent frame times in milliseconds, oldest first.
func (m *Manager) History() []float64 { return m.history }

// Run dispatches on the initial mode.
func (m *Manager) Run(ctx context.Context) error {
	switch m.state.Mode {
	case HeadlessBatch:
		return m.RunHeadless(ctx)
	case InteractiveRunning, InteractivePaused:
		return m.RunInteractive(ctx)
	}
	return nil
}

// RunHeadless steps the configured number of frames with the simulation
// always running and writes the final frame. Cancellation is only observed
// between frames.
func (m *Manager) RunHeadless(ctx context.Context) error {
	if m.state.Mode != HeadlessBatch {
		return ErrNotHeadless
	}
	defer func() { m.state.Mode = Terminated }()

	n := m.opts.HeadlessFrames
	logger.Infof("headless batch: %d frames -> %s", n, m.opts.OutputPath)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.state.Running, m.state.Paused = true, false
		m.lastTiming = m.ctrl.Step(&m.state.Flags)
		if i == n-1 {
			m.writeOutput()
		}
	}
	return nil
}

func (m *Manager) writeOutput() {
	img := m.ctrl.Image()
	if img == nil {
		logger.Errorf("write %s: %v", m.opts.OutputPath, render.ErrNoImage)
		return
	}
	if err := m.opts.Sink(img, m.opts.OutputPath); err != nil {
		logger.Errorf("write %s: %v", m.opts.OutputPath, err)
		return
	}
	logger.Infof("wrote %s", m.opts.OutputPath)
}

// RenderFrame runs one pipeline step and composites the result into the
// presentation surface.
func (m *Manager) RenderFrame() (frame.Timing, error) {
	if !m.state.Mode.Interactive() {
		return frame.Timing{}, ErrNotInteractive
	}

	t := m.ctrl.Step(&m.state.Flags)
	m.lastTiming = t

	img := m.ctrl.Image()
	if img == nil {
		return t, render.ErrNoImage
	}
	m.compose(img)
	m.frames++

	now := m.now()
	if !m.state.LastFrame.IsZero() {
		m.frameTime = now.Sub(m.state.LastFrame)
		m.history = append(m.history, frame.Millis(m.frameTime))
		if len(m.history) > historyCapacity {
			m.history = m.history[len(m.history)-historyCapacity:]
		}
	}
	m.state.LastFrame = now
	return t, nil
}

// compose copies the frame buffer into the viewport-sized surface, clipped
// to the smaller of the two in each axis.
func (m *Manager) compose(img *render.Image) {
	full := image.Rect(0, 0, img.Width, img.Height)
	if m.frameRGBA == nil || m.frameRGBA.Rect != full {
		m.frameRGBA = image.NewRGBA(full)
	}
	toRGBA(m.frameRGBA, img)

	view := image.Rect(0, 0, m.state.ViewWidth, m.state.ViewHeight)
	if m.surface == nil || m.surface.Rect != view {
		m.surface = image.NewRGBA(view)
	}

	m.visible = image.Rect(0, 0,
		min(img.Width, m.state.ViewWidth),
		min(img.Height, m.state.ViewHeight))
	draw.Draw(m.surface, m.visible, m.frameRGBA, image.Point{}, draw.Src)
}

// toRGBA quantizes the float buffer the same way the PPM writer does. Alpha
// is carried through.
func toRGBA(dst *image.RGBA, img *render.Image) {
	for i := 0; i < len(img.Data); i++ {
		dst.Pix[i] = ppm.ChannelByte(img.Data[i])
	}
}
