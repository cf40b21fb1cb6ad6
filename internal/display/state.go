package display

import (
	"time"

	"github.com/san-kum/circlebench/internal/frame"
)

type Mode int

const (
	HeadlessBatch Mode = iota
	InteractiveRunning
	InteractivePaused
	Terminated
)

func (m Mode) String() string {
	switch m {
	case HeadlessBatch:
		return "headless"
	case InteractiveRunning:
		return "running"
	case InteractivePaused:
		return "paused"
	case Terminated:
		return "terminated"
	}
	return "unknown"
}

func (m Mode) Interactive() bool {
	return m == InteractiveRunning || m == InteractivePaused
}

// State is everything the manager mutates between frames. The embedded Flags
// are handed to the frame controller on every step.
type State struct {
	Mode Mode
	frame.Flags

	// Viewport is the presentation surface size in pixels. It never affects
	// the backend's frame buffer.
	ViewWidth  int
	ViewHeight int

	ShowStats bool
	LastFrame time.Time
}

// InitialMode picks the starting mode once per run.
func InitialMode(displayRequested bool) Mode {
	if displayRequested {
		return InteractiveRunning
	}
	return HeadlessBatch
}
