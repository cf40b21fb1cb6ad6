package display

// Event is an input the interactive state machine reacts to.
type Event interface {
	event()
}

type (
	Quit        struct{}
	Resume      struct{}
	TogglePause struct{}
	ToggleStats struct{}
	Resize      struct{ Width, Height int }
)

func (Quit) event()        {}
func (Resume) event()      {}
func (TogglePause) event() {}
func (ToggleStats) event() {}
func (Resize) event()      {}

// Handle applies ev to the state machine. Events outside the interactive
// states are ignored.
func (m *Manager) Handle(ev Event) {
	s := &m.state
	if !s.Mode.Interactive() {
		return
	}

	switch ev := ev.(type) {
	case Quit:
		s.Mode = Terminated
		logger.Debug("quit requested")
	case Resume:
		s.Mode = InteractiveRunning
		s.Running = true
		s.Paused = false
	case TogglePause:
		if s.Mode == InteractivePaused {
			s.Mode = InteractiveRunning
			s.Running = true
			s.Paused = false
		} else {
			s.Mode = InteractivePaused
			s.Paused = true
		}
	case ToggleStats:
		s.ShowStats = !s.ShowStats
	case Resize:
		if ev.Width < 0 || ev.Height < 0 {
			return
		}
		s.ViewWidth, s.ViewHeight = ev.Width, ev.Height
	}
}
