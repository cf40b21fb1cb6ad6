package scene

// Kind selects the animation rule applied by AdvanceRange.
type Kind int

const (
	Static Kind = iota
	Bouncing
	Snow
	Hypnotic
	Burst
)

// State is the particle set of a scene in normalized [0,1] coordinates.
// Position, Velocity and Color hold three floats per circle.
type State struct {
	Scene    Name
	Kind     Kind
	Frame    int
	Position []float32
	Velocity []float32
	Color    []float32
	Radius   []float32

	// SnowShading switches the renderer to gradient background and
	// distance-falloff blending.
	SnowShading bool

	burstSize int
}

func newState(name Name, kind Kind, n int) *State {
	return &State{
		Scene:    name,
		Kind:     kind,
		Position: make([]float32, 3*n),
		Velocity: make([]float32, 3*n),
		Color:    make([]float32, 3*n),
		Radius:   make([]float32, n),
	}
}

func (s *State) Len() int { return len(s.Radius) }

func (s *State) Clone() *State {
	c := *s
	c.Position = append([]float32(nil), s.Position...)
	c.Velocity = append([]float32(nil), s.Velocity...)
	c.Color = append([]float32(nil), s.Color...)
	c.Radius = append([]float32(nil), s.Radius...)
	return &c
}

// Advance moves every circle one frame forward.
func (s *State) Advance() {
	s.AdvanceRange(0, s.Len())
	s.Tick()
}

// Tick ends a frame. Callers splitting AdvanceRange across workers call it
// once after all ranges are done.
func (s *State) Tick() { s.Frame++ }

func set3(dst []float32, i int, x, y, z float32) {
	dst[3*i] = x
	dst[3*i+1] = y
	dst[3*i+2] = z
}
