package compute

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/circlebench/internal/render"
	"github.com/san-kum/circlebench/internal/scene"
)

var ErrUnknownRenderer = errors.New("compute: unknown renderer")

const (
	Reference   = "cpuref"
	Accelerated = "cuda"
	Default     = Accelerated
)

var factories = map[string]func() render.Renderer{
	Reference:   func() render.Renderer { return NewRefRenderer() },
	Accelerated: func() render.Renderer { return NewParallelRenderer() },
	"parallel":  func() render.Renderer { return NewParallelRenderer() },
}

// New constructs the backend registered under name.
func New(name string) (render.Renderer, error) {
	fn, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRenderer, name)
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// base holds what every backend owns: the output image and the scene state.
type base struct {
	img   *render.Image
	state *scene.State
}

func (b *base) AllocOutputImage(width, height int) {
	b.img = render.NewImage(width, height)
}

func (b *base) LoadScene(name scene.Name) error {
	s, err := scene.Load(name)
	if err != nil {
		return err
	}
	b.state = s
	return nil
}

func (b *base) Image() *render.Image { return b.img }

func (b *base) ClearImage() {
	if b.img == nil {
		return
	}
	if b.state != nil && b.state.SnowShading {
		clearGradient(b.img)
		return
	}
	b.img.Clear(1, 1, 1, 1)
}
