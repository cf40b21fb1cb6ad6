package render

import "github.com/san-kum/circlebench/internal/scene"

// Renderer is the capability set the frame pipeline drives. Every call blocks
// until its effect on the backend's image is complete.
type Renderer interface {
	Name() string

	// AllocOutputImage (re)allocates the backend-owned frame buffer.
	AllocOutputImage(width, height int)

	// LoadScene builds the initial particle state for a scene.
	LoadScene(name scene.Name) error

	// Setup prepares per-scene backend resources after LoadScene.
	Setup()

	ClearImage()
	AdvanceAnimation()
	Render()

	// Image returns the frame buffer. The caller must not mutate it.
	Image() *Image
}
