// Package compute provides the circle renderer backends.
//
// Two implementations are registered:
//
//   - cpuref: reference renderer, one circle at a time over its bounding box
//   - cuda: accelerated renderer, screen tiles shaded concurrently
//
// Both blend circles into each pixel in scene order through the same shading
// routine, so for identical scenes they produce bit-identical frames:
//
//	r, err := compute.New("cuda")
//	r.AllocOutputImage(1024, 1024)
//	err = r.LoadScene(scene.Rand10K)
//	r.Setup()
//
// The accelerated backend is pure Go; the name is kept for command line
// compatibility with the original harness.
package compute
