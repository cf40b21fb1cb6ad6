// Package display owns the top-level execution mode of a render run.
//
// A Manager starts in HeadlessBatch or InteractiveRunning and never switches
// between the two. Headless runs a fixed number of frames and writes the last
// one to disk. Interactive runs a bubbletea program whose message queue feeds
// Handle, with RenderFrame driven by a self-requeuing frame message.
package display
