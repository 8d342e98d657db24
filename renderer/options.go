package renderer

import "github.com/Stroby241/svoray/tracer/svo"

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Number of CPU tracers to attach; 0 selects one per logical CPU.
	NumTracers uint32

	// Per-ray traversal options forwarded to the tracers.
	Traversal svo.Options
}
