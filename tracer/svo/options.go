package svo

// Render modes, mirroring the debug visualization switch of the compute
// kernel UBO.
type RenderMode uint8

const (
	// Resolve hit materials to palette colors with distance fog.
	ModeShaded RenderMode = iota

	// Grayscale travel distance.
	ModeDepth

	// Per-ray step count gradient. Rays that exhaust the step budget
	// saturate the gradient, which makes budget exhaustion distinguishable
	// from a true miss.
	ModeSteps
)

// Per-dispatch traversal options.
type Options struct {
	// Traversal step budget per ray.
	MaxSteps uint32

	// Render mode.
	Mode RenderMode

	// Scale factor applied to the depth/step debug visualizations.
	DebugScale float32
}

func DefaultOptions() Options {
	return Options{
		MaxSteps:   256,
		Mode:       ModeShaded,
		DebugScale: 1.0,
	}
}
