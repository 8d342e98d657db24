package tracer

import "time"

type Flag uint8

const (
	// Tracer executes on the local machine.
	Local Flag = 1 << iota
)

// Update modes.
type UpdateMode uint8

const (
	// Apply the update synchronously before returning.
	Synchronous UpdateMode = iota

	// Queue the update; it is applied before the next block is rendered.
	Asynchronous
)

// The state that can be pushed to a tracer via UpdateState.
type UpdateType uint8

const (
	// A [2]uint32 with the output frame dimensions.
	FrameDimensions UpdateType = iota

	// A *scene.Scene with the octree snapshot and material palette.
	SceneData

	// A *scene.Camera.
	CameraData

	// Traversal options (step budget, render mode, debug scale).
	TraversalOptions
)

// A unit of work that is processed by a tracer: a horizontal band of the
// output frame.
type BlockRequest struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Block start row and height.
	BlockY uint32
	BlockH uint32

	// A channel to signal on block completion with the number of completed rows.
	DoneChan chan<- uint32

	// A channel to signal if an error occurs.
	ErrChan chan<- error
}

// Tracer statistics.
type Stats struct {
	// The rendered block height.
	BlockH uint32

	// The time spent rendering the last assigned block.
	RenderTime time.Duration

	// The time spent applying queued state updates.
	UpdateTime time.Duration
}

type Tracer interface {
	// Get tracer id.
	Id() string

	// Get tracer flags.
	Flags() Flag

	// Get the tracer's relative computation speed estimate.
	Speed() uint32

	// Initialize the tracer. The tracer writes RGBA pixels for its
	// assigned blocks directly into frameBuffer.
	Init(frameW, frameH uint32, frameBuffer []uint8) error

	// Shutdown and cleanup tracer.
	Close()

	// Enqueue block request.
	Enqueue(BlockRequest)

	// Push a state update to the tracer.
	UpdateState(UpdateMode, UpdateType, interface{})

	// Retrieve last frame statistics.
	Stats() *Stats
}
