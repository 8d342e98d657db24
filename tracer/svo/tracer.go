package svo

import (
	"fmt"
	"sync"
	"time"

	"github.com/Stroby241/svoray/log"
	"github.com/Stroby241/svoray/scene"
	"github.com/Stroby241/svoray/tracer"
	"github.com/Stroby241/svoray/types"
)

// Reserved debug colors for per-ray error outcomes. Kept deliberately loud
// so data corruption and residency bugs are visible in the output instead of
// blending into the background.
var (
	corruptColor   = types.Vec3{1, 0, 1}
	pageFaultColor = types.Vec3{0, 1, 1}
	backgroundCol  = types.Vec3{0.12, 0.14, 0.18}
)

// A CPU tracer that renders blocks of the output frame by running the paged
// octree traversal kernel once per pixel. Each traversal is a pure function
// of (ray, octree snapshot, material table); tracers only share the frame
// buffer, into which they write disjoint row bands.
type Tracer struct {
	logger log.Logger

	sync.Mutex
	wg sync.WaitGroup

	// The tracer id.
	id string

	// Relative speed estimate used by the block schedulers.
	speed uint32

	// Output frame geometry and shared pixel sink.
	frameW      uint32
	frameH      uint32
	frameBuffer []uint8

	// A buffer for queuing updates. Updates are grouped by type and
	// latest updates always overwrite the previous ones.
	updateBuffer map[tracer.UpdateType]interface{}

	// A channel for receiving block requests from the renderer.
	blockReqChan chan tracer.BlockRequest

	// A channel for signaling the worker to exit.
	closeChan chan struct{}

	// Statistics for last rendered frame.
	stats *tracer.Stats

	// The scene state used while rendering.
	sceneData *scene.Scene
	camera    *scene.Camera
	options   Options
}

// Create a new CPU tracer.
func NewTracer(id string) *Tracer {
	return &Tracer{
		logger:       log.New(fmt.Sprintf("svo tracer (%s)", id)),
		id:           id,
		speed:        1,
		updateBuffer: make(map[tracer.UpdateType]interface{}, 0),
		blockReqChan: make(chan tracer.BlockRequest, 1),
		stats:        &tracer.Stats{},
		options:      DefaultOptions(),
	}
}

// Get tracer id.
func (tr *Tracer) Id() string {
	return tr.id
}

// Get tracer flags.
func (tr *Tracer) Flags() tracer.Flag {
	return tracer.Local
}

// Get the tracer's relative computation speed estimate.
func (tr *Tracer) Speed() uint32 {
	return tr.speed
}

// Initialize tracer and start its block worker.
func (tr *Tracer) Init(frameW, frameH uint32, frameBuffer []uint8) error {
	tr.Lock()
	defer tr.Unlock()

	if len(frameBuffer) < int(frameW*frameH*4) {
		return fmt.Errorf("svo: frame buffer too small for %dx%d frame", frameW, frameH)
	}

	tr.frameW = frameW
	tr.frameH = frameH
	tr.frameBuffer = frameBuffer

	if tr.closeChan == nil {
		tr.startWorker()
	}

	return nil
}

// Shutdown and cleanup tracer.
func (tr *Tracer) Close() {
	tr.Lock()
	defer tr.Unlock()

	if tr.closeChan != nil {
		tr.closeChan <- struct{}{}

		// wait for worker to ack close and shutdown channel
		<-tr.closeChan
		close(tr.closeChan)
		tr.closeChan = nil
	}

	tr.sceneData = nil
	tr.frameBuffer = nil
}

// Enqueue block request.
func (tr *Tracer) Enqueue(blockReq tracer.BlockRequest) {
	select {
	case tr.blockReqChan <- blockReq:
	default:
		// drop the request if worker is not listening
		tr.logger.Error("request processor did not receive block request")
	}
}

// Push a state update to the tracer. Synchronous updates are applied before
// returning; asynchronous ones are queued and committed before the next
// block renders.
func (tr *Tracer) UpdateState(mode tracer.UpdateMode, updateType tracer.UpdateType, data interface{}) {
	if mode == tracer.Synchronous {
		tr.Lock()
		defer tr.Unlock()
		if err := tr.applyUpdate(updateType, data); err != nil {
			tr.logger.Error(err)
		}
		return
	}

	tr.Lock()
	defer tr.Unlock()
	tr.updateBuffer[updateType] = data
}

// Retrieve last frame statistics.
func (tr *Tracer) Stats() *tracer.Stats {
	return tr.stats
}

// Apply a single state update. Called while holding tr.Lock().
func (tr *Tracer) applyUpdate(updateType tracer.UpdateType, data interface{}) error {
	switch updateType {
	case tracer.FrameDimensions:
		dims, ok := data.([2]uint32)
		if !ok {
			return fmt.Errorf("unsupported payload %T for frame dimension update", data)
		}
		tr.frameW, tr.frameH = dims[0], dims[1]
	case tracer.SceneData:
		sc, ok := data.(*scene.Scene)
		if !ok {
			return fmt.Errorf("unsupported payload %T for scene update", data)
		}
		tr.sceneData = sc
		tr.camera = sc.Camera
	case tracer.CameraData:
		camera, ok := data.(*scene.Camera)
		if !ok {
			return fmt.Errorf("unsupported payload %T for camera update", data)
		}
		tr.camera = camera
	case tracer.TraversalOptions:
		opts, ok := data.(Options)
		if !ok {
			return fmt.Errorf("unsupported payload %T for traversal option update", data)
		}
		tr.options = opts
	default:
		return fmt.Errorf("unsupported update type %d", updateType)
	}

	return nil
}

// Commit queued changes. Called while holding tr.Lock().
func (tr *Tracer) commitUpdates() error {
	for updateType, data := range tr.updateBuffer {
		if err := tr.applyUpdate(updateType, data); err != nil {
			return err
		}
	}

	tr.updateBuffer = make(map[tracer.UpdateType]interface{}, 0)
	return nil
}

// Spawn a go-routine to process block render requests.
func (tr *Tracer) startWorker() {
	// Worker already running
	if tr.closeChan != nil {
		return
	}
	tr.closeChan = make(chan struct{}, 0)

	readyChan := make(chan struct{}, 0)
	tr.wg.Add(1)
	go func() {
		defer tr.wg.Done()
		var blockReq tracer.BlockRequest
		var startTime time.Time
		var err error
		close(readyChan)
		for {
			select {
			case blockReq = <-tr.blockReqChan:
				tr.Lock()

				// Apply any pending changes
				startTime = time.Now()
				if len(tr.updateBuffer) != 0 {
					err = tr.commitUpdates()
					if err != nil {
						tr.Unlock()
						blockReq.ErrChan <- err
						continue
					}
					tr.stats.UpdateTime = time.Since(startTime)
				}

				// Render block and reply with our completion status
				err = tr.renderBlock(&blockReq)
				tr.Unlock()
				if err != nil {
					blockReq.ErrChan <- err
					continue
				}

				// Update stats
				tr.stats.BlockH = blockReq.BlockH
				tr.stats.RenderTime = time.Since(startTime)

				blockReq.DoneChan <- blockReq.BlockH
			case <-tr.closeChan:
				// Ack close
				tr.closeChan <- struct{}{}
				return
			}
		}
	}()

	// Wait for go-routine to start
	<-readyChan
}

// Render a block: one traversal per pixel, primary rays interpolated from
// the camera frustrum corners.
func (tr *Tracer) renderBlock(blockReq *tracer.BlockRequest) error {
	if tr.sceneData == nil || tr.sceneData.Octree == nil {
		return ErrNoSceneData
	}
	if tr.camera == nil {
		return ErrNoCameraData
	}

	snap := tr.sceneData.Octree
	frustrum := tr.camera.Frustrum
	eyePos := tr.camera.Position

	var x, y uint32
	for y = blockReq.BlockY; y < blockReq.BlockY+blockReq.BlockH; y++ {
		ty := (float32(y) + 0.5) / float32(blockReq.FrameH)
		lVec := frustrum[0].Mul(1.0 - ty).Vec3().Add(frustrum[2].Mul(ty).Vec3())
		rVec := frustrum[1].Mul(1.0 - ty).Vec3().Add(frustrum[3].Mul(ty).Vec3())

		for x = 0; x < blockReq.FrameW; x++ {
			tx := (float32(x) + 0.5) / float32(blockReq.FrameW)
			dir := lVec.Mul(1.0 - tx).Add(rVec.Mul(tx)).Normalize()

			res := Traverse(snap, NewRay(eyePos, dir), tr.options.MaxSteps)
			tr.writePixel(x, y, blockReq.FrameW, tr.shade(res))
		}
	}

	return nil
}

// Map a traversal result to an output color.
func (tr *Tracer) shade(res Result) types.Vec3 {
	switch res.Status {
	case StatusCorrupt:
		return corruptColor
	case StatusPageFault:
		return pageFaultColor
	}

	switch tr.options.Mode {
	case ModeDepth:
		if res.Status != StatusHit {
			return types.Vec3{}
		}
		rootSize := float32(tr.sceneData.Octree.RootSize())
		d := clamp01(1.0 - res.Distance*tr.options.DebugScale/(2.0*rootSize))
		return types.Vec3{d, d, d}
	case ModeSteps:
		g := clamp01(float32(res.Steps) * tr.options.DebugScale / float32(tr.options.MaxSteps))
		return types.Vec3{g, 1.0 - g, 0}
	}

	if res.Status != StatusHit {
		return backgroundCol
	}

	base := tr.sceneData.Materials.Resolve(res.Material).Vec3()
	rootSize := float32(tr.sceneData.Octree.RootSize())
	fog := clamp01(res.Distance / (3.0 * rootSize))
	return base.Mul(1.0 - 0.6*fog)
}

func (tr *Tracer) writePixel(x, y, frameW uint32, color types.Vec3) {
	offset := (y*frameW + x) * 4
	tr.frameBuffer[offset] = uint8(clamp01(color[0]) * 255.0)
	tr.frameBuffer[offset+1] = uint8(clamp01(color[1]) * 255.0)
	tr.frameBuffer[offset+2] = uint8(clamp01(color[2]) * 255.0)
	tr.frameBuffer[offset+3] = 255
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
