package renderer

import (
	"fmt"
	"image"
	"runtime"
	"time"

	"github.com/Stroby241/svoray/log"
	"github.com/Stroby241/svoray/scene"
	"github.com/Stroby241/svoray/tracer"
	"github.com/Stroby241/svoray/tracer/svo"
)

// The default renderer splits each frame into horizontal block bands and
// fans them out to a pool of CPU tracers, using a block scheduler to size
// the bands from previous frame feedback.
type defaultRenderer struct {
	logger log.Logger

	options   Options
	sceneData *scene.Scene

	scheduler        tracer.BlockScheduler
	tracers          []tracer.Tracer
	blockAssignments []uint32

	// Shared RGBA pixel sink; tracers write disjoint row bands.
	frameBuffer []uint8

	// Block completion signaling.
	doneChan chan uint32
	errChan  chan error

	stats FrameStats
}

// Create a new default renderer using the specified block scheduler.
func NewDefault(sc *scene.Scene, scheduler tracer.BlockScheduler, opts Options) (Renderer, error) {
	if sc == nil || sc.Octree == nil {
		return nil, ErrSceneNotDefined
	}
	if sc.Camera == nil {
		return nil, ErrCameraNotDefined
	}
	if opts.FrameW == 0 || opts.FrameH == 0 {
		return nil, ErrInvalidFrameDims
	}

	numTracers := int(opts.NumTracers)
	if numTracers == 0 {
		numTracers = runtime.NumCPU()
	}

	r := &defaultRenderer{
		logger:      log.New("renderer"),
		options:     opts,
		sceneData:   sc,
		scheduler:   scheduler,
		frameBuffer: make([]uint8, opts.FrameW*opts.FrameH*4),
		doneChan:    make(chan uint32, numTracers),
		errChan:     make(chan error, numTracers),
	}

	for i := 0; i < numTracers; i++ {
		tr := svo.NewTracer(fmt.Sprintf("cpu-%d", i))
		if err := tr.Init(opts.FrameW, opts.FrameH, r.frameBuffer); err != nil {
			r.Close()
			return nil, err
		}

		tr.UpdateState(tracer.Synchronous, tracer.SceneData, sc)
		tr.UpdateState(tracer.Synchronous, tracer.CameraData, sc.Camera)
		tr.UpdateState(tracer.Synchronous, tracer.TraversalOptions, opts.Traversal)

		r.tracers = append(r.tracers, tr)
	}

	if len(r.tracers) == 0 {
		return nil, ErrNoTracers
	}

	r.logger.Infof("attached %d cpu tracers", len(r.tracers))
	return r, nil
}

// Render frame.
func (r *defaultRenderer) Render() error {
	return r.renderFrame()
}

// Get the last rendered frame.
func (r *defaultRenderer) Frame() *image.RGBA {
	im := image.NewRGBA(image.Rect(0, 0, int(r.options.FrameW), int(r.options.FrameH)))
	copy(im.Pix, r.frameBuffer)
	return im
}

// Shutdown renderer and all attached tracers.
func (r *defaultRenderer) Close() {
	for _, tr := range r.tracers {
		tr.Close()
	}
	r.tracers = nil
}

// Get render statistics.
func (r *defaultRenderer) Stats() FrameStats {
	return r.stats
}

// Dispatch one frame to the tracer pool and wait for all blocks.
func (r *defaultRenderer) renderFrame() error {
	r.blockAssignments = r.scheduler.Schedule(r.tracers, r.options.FrameH)

	start := time.Now()

	var blockY uint32 = 0
	pending := 0
	for idx, tr := range r.tracers {
		blockH := r.blockAssignments[idx]
		if blockH == 0 {
			continue
		}

		tr.Enqueue(tracer.BlockRequest{
			FrameW:   r.options.FrameW,
			FrameH:   r.options.FrameH,
			BlockY:   blockY,
			BlockH:   blockH,
			DoneChan: r.doneChan,
			ErrChan:  r.errChan,
		})

		blockY += blockH
		pending++
	}

	var err error
	for ; pending > 0; pending-- {
		select {
		case <-r.doneChan:
		case blockErr := <-r.errChan:
			// Keep draining so no tracer blocks on a dead channel.
			err = blockErr
		}
	}
	if err != nil {
		return err
	}

	r.collectStats(time.Since(start))
	return nil
}

// Push a camera update to all attached tracers.
func (r *defaultRenderer) updateCamera(camera *scene.Camera) {
	for _, tr := range r.tracers {
		tr.UpdateState(tracer.Asynchronous, tracer.CameraData, camera)
	}
}

func (r *defaultRenderer) collectStats(frameTime time.Duration) {
	r.stats = FrameStats{
		Tracers:    make([]TracerStat, len(r.tracers)),
		RenderTime: frameTime,
	}

	for idx, tr := range r.tracers {
		stats := tr.Stats()
		r.stats.Tracers[idx] = TracerStat{
			Id:           tr.Id(),
			BlockH:       stats.BlockH,
			FramePercent: float32(stats.BlockH) * 100.0 / float32(r.options.FrameH),
			RenderTime:   stats.RenderTime,
		}
	}
}
