package svo

import (
	"testing"

	"github.com/Stroby241/svoray/asset/material"
	"github.com/Stroby241/svoray/scene"
	"github.com/Stroby241/svoray/tracer"
	"github.com/Stroby241/svoray/types"
)

func TestTracerBlockWorker(t *testing.T) {
	tr := NewTracer("test")
	if err := tr.Init(4, 4, make([]uint8, 4*4*4)); err != nil {
		t.Fatal(err)
	}
	defer tr.Close()

	// Rendering without scene data must report an error to the block's
	// error channel instead of panicking.
	doneChan := make(chan uint32)
	errChan := make(chan error)
	tr.Enqueue(tracer.BlockRequest{
		FrameW:   4,
		FrameH:   4,
		BlockY:   0,
		BlockH:   4,
		DoneChan: doneChan,
		ErrChan:  errChan,
	})

	select {
	case <-doneChan:
		t.Fatal("expected block render without scene data to fail")
	case err := <-errChan:
		if err != ErrNoSceneData {
			t.Fatalf("expected ErrNoSceneData; got %s", err.Error())
		}
	}
}

func TestTracerRenderBlock(t *testing.T) {
	snap := makeSolidSnapshot(t, 5)
	sc := &scene.Scene{
		Camera:    scene.NewCamera(45.0),
		Octree:    snap,
		Materials: material.DefaultTable(),
	}

	// Parallel corner rays along +X so every pixel traces the same
	// deterministic ray into the solid volume.
	sc.Camera.Position = types.Vec3{-3, 1, 1}
	for i := 0; i < 4; i++ {
		sc.Camera.Frustrum[i] = types.Vec4{1, 0, 0, 0}
	}

	const frameW, frameH = 4, 4
	frameBuffer := make([]uint8, frameW*frameH*4)

	tr := NewTracer("test")
	if err := tr.Init(frameW, frameH, frameBuffer); err != nil {
		t.Fatal(err)
	}
	defer tr.Close()

	tr.UpdateState(tracer.Synchronous, tracer.SceneData, sc)
	tr.UpdateState(tracer.Synchronous, tracer.CameraData, sc.Camera)
	tr.UpdateState(tracer.Synchronous, tracer.TraversalOptions, Options{MaxSteps: 64, Mode: ModeShaded, DebugScale: 1.0})

	doneChan := make(chan uint32)
	errChan := make(chan error)
	tr.Enqueue(tracer.BlockRequest{
		FrameW:   frameW,
		FrameH:   frameH,
		BlockY:   0,
		BlockH:   frameH,
		DoneChan: doneChan,
		ErrChan:  errChan,
	})

	select {
	case err := <-errChan:
		t.Fatal(err)
	case rows := <-doneChan:
		if rows != frameH {
			t.Fatalf("expected %d completed rows; got %d", frameH, rows)
		}
	}

	// All rays hit the same material so all pixels must share the same
	// opaque non-background color.
	exp := [4]uint8{frameBuffer[0], frameBuffer[1], frameBuffer[2], frameBuffer[3]}
	if exp[3] != 255 {
		t.Fatalf("expected opaque pixels; got alpha %d", exp[3])
	}
	bg := [3]uint8{
		uint8(backgroundCol[0] * 255.0),
		uint8(backgroundCol[1] * 255.0),
		uint8(backgroundCol[2] * 255.0),
	}
	if exp[0] == bg[0] && exp[1] == bg[1] && exp[2] == bg[2] {
		t.Fatal("expected hit pixels to differ from the background color")
	}
	for offset := 0; offset < len(frameBuffer); offset += 4 {
		for c := 0; c < 4; c++ {
			if frameBuffer[offset+c] != exp[c] {
				t.Fatalf("expected uniform frame; pixel at offset %d differs", offset)
			}
		}
	}

	stats := tr.Stats()
	if stats.BlockH != frameH {
		t.Fatalf("expected stats to report a block height of %d; got %d", frameH, stats.BlockH)
	}
}

func TestTracerAsyncUpdates(t *testing.T) {
	snap := makeSolidSnapshot(t, 5)
	sc := &scene.Scene{
		Camera:    scene.NewCamera(45.0),
		Octree:    snap,
		Materials: material.DefaultTable(),
	}
	sc.Camera.Position = types.Vec3{-3, 1, 1}
	for i := 0; i < 4; i++ {
		sc.Camera.Frustrum[i] = types.Vec4{1, 0, 0, 0}
	}

	frameBuffer := make([]uint8, 2*2*4)
	tr := NewTracer("test")
	if err := tr.Init(2, 2, frameBuffer); err != nil {
		t.Fatal(err)
	}
	defer tr.Close()

	// Queued asynchronously; the worker commits them before rendering.
	tr.UpdateState(tracer.Asynchronous, tracer.SceneData, sc)
	tr.UpdateState(tracer.Asynchronous, tracer.CameraData, sc.Camera)

	doneChan := make(chan uint32)
	errChan := make(chan error)
	tr.Enqueue(tracer.BlockRequest{
		FrameW:   2,
		FrameH:   2,
		BlockY:   0,
		BlockH:   2,
		DoneChan: doneChan,
		ErrChan:  errChan,
	})

	select {
	case err := <-errChan:
		t.Fatal(err)
	case <-doneChan:
	}

	if frameBuffer[3] != 255 {
		t.Fatal("expected queued scene update to be committed before rendering")
	}
}
