package renderer

import (
	"testing"

	"github.com/Stroby241/svoray/asset/material"
	"github.com/Stroby241/svoray/asset/octree"
	"github.com/Stroby241/svoray/scene"
	"github.com/Stroby241/svoray/tracer"
	"github.com/Stroby241/svoray/tracer/svo"
	"github.com/Stroby241/svoray/types"
)

func makeTestScene(t *testing.T) *scene.Scene {
	t.Helper()

	// Depth 1 tree whose root octants are all solid.
	words := make([]uint32, 4*octree.NodeWords)
	packed := octree.PackMaterials([8]uint8{3, 3, 3, 3, 3, 3, 3, 3})
	words[1] = packed[0]
	words[2] = packed[1]

	table, err := octree.NewPageTable([]octree.PageEntry{{PageID: 0, Slot: 0}})
	if err != nil {
		t.Fatal(err)
	}
	snap, err := octree.NewSnapshot(2, 1, table, words)
	if err != nil {
		t.Fatal(err)
	}

	sc := scene.New(snap, material.DefaultTable())

	// Parallel corner rays along +X for deterministic pixel output.
	sc.Camera.Position = types.Vec3{-3, 1, 1}
	for i := 0; i < 4; i++ {
		sc.Camera.Frustrum[i] = types.Vec4{1, 0, 0, 0}
	}
	return sc
}

func TestDefaultRenderer(t *testing.T) {
	sc := makeTestScene(t)

	r, err := NewDefault(sc, tracer.NaiveScheduler(), Options{
		FrameW:     8,
		FrameH:     8,
		NumTracers: 2,
		Traversal:  svo.DefaultOptions(),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if err = r.Render(); err != nil {
		t.Fatal(err)
	}

	frame := r.Frame()
	if frame.Bounds().Dx() != 8 || frame.Bounds().Dy() != 8 {
		t.Fatalf("expected 8x8 frame; got %dx%d", frame.Bounds().Dx(), frame.Bounds().Dy())
	}

	// Every ray hits the solid volume so no pixel may be transparent and the
	// two tracer bands must produce identical rows.
	for offset := 0; offset < len(frame.Pix); offset += 4 {
		if frame.Pix[offset+3] != 255 {
			t.Fatalf("expected opaque pixel at offset %d", offset)
		}
		if frame.Pix[offset] != frame.Pix[0] || frame.Pix[offset+1] != frame.Pix[1] || frame.Pix[offset+2] != frame.Pix[2] {
			t.Fatalf("expected uniform frame; pixel at offset %d differs", offset)
		}
	}

	stats := r.Stats()
	if len(stats.Tracers) != 2 {
		t.Fatalf("expected stats for 2 tracers; got %d", len(stats.Tracers))
	}
	var rows uint32
	for _, trStat := range stats.Tracers {
		rows += trStat.BlockH
	}
	if rows != 8 {
		t.Fatalf("expected tracer blocks to cover all 8 rows; got %d", rows)
	}
}

func TestDefaultRendererValidation(t *testing.T) {
	sc := makeTestScene(t)
	opts := Options{FrameW: 8, FrameH: 8, NumTracers: 1, Traversal: svo.DefaultOptions()}

	if _, err := NewDefault(nil, tracer.NaiveScheduler(), opts); err != ErrSceneNotDefined {
		t.Fatalf("expected ErrSceneNotDefined; got %v", err)
	}

	noCamera := *sc
	noCamera.Camera = nil
	if _, err := NewDefault(&noCamera, tracer.NaiveScheduler(), opts); err != ErrCameraNotDefined {
		t.Fatalf("expected ErrCameraNotDefined; got %v", err)
	}

	if _, err := NewDefault(sc, tracer.NaiveScheduler(), Options{FrameH: 8}); err != ErrInvalidFrameDims {
		t.Fatalf("expected ErrInvalidFrameDims; got %v", err)
	}
}
