package scene

import (
	"github.com/Stroby241/svoray/asset/material"
	"github.com/Stroby241/svoray/asset/octree"
	"github.com/Stroby241/svoray/types"
)

// A scene bundles everything a render dispatch reads: the octree snapshot,
// the material palette and the camera. The octree and material table are
// owned by the external paging/upload side and must not change while a
// dispatch is in flight.
type Scene struct {
	Camera    *Camera
	Octree    *octree.Snapshot
	Materials *material.Table
}

// Create a scene for an octree snapshot. The camera starts outside the root
// volume on the -X side, looking at the volume center.
func New(snap *octree.Snapshot, materials *material.Table) *Scene {
	size := float32(snap.RootSize())

	camera := NewCamera(45.0)
	camera.Position = types.Vec3{-size, size * 0.5, size * 0.5}
	camera.LookAt = types.Vec3{size * 0.5, size * 0.5, size * 0.5}

	return &Scene{
		Camera:    camera,
		Octree:    snap,
		Materials: materials,
	}
}
