package svo

import (
	"math"

	"github.com/Stroby241/svoray/types"
)

// A ray with its inverse direction precomputed once so the slab test at
// every traversal level reduces to multiplications. Axis-parallel
// directions yield infinite inverse components; the intersector tolerates
// them.
type Ray struct {
	Origin types.Vec3
	Dir    types.Vec3
	InvDir types.Vec3
}

// Create a ray. The direction is expected to be normalized.
func NewRay(origin, dir types.Vec3) Ray {
	return Ray{
		Origin: origin,
		Dir:    dir,
		InvDir: types.Vec3{1.0 / dir[0], 1.0 / dir[1], 1.0 / dir[2]},
	}
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func floorf(v float32) float32 {
	return float32(math.Floor(float64(v)))
}
