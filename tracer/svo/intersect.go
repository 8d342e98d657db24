package svo

import (
	"math"

	"github.com/Stroby241/svoray/types"
)

// Intersect a ray starting at pos with the axis-aligned cube at boxMin with
// the given edge length using the slab method: per axis the entry/exit
// parametric distances are computed against the near/far face selected by
// the direction sign; the intersection interval is the overlap of the three
// per-axis intervals.
//
// Degenerate directions produce non-finite t values instead of errors;
// callers filter those through their subsequent range checks.
func intersectBox(pos, invDir types.Vec3, boxMin types.Vec3, size float32) (float32, float32, bool) {
	tMin := float32(math.Inf(-1))
	tMax := float32(math.Inf(1))

	for axis := 0; axis < 3; axis++ {
		t1 := (boxMin[axis] - pos[axis]) * invDir[axis]
		t2 := (boxMin[axis] + size - pos[axis]) * invDir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = maxf(tMin, t1)
		tMax = minf(tMax, t2)
	}

	return tMin, tMax, tMax > tMin
}

// Check whether a point lies inside the axis-aligned cube at boxMin with the
// given edge length.
func inBox(pos types.Vec3, boxMin types.Vec3, size float32) bool {
	for axis := 0; axis < 3; axis++ {
		if pos[axis] < boxMin[axis] || pos[axis] >= boxMin[axis]+size {
			return false
		}
	}
	return true
}
