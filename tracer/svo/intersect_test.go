package svo

import (
	"testing"

	"github.com/Stroby241/svoray/types"
)

func TestIntersectBox(t *testing.T) {
	type spec struct {
		origin  types.Vec3
		dir     types.Vec3
		boxMin  types.Vec3
		size    float32
		expHit  bool
		expTMin float32
		expTMax float32
	}

	specs := []spec{
		// ray outside, pointing at the box
		{types.Vec3{-2, 1, 1}, types.Vec3{1, 0, 0}, types.Vec3{0, 0, 0}, 2, true, 2, 4},
		// ray outside, pointing away
		{types.Vec3{-2, 1, 1}, types.Vec3{-1, 0, 0}, types.Vec3{0, 0, 0}, 2, true, -4, -2},
		// ray outside, missing the box
		{types.Vec3{-2, 5, 1}, types.Vec3{1, 0, 0}, types.Vec3{0, 0, 0}, 2, false, 0, 0},
		// ray origin inside the box
		{types.Vec3{1, 1, 1}, types.Vec3{1, 0, 0}, types.Vec3{0, 0, 0}, 2, true, -1, 1},
	}

	for idx, s := range specs {
		ray := NewRay(s.origin, s.dir)
		tMin, tMax, hit := intersectBox(ray.Origin, ray.InvDir, s.boxMin, s.size)

		if hit != s.expHit {
			t.Fatalf("[spec %d] expected hit %t; got %t", idx, s.expHit, hit)
		}
		if !hit {
			continue
		}
		if tMin != s.expTMin || tMax != s.expTMax {
			t.Fatalf("[spec %d] expected interval [%f, %f]; got [%f, %f]", idx, s.expTMin, s.expTMax, tMin, tMax)
		}

		// Repeating the same query must yield identical results.
		tMin2, tMax2, hit2 := intersectBox(ray.Origin, ray.InvDir, s.boxMin, s.size)
		if tMin2 != tMin || tMax2 != tMax || hit2 != hit {
			t.Fatalf("[spec %d] expected repeated intersection to be identical", idx)
		}
	}
}

func TestIntersectBoxInsideInterval(t *testing.T) {
	// For origins inside the box the interval must straddle zero so callers
	// can clamp the entry distance.
	ray := NewRay(types.Vec3{0.5, 1.7, 0.2}, types.Vec3{0.577, 0.577, 0.577})
	tMin, tMax, hit := intersectBox(ray.Origin, ray.InvDir, types.Vec3{0, 0, 0}, 2)

	if !hit {
		t.Fatal("expected interior origin to intersect the box")
	}
	if tMin > 0 || tMax < 0 {
		t.Fatalf("expected interval to straddle zero; got [%f, %f]", tMin, tMax)
	}
}

func TestInBox(t *testing.T) {
	boxMin := types.Vec3{1, 1, 1}

	type spec struct {
		pos types.Vec3
		exp bool
	}

	specs := []spec{
		{types.Vec3{1.5, 1.5, 1.5}, true},
		{types.Vec3{1, 1, 1}, true},      // min face is inclusive
		{types.Vec3{3, 1.5, 1.5}, false}, // max face is exclusive
		{types.Vec3{0.5, 1.5, 1.5}, false},
		{types.Vec3{1.5, 1.5, 3.5}, false},
	}

	for idx, s := range specs {
		if got := inBox(s.pos, boxMin, 2); got != s.exp {
			t.Fatalf("[spec %d] expected inBox(%v) to be %t; got %t", idx, s.pos, s.exp, got)
		}
	}
}
