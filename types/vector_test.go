package types

import (
	"math"
	"testing"
)

func TestVec3Ops(t *testing.T) {
	v := XYZ(3, 4, 0)

	if got := v.Len(); got != 5 {
		t.Fatalf("expected length 5; got %f", got)
	}
	if got := v.Normalize(); !ApproxEqual(got, Vec3{0.6, 0.8, 0}, 1e-6) {
		t.Fatalf("expected normalized vector (0.6, 0.8, 0); got %v", got)
	}
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Fatalf("expected normalizing the zero vector to yield the zero vector; got %v", got)
	}

	if got := XYZ(1, 0, 0).Cross(XYZ(0, 1, 0)); got != (Vec3{0, 0, 1}) {
		t.Fatalf("expected cross product (0, 0, 1); got %v", got)
	}
	if got := XYZ(1, 2, 3).Dot(XYZ(4, 5, 6)); got != 32 {
		t.Fatalf("expected dot product 32; got %f", got)
	}
}

func TestVec3MinMax(t *testing.T) {
	v1 := XYZ(1, 5, 3)
	v2 := XYZ(2, 4, 3)

	if got := MinVec3(v1, v2); got != (Vec3{1, 4, 3}) {
		t.Fatalf("expected component-wise min (1, 4, 3); got %v", got)
	}
	if got := MaxVec3(v1, v2); got != (Vec3{2, 5, 3}) {
		t.Fatalf("expected component-wise max (2, 5, 3); got %v", got)
	}
}

func TestQuatRotate(t *testing.T) {
	// Rotating +X a quarter turn around +Z yields +Y.
	q := QuatFromAxisAngle(Vec3{0, 0, 1}, float32(math.Pi/2))

	if got := q.Rotate(Vec3{1, 0, 0}); !ApproxEqual(got, Vec3{0, 1, 0}, 1e-5) {
		t.Fatalf("expected rotated vector (0, 1, 0); got %v", got)
	}

	// Composing two quarter turns gives a half turn.
	half := q.Mul(q).Normalize()
	if got := half.Rotate(Vec3{1, 0, 0}); !ApproxEqual(got, Vec3{-1, 0, 0}, 1e-5) {
		t.Fatalf("expected rotated vector (-1, 0, 0); got %v", got)
	}
}
