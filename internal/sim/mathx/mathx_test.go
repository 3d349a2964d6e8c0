package mathx

import (
	"math"
	"testing"
)

func TestFloorDivMod(t *testing.T) {
	if got := FloorDiv(-1, 16); got != -1 {
		t.Fatalf("FloorDiv(-1,16)=%d", got)
	}
	if got := Mod(-1, 16); got != 15 {
		t.Fatalf("Mod(-1,16)=%d", got)
	}
	if got := FloorDiv(17, 16); got != 1 {
		t.Fatalf("FloorDiv(17,16)=%d", got)
	}
}

func TestIVec3DivTruncates(t *testing.T) {
	v := NewIVec3(5, -5, 1).DivScalar(2)
	if v != NewIVec3(2, -2, 0) {
		t.Fatalf("DivScalar=%+v", v)
	}
}

func TestVec3Floor(t *testing.T) {
	got := NewVec3(1.9, -0.5, -2).Floor()
	if got != NewIVec3(1, -1, -2) {
		t.Fatalf("Floor=%+v", got)
	}
}

func TestQuatRotations(t *testing.T) {
	q := QuatFromRotationX(math.Pi / 2)
	got := q.MulVec3(NewVec3(0, 1, 0))
	if !got.ApproxEqual(NewVec3(0, 0, 1), 1e-9) {
		t.Fatalf("rot x: %+v", got)
	}
	q = QuatFromRotationY(-math.Pi / 2)
	got = q.MulVec3(NewVec3(0, 0, -0.4))
	if !got.ApproxEqual(NewVec3(0.4, 0, 0), 1e-9) {
		t.Fatalf("rot y: %+v", got)
	}
	r := QuatFromRotationZ(math.Pi / 2).Mul(QuatFromRotationZ(math.Pi / 2))
	if !r.MulVec3(NewVec3(1, 0, 0)).ApproxEqual(NewVec3(-1, 0, 0), 1e-9) {
		t.Fatalf("compose z")
	}
}

func TestHashDeterministic(t *testing.T) {
	if Hash2(7, 1, 2) != Hash2(7, 1, 2) {
		t.Fatalf("Hash2 not deterministic")
	}
	if Hash2(7, 1, 2) == Hash2(7, 2, 1) {
		t.Fatalf("Hash2 should depend on argument order")
	}
	if Hash3(1, 1, 2, 3) == Hash3(2, 1, 2, 3) {
		t.Fatalf("Hash3 should depend on seed")
	}
}
