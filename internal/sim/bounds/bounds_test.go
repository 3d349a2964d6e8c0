package bounds

import (
	"testing"

	"mazebots.ai/internal/sim/debug"
	"mazebots.ai/internal/sim/mathx"
)

func TestNew_SizeRoundTrip(t *testing.T) {
	centers := []mathx.IVec3{{}, {X: 3, Y: -2, Z: 7}, {X: -5, Y: -5, Z: -5}}
	for _, c := range centers {
		for x := 0; x < 6; x++ {
			for y := 0; y < 6; y++ {
				for z := 0; z < 3; z++ {
					size := mathx.NewIVec3(x, y, z)
					if got := New(c, size).Size(); got != size {
						t.Fatalf("New(%+v,%+v).Size()=%+v", c, size, got)
					}
				}
			}
		}
	}
}

func TestNew_OddSizeBiasesMax(t *testing.T) {
	b := New(mathx.IVec3{}, mathx.NewIVec3(16, 8, 1))
	if b.Min != mathx.NewIVec3(-8, -4, 0) || b.Max != mathx.NewIVec3(8, 4, 1) {
		t.Fatalf("bounds=%v", b)
	}
	b = New(mathx.NewIVec3(10, 10, 10), mathx.NewIVec3(3, 5, 0))
	if b.Min != mathx.NewIVec3(9, 8, 10) || b.Max != mathx.NewIVec3(12, 13, 10) {
		t.Fatalf("bounds=%v", b)
	}
}

func TestNew_NegativeSizePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	New(mathx.IVec3{}, mathx.NewIVec3(1, -1, 1))
}

func TestContainsMerge(t *testing.T) {
	a := IBounds3{Min: mathx.NewIVec3(0, 0, 0), Max: mathx.NewIVec3(4, 4, 4)}
	b := IBounds3{Min: mathx.NewIVec3(1, 1, 1), Max: mathx.NewIVec3(3, 3, 3)}
	c := IBounds3{Min: mathx.NewIVec3(-2, 2, 2), Max: mathx.NewIVec3(1, 6, 3)}

	if !a.Contains(b) || b.Contains(a) {
		t.Fatalf("contains")
	}
	if !a.Contains(a) {
		t.Fatalf("box contains itself")
	}
	if a.Contains(c) {
		t.Fatalf("partial overlap is not containment")
	}
	m := a.Merge(c)
	if m.Min != mathx.NewIVec3(-2, 0, 0) || m.Max != mathx.NewIVec3(4, 6, 4) {
		t.Fatalf("merge=%v", m)
	}
	if !m.Contains(a) || !m.Contains(c) {
		t.Fatalf("merge must contain both inputs")
	}
	if !a.ContainsPoint(mathx.NewIVec3(4, 4, 4)) || a.ContainsPoint(mathx.NewIVec3(5, 0, 0)) {
		t.Fatalf("ContainsPoint is inclusive of Max only")
	}
}

func TestGrowShrinkIdentity(t *testing.T) {
	b := New(mathx.NewIVec3(1, 2, 3), mathx.NewIVec3(4, 5, 6))
	for _, amt := range []mathx.IVec3{{}, {X: 1, Y: 1, Z: 1}, {X: 3, Y: 0, Z: 2}} {
		if got := b.Grow(amt).Shrink(amt); got != b {
			t.Fatalf("grow/shrink %+v: %v want %v", amt, got, b)
		}
	}
	g := b.Grow(mathx.SplatIVec3(2))
	if g.Size() != b.Size().Add(mathx.SplatIVec3(4)) {
		t.Fatalf("grow size=%+v", g.Size())
	}
}

func TestShrinkInvertedAsserts(t *testing.T) {
	if !debug.Enabled {
		t.Skip("assertions disabled")
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected assertion")
		}
	}()
	New(mathx.IVec3{}, mathx.NewIVec3(2, 2, 2)).Shrink(mathx.NewIVec3(2, 0, 0))
}

func TestCenterHalfSizeArea(t *testing.T) {
	b := IBounds3{Min: mathx.NewIVec3(-2, 0, 0), Max: mathx.NewIVec3(4, 2, 3)}
	if b.Center() != mathx.NewIVec3(1, 1, 1) {
		t.Fatalf("center=%+v", b.Center())
	}
	if b.HalfSize() != mathx.NewIVec3(3, 1, 1) {
		t.Fatalf("half=%+v", b.HalfSize())
	}
	// 6*(2+3) + 2*3
	if b.VisibleArea() != 36 {
		t.Fatalf("area=%v", b.VisibleArea())
	}
}
