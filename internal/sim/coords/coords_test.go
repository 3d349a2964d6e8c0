package coords

import (
	"math"
	"testing"

	"mazebots.ai/internal/sim/bounds"
	"mazebots.ai/internal/sim/debug"
	"mazebots.ai/internal/sim/mathx"
)

func TestCellCoords_Accessors(t *testing.T) {
	c := NewCellCoords(1, 2, 3)
	if c.X() != 1 || c.Y() != 2 || c.Z() != 3 {
		t.Fatalf("coords=%v", c)
	}
	if c.AsIVec3() != mathx.NewIVec3(1, 2, 3) {
		t.Fatalf("AsIVec3=%+v", c.AsIVec3())
	}
	if c.AsVec3() != mathx.NewVec3(1, 2, 3) {
		t.Fatalf("AsVec3=%+v", c.AsVec3())
	}
	if CellCoordsFromIVec3(mathx.NewIVec3(4, 5, 6)) != NewCellCoords(4, 5, 6) {
		t.Fatalf("FromIVec3")
	}
}

func TestCellIndices_RoundTrip(t *testing.T) {
	b := bounds.New(mathx.NewIVec3(1, -1, 0), mathx.NewIVec3(5, 4, 2))
	n := 0
	for x := b.Min.X; x <= b.Max.X; x++ {
		for y := b.Min.Y; y <= b.Max.Y; y++ {
			for z := b.Min.Z; z <= b.Max.Z; z++ {
				c := NewCellCoords(x, y, z)
				idx := CellIndicesFromCellCoords(c, b)
				if got := CellCoordsFromCellIndices(idx, b); got != c {
					t.Fatalf("round trip %v -> %v -> %v", c, idx, got)
				}
				if idx.AsIVec3() != c.AsIVec3().Sub(b.Min) {
					t.Fatalf("indices %v for %v", idx, c)
				}
				n++
			}
		}
	}
	if n != 6*5*3 {
		t.Fatalf("visited %d", n)
	}
}

func TestAsCellIndices_MinIsZero(t *testing.T) {
	b := bounds.New(mathx.IVec3{}, mathx.NewIVec3(16, 8, 1))
	c := CellCoordsFromIVec3(b.Min)
	if got := c.AsCellIndices(b); got != (mathx.IVec3{}) {
		t.Fatalf("AsCellIndices(min)=%+v", got)
	}
}

func TestAsCellIndices_OutOfBoundsAsserts(t *testing.T) {
	if !debug.Enabled {
		t.Skip("assertions disabled")
	}
	b := bounds.New(mathx.IVec3{}, mathx.NewIVec3(2, 2, 2))
	defer func() {
		if recover() == nil {
			t.Fatalf("expected assertion")
		}
	}()
	NewCellCoords(5, 0, 0).AsCellIndices(b)
}

func TestFromGameCoordinates(t *testing.T) {
	cases := []struct {
		in   mathx.Vec3
		want CellCoords
	}{
		{mathx.NewVec3(0.5, 0.5, 0.5), NewCellCoords(0, 0, 0)},
		{mathx.NewVec3(1, 2, 3), NewCellCoords(1, 2, 3)},
		{mathx.NewVec3(3.99, 0.01, 1.5), NewCellCoords(3, 0, 1)},
		{mathx.NewVec3(-0.5, -1.5, -2), NewCellCoords(-1, -2, -2)},
	}
	for _, tc := range cases {
		if got := CellCoordsFromGameCoordinates(tc.in); got != tc.want {
			t.Fatalf("FromGameCoordinates(%+v)=%v want %v", tc.in, got, tc.want)
		}
	}
	// Cell-aligned positions survive the round trip.
	c := NewCellCoords(-3, 7, 2)
	if got := CellCoordsFromGameCoordinates(c.AsGameCoordinates()); got != c {
		t.Fatalf("game round trip %v", got)
	}
}

func TestAsGameCoordinatesTransform(t *testing.T) {
	tr := NewCellCoords(1, 2, 3).AsGameCoordinatesTransform()
	want := mathx.TransformFromTranslation(mathx.NewVec3(1, 2, 3)).
		WithRotation(mathx.QuatFromRotationX(math.Pi / 2))
	if !tr.ApproxEqual(want, 1e-12) {
		t.Fatalf("transform=%+v want %+v", tr, want)
	}
}

func TestAxisOriented_FromCellCoords(t *testing.T) {
	a := AxisOrientedFromCellCoords(NewCellCoords(1, 2, 3))
	if a != NewAxisOrientedCellCoords(1, -2, -3) {
		t.Fatalf("oriented=%+v", a)
	}
	if a.AsVec3() != mathx.NewVec3(1, -2, -3) {
		t.Fatalf("AsVec3=%+v", a.AsVec3())
	}
	if a.Add(a.Neg()) != AxisOrientedZero || a.Sub(a) != AxisOrientedZero {
		t.Fatalf("add/neg/sub")
	}
}

func TestAxisOriented_CenteredVisualCoordinates(t *testing.T) {
	if got := AxisOrientedZero.AsCellCenteredVisualCoordinates(); got != mathx.NewVec3(0.5, -0.5, 0.5) {
		t.Fatalf("zero=%+v", got)
	}
	if got := NewAxisOrientedCellCoords(1, 2, 3).AsCellCenteredVisualCoordinates(); got != mathx.NewVec3(1.5, 1.5, 3.5) {
		t.Fatalf("(1,2,3)=%+v", got)
	}
}
