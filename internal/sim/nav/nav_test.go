package nav

import (
	"testing"

	"mazebots.ai/internal/sim/bounds"
	"mazebots.ai/internal/sim/cells"
	"mazebots.ai/internal/sim/coords"
	"mazebots.ai/internal/sim/mathx"
)

func gridBounds(g *cells.Cells) bounds.IBounds3 {
	return bounds.IBounds3{Max: g.Size()}
}

var center = mathx.NewVec3(0.5, 0.5, 0.5)

func TestCanMove_ClosedSingleCell(t *testing.T) {
	g := cells.MustParse("█")
	b := gridBounds(g)
	for _, d := range Directions {
		if CanMoveDir(center, d, g, b) {
			t.Fatalf("closed cell allowed %v", d)
		}
		if CanMove(center, d.Vector().AsVec3(), g, b) {
			t.Fatalf("closed cell allowed facing %v", d)
		}
	}
}

func TestCanMove_OpenPosXOnly(t *testing.T) {
	g := cells.MustParse("╞╡")
	b := gridBounds(g)
	for _, d := range Directions {
		got := CanMoveDir(center, d, g, b)
		if got != (d == PosX) {
			t.Fatalf("CanMoveDir(%v)=%v", d, got)
		}
	}
	// Back from the neighbour.
	if !CanMoveDir(mathx.NewVec3(1.5, 0.5, 0.5), NegX, g, b) {
		t.Fatalf("expected -X from (1,0,0)")
	}
}

func TestCanMove_BothSidesMustAgree(t *testing.T) {
	// '╞' opens +X but '█' does not open -X back.
	g := cells.MustParse("╞█")
	b := gridBounds(g)
	if CanMoveDir(center, PosX, g, b) {
		t.Fatalf("one-sided opening must be impassable")
	}
	// '═' opens -X but '█' has no +X.
	g = cells.MustParse("█═")
	if CanMoveDir(mathx.NewVec3(1.5, 0.5, 0.5), NegX, g, gridBounds(g)) {
		t.Fatalf("one-sided opening must be impassable")
	}
}

func TestCanMove_OffGridNeighbourIsOpen(t *testing.T) {
	g := cells.MustParse("═")
	b := gridBounds(g)
	if !CanMoveDir(center, PosX, g, b) || !CanMoveDir(center, NegX, g, b) {
		t.Fatalf("off-grid neighbours are open")
	}
	if CanMoveDir(center, PosY, g, b) {
		t.Fatalf("source face still gates the move")
	}
}

func TestCanMove_Levels(t *testing.T) {
	g := cells.MustParse("▼\n\n▲")
	b := gridBounds(g)
	if !CanMoveDir(center, PosZ, g, b) {
		t.Fatalf("expected shaft down")
	}
	if !CanMoveDir(mathx.NewVec3(0.5, 0.5, 1.5), NegZ, g, b) {
		t.Fatalf("expected shaft up")
	}
	if CanMoveDir(center, NegZ, g, b) {
		t.Fatalf("no opening toward -Z on level 0")
	}
}

func TestCanMove_CenteredBounds(t *testing.T) {
	g := cells.MustParse(`
╞═╦╗
╞═╬╣
██║║
╞═╩╝
`)
	b := bounds.New(mathx.IVec3{}, g.Size())
	// Cell indices (0,0,0) sit at coordinates b.Min = (-2,-2,0).
	pos := coords.CellCoordsFromIVec3(b.Min).AsVec3().Add(mathx.SplatVec3(0.5))
	if !CanMoveDir(pos, PosX, g, b) {
		t.Fatalf("expected +X from top-left")
	}
	if CanMoveDir(pos, PosY, g, b) {
		t.Fatalf("unexpected +Y from top-left")
	}
	// (2,0) '╦' -> (2,1) '╬'
	pos = pos.Add(mathx.NewVec3(2, 0, 0))
	if !CanMoveDir(pos, PosY, g, b) {
		t.Fatalf("expected +Y from ╦")
	}
}

func TestDirectionFromVector(t *testing.T) {
	cases := []struct {
		in   mathx.Vec3
		want Direction
	}{
		{mathx.NewVec3(1, 0, 0), PosX},
		{mathx.NewVec3(-0.9, 0.3, 0.1), NegX},
		{mathx.NewVec3(0.2, -0.7, 0.5), NegY},
		{mathx.NewVec3(0, 0.1, 2), PosZ},
		{mathx.NewVec3(0.5, 0.5, 0), PosX},
		{mathx.NewVec3(0, -0.5, 0.5), NegY},
	}
	for _, tc := range cases {
		got, ok := DirectionFromVector(tc.in)
		if !ok || got != tc.want {
			t.Fatalf("DirectionFromVector(%+v)=%v,%v want %v", tc.in, got, ok, tc.want)
		}
	}
	if _, ok := DirectionFromVector(mathx.Vec3{}); ok {
		t.Fatalf("zero vector has no direction")
	}
	if CanMove(center, mathx.Vec3{}, cells.MustParse("╬"), bounds.IBounds3{Max: mathx.SplatIVec3(1)}) {
		t.Fatalf("zero facing never moves")
	}
}

func TestPriority(t *testing.T) {
	got := PosX.Priority()
	want := [4]Direction{PosX, PosY, NegX, NegY}
	if got != want {
		t.Fatalf("priority(+X)=%v", got)
	}
	for _, d := range []Direction{PosX, PosY, NegX, NegY} {
		if d.Right().Left() != d || d.Left().Right() != d {
			t.Fatalf("right/left not inverse for %v", d)
		}
		if d.Opposite().Opposite() != d {
			t.Fatalf("opposite for %v", d)
		}
	}
	if PosZ.Right() != PosX || NegZ.Left() != NegX {
		t.Fatalf("vertical turns")
	}
}

func TestChooseMove(t *testing.T) {
	// Corridor bending down: ╗ at (1,0) opens -X and +Y.
	g := cells.MustParse("╞╗\n█║")
	b := gridBounds(g)
	pos := mathx.NewVec3(1.5, 0.5, 0.5)

	// Facing +X: forward is closed, right (+Y) is open.
	d, ok := ChooseMove(pos, PosX, g, b, nil)
	if !ok || d != PosY {
		t.Fatalf("ChooseMove=%v,%v", d, ok)
	}
	// Veto +Y; back (-X) is next.
	d, ok = ChooseMove(pos, PosX, g, b, func(dst coords.CellCoords) bool {
		return dst != coords.NewCellCoords(1, 1, 0)
	})
	if !ok || d != NegX {
		t.Fatalf("ChooseMove with veto=%v,%v", d, ok)
	}
	// Nothing allowed.
	if _, ok := ChooseMove(pos, PosX, g, b, func(coords.CellCoords) bool { return false }); ok {
		t.Fatalf("expected no move")
	}
}
