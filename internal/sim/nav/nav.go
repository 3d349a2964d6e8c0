// Package nav decides whether an agent may step from its cell to a
// neighbouring one.
//
// A step is legal when the source cell is open on the outgoing face and the
// destination is open on the facing incoming face. Cells missing from the
// grid count as fully open, so the source face alone gates steps off the map.
package nav

import (
	"mazebots.ai/internal/sim/bounds"
	"mazebots.ai/internal/sim/cells"
	"mazebots.ai/internal/sim/coords"
	"mazebots.ai/internal/sim/mathx"
)

// CanStep is the predicate on cell indices.
func CanStep(src mathx.IVec3, d Direction, grid *cells.Cells) bool {
	if !d.Valid() {
		return false
	}
	dst := src.Add(d.Vector())
	from := grid.GetOrOpenAll(src)
	to := grid.GetOrOpenAll(dst)
	return from.Has(d.Face()) && to.Has(d.Opposite().Face())
}

// CanMoveDir reports whether an agent at world position pos may move one cell
// in direction d.
func CanMoveDir(pos mathx.Vec3, d Direction, grid *cells.Cells, b bounds.IBounds3) bool {
	src := coords.CellCoordsFromGameCoordinates(pos).AsCellIndices(b)
	return CanStep(src, d, grid)
}

// CanMove is CanMoveDir for an arbitrary facing vector, which is first
// projected onto its dominant axis.
func CanMove(pos, facing mathx.Vec3, grid *cells.Cells, b bounds.IBounds3) bool {
	d, ok := DirectionFromVector(facing)
	if !ok {
		return false
	}
	return CanMoveDir(pos, d, grid, b)
}

// ChooseMove tries forward's priority order and returns the first legal
// direction. allow, when non-nil, can veto a destination (in cell
// coordinates) that the predicate itself would permit.
func ChooseMove(pos mathx.Vec3, forward Direction, grid *cells.Cells, b bounds.IBounds3, allow func(dst coords.CellCoords) bool) (Direction, bool) {
	here := coords.CellCoordsFromGameCoordinates(pos)
	for _, d := range forward.Priority() {
		if !CanMoveDir(pos, d, grid, b) {
			continue
		}
		if allow != nil && !allow(here.Add(coords.CellCoordsFromIVec3(d.Vector()))) {
			continue
		}
		return d, true
	}
	return forward, false
}
