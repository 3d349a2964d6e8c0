// Package scene computes what the render and physics side has to spawn for a
// level: one closed block per solid cell and one wall per closed face.
package scene

import (
	"math"

	"mazebots.ai/internal/sim/bounds"
	"mazebots.ai/internal/sim/cell"
	"mazebots.ai/internal/sim/cells"
	"mazebots.ai/internal/sim/coords"
	"mazebots.ai/internal/sim/mathx"
)

const WallThickness = 0.1

type Kind string

const (
	KindClosed Kind = "CLOSED"
	KindWall   Kind = "WALL"
)

type Placement struct {
	Kind Kind
	// Face is the closed face for walls, cell.Empty for closed blocks.
	Face      cell.Type
	Cell      coords.CellCoords
	Transform mathx.Transform
}

// LevelBounds centres a level's cells on the origin.
func LevelBounds(c *cells.Cells) bounds.IBounds3 {
	return bounds.New(mathx.IVec3Zero, c.Size())
}

type wallSpec struct {
	face     cell.Type
	rotation mathx.Quat
}

// The ceiling (+Z) is left open so the level can be looked into.
var walls = []wallSpec{
	{cell.OpenPosX, mathx.QuatFromRotationY(-math.Pi / 2)},
	{cell.OpenNegX, mathx.QuatFromRotationY(-3 * math.Pi / 2)},
	{cell.OpenPosY, mathx.QuatFromRotationX(-math.Pi / 2)},
	{cell.OpenNegY, mathx.QuatFromRotationX(-3 * math.Pi / 2)},
	{cell.OpenNegZ, mathx.QuatIdentity},
}

// Build lists the placements for every present cell of grid, in z, y, x order.
func Build(grid *cells.Cells, b bounds.IBounds3) []Placement {
	out := make([]Placement, 0, grid.Count()*2)
	grid.Each(func(idx mathx.IVec3, t cell.Type) {
		cc := coords.CellCoordsFromCellIndices(coords.CellIndicesFromIVec3(idx), b)
		pos := coords.AxisOrientedFromCellCoords(cc).AsCellCenteredVisualCoordinates()

		if t.IsEmpty() {
			out = append(out, Placement{
				Kind:      KindClosed,
				Face:      cell.Empty,
				Cell:      cc,
				Transform: mathx.TransformFromTranslation(pos),
			})
			return
		}
		for _, w := range walls {
			if t.Has(w.face) {
				continue
			}
			push := w.rotation.MulVec3(mathx.Vec3{Z: -(0.5 - WallThickness)})
			out = append(out, Placement{
				Kind:      KindWall,
				Face:      w.face,
				Cell:      cc,
				Transform: mathx.TransformFromTranslation(pos.Add(push)).WithRotation(w.rotation),
			})
		}
	})
	return out
}

// Counts tallies placements by kind.
func Counts(ps []Placement) (closed, walls int) {
	for _, p := range ps {
		switch p.Kind {
		case KindClosed:
			closed++
		case KindWall:
			walls++
		}
	}
	return closed, walls
}
