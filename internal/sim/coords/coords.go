// Package coords converts between the coordinate spaces of a level:
//
//   - CellCoords: absolute integer cell position in the map's own frame.
//   - CellIndices: CellCoords relative to a level's bounds minimum, used to
//     index into the cell grid.
//   - AxisOrientedCellCoords: cell coordinates flipped into the render
//     engine's axis convention; only used to place visuals and colliders.
//
// The types are distinct on purpose; moving between them always goes
// through an explicit conversion.
package coords

import (
	"fmt"
	"math"

	"mazebots.ai/internal/sim/bounds"
	"mazebots.ai/internal/sim/debug"
	"mazebots.ai/internal/sim/mathx"
)

type CellCoords struct {
	x, y, z int
}

func NewCellCoords(x, y, z int) CellCoords { return CellCoords{x, y, z} }

func CellCoordsFromIVec3(v mathx.IVec3) CellCoords { return CellCoords{v.X, v.Y, v.Z} }

// CellCoordsFromCellIndices undoes AsCellIndices.
func CellCoordsFromCellIndices(indices CellIndices, b bounds.IBounds3) CellCoords {
	return CellCoordsFromIVec3(indices.AsIVec3().Add(b.Min))
}

// CellCoordsFromGameCoordinates returns the cell whose unit cube contains p.
func CellCoordsFromGameCoordinates(p mathx.Vec3) CellCoords {
	return CellCoordsFromIVec3(p.Floor())
}

func (c CellCoords) X() int { return c.x }
func (c CellCoords) Y() int { return c.y }
func (c CellCoords) Z() int { return c.z }

func (c CellCoords) AsIVec3() mathx.IVec3 { return mathx.IVec3{X: c.x, Y: c.y, Z: c.z} }

func (c CellCoords) AsVec3() mathx.Vec3 { return c.AsIVec3().AsVec3() }

func (c CellCoords) Add(o CellCoords) CellCoords { return CellCoords{c.x + o.x, c.y + o.y, c.z + o.z} }
func (c CellCoords) Sub(o CellCoords) CellCoords { return CellCoords{c.x - o.x, c.y - o.y, c.z - o.z} }

// AsCellIndices shifts c to be relative to b.Min. c must lie in
// [b.Min, b.Max]; anything else is a logic error upstream and trips a debug
// assertion. Release builds return the raw difference.
func (c CellCoords) AsCellIndices(b bounds.IBounds3) mathx.IVec3 {
	v := c.AsIVec3()
	debug.Assertf(b.ContainsPoint(v), "CellCoords %v is out of bounds %v", c, b)
	return v.Sub(b.Min)
}

// AsGameCoordinates places the cell's minimum corner in world space; one cell
// is one unit cube.
func (c CellCoords) AsGameCoordinates() mathx.Vec3 { return c.AsVec3() }

// AsGameCoordinatesTransform is the spawn transform for an agent at c. The
// quarter turn about X maps the map's authoring axes onto the engine's.
func (c CellCoords) AsGameCoordinatesTransform() mathx.Transform {
	return mathx.TransformFromTranslation(c.AsGameCoordinates()).
		WithRotation(mathx.QuatFromRotationX(math.Pi / 2))
}

func (c CellCoords) String() string { return fmt.Sprintf("(%d,%d,%d)", c.x, c.y, c.z) }

type CellIndices struct {
	x, y, z int
}

func NewCellIndices(x, y, z int) CellIndices { return CellIndices{x, y, z} }

func CellIndicesFromIVec3(v mathx.IVec3) CellIndices { return CellIndices{v.X, v.Y, v.Z} }

func CellIndicesFromCellCoords(c CellCoords, b bounds.IBounds3) CellIndices {
	return CellIndicesFromIVec3(c.AsCellIndices(b))
}

func (i CellIndices) AsIVec3() mathx.IVec3 { return mathx.IVec3{X: i.x, Y: i.y, Z: i.z} }

func (i CellIndices) String() string { return fmt.Sprintf("[%d,%d,%d]", i.x, i.y, i.z) }
