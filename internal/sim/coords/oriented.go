package coords

import "mazebots.ai/internal/sim/mathx"

// CellSize is the edge length of one cell in world units.
const CellSize = 1.0

var (
	cellsPositionAxisOrientation = mathx.IVec3{X: 1, Y: -1, Z: -1}
	cellVisualOffset             = mathx.Vec3{X: 0.5, Y: -0.5, Z: 0.5}
)

type AxisOrientedCellCoords struct {
	x, y, z int
}

var AxisOrientedZero = AxisOrientedCellCoords{}

func NewAxisOrientedCellCoords(x, y, z int) AxisOrientedCellCoords {
	return AxisOrientedCellCoords{x, y, z}
}

func AxisOrientedFromIVec3(v mathx.IVec3) AxisOrientedCellCoords {
	return AxisOrientedCellCoords{v.X, v.Y, v.Z}
}

func AxisOrientedFromCellCoords(c CellCoords) AxisOrientedCellCoords {
	return AxisOrientedFromIVec3(c.AsIVec3().Mul(cellsPositionAxisOrientation))
}

func (a AxisOrientedCellCoords) Add(o AxisOrientedCellCoords) AxisOrientedCellCoords {
	return AxisOrientedCellCoords{a.x + o.x, a.y + o.y, a.z + o.z}
}

func (a AxisOrientedCellCoords) Sub(o AxisOrientedCellCoords) AxisOrientedCellCoords {
	return AxisOrientedCellCoords{a.x - o.x, a.y - o.y, a.z - o.z}
}

func (a AxisOrientedCellCoords) Neg() AxisOrientedCellCoords {
	return AxisOrientedCellCoords{-a.x, -a.y, -a.z}
}

func (a AxisOrientedCellCoords) AsVec3() mathx.Vec3 {
	return mathx.Vec3{X: float64(a.x), Y: float64(a.y), Z: float64(a.z)}
}

// AsCellCenteredVisualCoordinates is where a mesh for this cell goes. There
// is no inverse.
func (a AxisOrientedCellCoords) AsCellCenteredVisualCoordinates() mathx.Vec3 {
	return a.AsVec3().Add(cellVisualOffset).Scale(CellSize)
}
