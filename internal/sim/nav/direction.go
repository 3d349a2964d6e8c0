package nav

import (
	"math"

	"mazebots.ai/internal/sim/cell"
	"mazebots.ai/internal/sim/mathx"
)

// Direction is one of the six axis-aligned unit moves.
type Direction uint8

const (
	NegX Direction = iota
	PosX
	NegY
	PosY
	NegZ
	PosZ
)

var Directions = [6]Direction{NegX, PosX, NegY, PosY, NegZ, PosZ}

var dirVectors = [6]mathx.IVec3{
	NegX: {X: -1},
	PosX: {X: 1},
	NegY: {Y: -1},
	PosY: {Y: 1},
	NegZ: {Z: -1},
	PosZ: {Z: 1},
}

var dirNames = [6]string{"-X", "+X", "-Y", "+Y", "-Z", "+Z"}

func (d Direction) Valid() bool { return d <= PosZ }

func (d Direction) String() string {
	if !d.Valid() {
		return "?"
	}
	return dirNames[d]
}

// Vector is the unit cell step for d.
func (d Direction) Vector() mathx.IVec3 { return dirVectors[d] }

// Face is the flag a cell needs set to be left through d.
func (d Direction) Face() cell.Type { return cell.Faces[d] }

// Opposite is also the face a neighbour must have open to be entered via d.
func (d Direction) Opposite() Direction { return d ^ 1 }

// Right turns clockwise in the map plane as the text is drawn
// (+X, +Y, -X, -Y). Vertical facings turn to +X.
func (d Direction) Right() Direction {
	switch d {
	case PosX:
		return PosY
	case PosY:
		return NegX
	case NegX:
		return NegY
	case NegY:
		return PosX
	default:
		return PosX
	}
}

func (d Direction) Left() Direction {
	switch d {
	case PosX:
		return NegY
	case NegY:
		return NegX
	case NegX:
		return PosY
	case PosY:
		return PosX
	default:
		return NegX
	}
}

// Priority is the order candidate moves are tried in: forward, right, back,
// left.
func (d Direction) Priority() [4]Direction {
	return [4]Direction{d, d.Right(), d.Opposite(), d.Left()}
}

// DirectionFromVector projects v onto its dominant axis. Off-axis components
// are dropped; ties go to X, then Y. A zero vector has no direction.
func DirectionFromVector(v mathx.Vec3) (Direction, bool) {
	ax, ay, az := math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)
	switch {
	case ax == 0 && ay == 0 && az == 0:
		return 0, false
	case ax >= ay && ax >= az:
		if v.X < 0 {
			return NegX, true
		}
		return PosX, true
	case ay >= az:
		if v.Y < 0 {
			return NegY, true
		}
		return PosY, true
	default:
		if v.Z < 0 {
			return NegZ, true
		}
		return PosZ, true
	}
}
