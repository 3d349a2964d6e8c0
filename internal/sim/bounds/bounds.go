// Package bounds implements the integer axis-aligned box that delimits the
// cell coordinates of a loaded level.
package bounds

import (
	"fmt"

	"mazebots.ai/internal/sim/debug"
	"mazebots.ai/internal/sim/mathx"
)

type IBounds3 struct {
	Min mathx.IVec3
	Max mathx.IVec3
}

// New centres a box of the given size on center. Odd sizes put the extra
// unit on the Max side. A negative size component panics.
func New(center, size mathx.IVec3) IBounds3 {
	if size.X < 0 || size.Y < 0 || size.Z < 0 {
		panic(fmt.Sprintf("bounds: negative size %+v", size))
	}
	half := size.DivScalar(2)
	return IBounds3{
		Min: center.Sub(half),
		Max: center.Add(size.Sub(half)),
	}
}

func (b IBounds3) Size() mathx.IVec3 { return b.Max.Sub(b.Min) }

func (b IBounds3) Center() mathx.IVec3 { return b.Min.Add(b.Max).DivScalar(2) }

func (b IBounds3) HalfSize() mathx.IVec3 { return b.Size().DivScalar(2) }

// VisibleArea is half the surface area of the box.
func (b IBounds3) VisibleArea() float64 {
	s := b.Size()
	return float64(s.X*(s.Y+s.Z) + s.Y*s.Z)
}

// Contains reports whether other lies entirely inside b.
func (b IBounds3) Contains(other IBounds3) bool {
	return other.Min.AllGE(b.Min) && other.Max.AllLE(b.Max)
}

// ContainsPoint reports whether p lies in [Min, Max] on every axis.
func (b IBounds3) ContainsPoint(p mathx.IVec3) bool {
	return p.AllGE(b.Min) && p.AllLE(b.Max)
}

func (b IBounds3) Merge(other IBounds3) IBounds3 {
	return IBounds3{
		Min: b.Min.Min(other.Min),
		Max: b.Max.Max(other.Max),
	}
}

func (b IBounds3) Grow(amount mathx.IVec3) IBounds3 {
	out := IBounds3{
		Min: b.Min.Sub(amount),
		Max: b.Max.Add(amount),
	}
	debug.Assertf(out.Min.AllLE(out.Max), "bounds: grow by %+v inverts %+v", amount, b)
	return out
}

func (b IBounds3) Shrink(amount mathx.IVec3) IBounds3 {
	out := IBounds3{
		Min: b.Min.Add(amount),
		Max: b.Max.Sub(amount),
	}
	debug.Assertf(out.Min.AllLE(out.Max), "bounds: shrink by %+v inverts %+v", amount, b)
	return out
}

func (b IBounds3) String() string {
	return fmt.Sprintf("[%d,%d,%d]..[%d,%d,%d]", b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
}
