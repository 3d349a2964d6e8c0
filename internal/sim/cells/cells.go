// Package cells holds the parsed maze grid.
//
// The grid is addressed as Array[z][y][x]: one slice per level, one per row,
// one entry per cell. Rows and levels may be ragged; Size records the largest
// extent on each axis and lookups past a short row report no cell.
package cells

import (
	"mazebots.ai/internal/sim/cell"
	"mazebots.ai/internal/sim/mathx"
)

type Cells struct {
	Array [][][]cell.Type
	size  mathx.IVec3
}

// New wraps an existing level/row/cell array, computing its size.
func New(array [][][]cell.Type) *Cells {
	c := &Cells{Array: array}
	c.size = measure(array)
	return c
}

func measure(array [][][]cell.Type) mathx.IVec3 {
	var size mathx.IVec3
	size.Z = len(array)
	for _, level := range array {
		size.Y = max(size.Y, len(level))
		for _, row := range level {
			size.X = max(size.X, len(row))
		}
	}
	return size
}

// Size is (width, depth, height) = (max row length, max rows per level, levels).
func (c *Cells) Size() mathx.IVec3 {
	if c == nil {
		return mathx.IVec3{}
	}
	return c.size
}

// Get returns the flags at p, or false when p is outside [0, Size) on any
// axis or falls past the end of a short row or level.
func (c *Cells) Get(p mathx.IVec3) (cell.Type, bool) {
	if c == nil {
		return cell.Empty, false
	}
	if p.X < 0 || p.Y < 0 || p.Z < 0 || p.X >= c.size.X || p.Y >= c.size.Y || p.Z >= c.size.Z {
		return cell.Empty, false
	}
	if p.Z >= len(c.Array) {
		return cell.Empty, false
	}
	level := c.Array[p.Z]
	if p.Y >= len(level) {
		return cell.Empty, false
	}
	row := level[p.Y]
	if p.X >= len(row) {
		return cell.Empty, false
	}
	return row[p.X], true
}

// GetOrOpenAll is Get for navigation: a missing cell counts as fully open so
// agents on the edge of the authored map are never boxed in by it.
func (c *Cells) GetOrOpenAll(p mathx.IVec3) cell.Type {
	if v, ok := c.Get(p); ok {
		return v
	}
	return cell.OpenAll
}

// Each calls fn for every present cell in z, y, x order.
func (c *Cells) Each(fn func(p mathx.IVec3, t cell.Type)) {
	if c == nil {
		return
	}
	for z, level := range c.Array {
		for y, row := range level {
			for x, t := range row {
				fn(mathx.IVec3{X: x, Y: y, Z: z}, t)
			}
		}
	}
}

// Count returns the number of present cells.
func (c *Cells) Count() int {
	n := 0
	c.Each(func(mathx.IVec3, cell.Type) { n++ })
	return n
}
