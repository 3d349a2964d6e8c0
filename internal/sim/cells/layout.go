package cells

import (
	"errors"
	"fmt"

	"mazebots.ai/internal/sim/cell"
)

var ErrBadLayout = errors.New("cell layout does not match data")

// Layout flattens the grid for storage: the number of rows in each level, the
// length of every row, and all cells in z, y, x order.
func (c *Cells) Layout() (levelRows, rowLengths []int, flat []cell.Type) {
	if c == nil {
		return nil, nil, nil
	}
	levelRows = make([]int, 0, len(c.Array))
	for _, level := range c.Array {
		levelRows = append(levelRows, len(level))
		for _, row := range level {
			rowLengths = append(rowLengths, len(row))
			flat = append(flat, row...)
		}
	}
	return levelRows, rowLengths, flat
}

// FromLayout is the inverse of Layout.
func FromLayout(levelRows, rowLengths []int, flat []cell.Type) (*Cells, error) {
	total := 0
	for _, n := range levelRows {
		if n < 0 {
			return nil, fmt.Errorf("%w: negative row count", ErrBadLayout)
		}
		total += n
	}
	if total != len(rowLengths) {
		return nil, fmt.Errorf("%w: %d rows declared, %d row lengths", ErrBadLayout, total, len(rowLengths))
	}
	cellsTotal := 0
	for _, n := range rowLengths {
		if n < 0 {
			return nil, fmt.Errorf("%w: negative row length", ErrBadLayout)
		}
		cellsTotal += n
	}
	if cellsTotal != len(flat) {
		return nil, fmt.Errorf("%w: %d cells declared, %d present", ErrBadLayout, cellsTotal, len(flat))
	}

	array := make([][][]cell.Type, 0, len(levelRows))
	r, off := 0, 0
	for _, rows := range levelRows {
		level := make([][]cell.Type, 0, rows)
		for i := 0; i < rows; i++ {
			n := rowLengths[r]
			row := make([]cell.Type, n)
			copy(row, flat[off:off+n])
			level = append(level, row)
			r++
			off += n
		}
		array = append(array, level)
	}
	return New(array), nil
}
