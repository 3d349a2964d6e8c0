package cells

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"mazebots.ai/internal/sim/cell"
)

var (
	ErrEmptyMap    = errors.New("map has no rows")
	ErrMapTooLarge = errors.New("map dimensions exceed int32")
)

// Parse reads map text. Levels are separated by empty lines, each line of a
// level is a row and each rune of a row is a cell.
func Parse(text string) (*Cells, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var (
		levels [][][]cell.Type
		cur    [][]cell.Type
	)
	flush := func() {
		if len(cur) > 0 {
			levels = append(levels, cur)
			cur = nil
		}
	}
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			flush()
			continue
		}
		row := make([]cell.Type, 0, len(line))
		for _, r := range line {
			row = append(row, cell.FromGlyph(r))
		}
		cur = append(cur, row)
	}
	flush()

	if len(levels) == 0 {
		return nil, ErrEmptyMap
	}
	c := New(levels)
	if c.size.X > math.MaxInt32 || c.size.Y > math.MaxInt32 || c.size.Z > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrMapTooLarge, c.size.X, c.size.Y, c.size.Z)
	}
	return c, nil
}

// MustParse is Parse for level setup: bad map content stops the process.
func MustParse(text string) *Cells {
	c, err := Parse(text)
	if err != nil {
		panic(fmt.Sprintf("parse map: %v", err))
	}
	return c
}

// String renders the grid back into map text. Closed and unrepresentable
// cells become the solid glyph.
func (c *Cells) String() string {
	if c == nil {
		return ""
	}
	var b strings.Builder
	for z, level := range c.Array {
		if z > 0 {
			b.WriteByte('\n')
		}
		for _, row := range level {
			for _, t := range row {
				b.WriteRune(cell.Glyph(t))
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}
