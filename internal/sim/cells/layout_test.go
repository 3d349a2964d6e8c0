package cells

import (
	"errors"
	"testing"

	"mazebots.ai/internal/sim/cell"
)

func TestLayout_RoundTrip(t *testing.T) {
	in := MustParse("╞═╗\n█║\n\n▲")
	levelRows, rowLengths, flat := in.Layout()
	if len(levelRows) != 2 || levelRows[0] != 2 || levelRows[1] != 1 {
		t.Fatalf("levelRows=%v", levelRows)
	}
	if len(rowLengths) != 3 || rowLengths[0] != 3 || rowLengths[1] != 2 || rowLengths[2] != 1 {
		t.Fatalf("rowLengths=%v", rowLengths)
	}
	if len(flat) != 6 || flat[5] != cell.OpenNegZ {
		t.Fatalf("flat=%v", flat)
	}

	out, err := FromLayout(levelRows, rowLengths, flat)
	if err != nil {
		t.Fatalf("FromLayout: %v", err)
	}
	if out.Size() != in.Size() || out.String() != in.String() {
		t.Fatalf("got %q want %q", out.String(), in.String())
	}
}

func TestFromLayout_Mismatch(t *testing.T) {
	if _, err := FromLayout([]int{2}, []int{1}, []cell.Type{cell.Empty}); !errors.Is(err, ErrBadLayout) {
		t.Fatalf("rows: %v", err)
	}
	if _, err := FromLayout([]int{1}, []int{2}, []cell.Type{cell.Empty}); !errors.Is(err, ErrBadLayout) {
		t.Fatalf("cells: %v", err)
	}
}
