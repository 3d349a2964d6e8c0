package cell

import "testing"

func TestGlyphTable(t *testing.T) {
	cases := []struct {
		r    rune
		want Type
	}{
		{'╨', OpenNegY},
		{'╥', OpenPosY},
		{'╞', OpenPosX},
		{'╡', OpenNegX},
		{'║', OpenNegY | OpenPosY},
		{'═', OpenNegX | OpenPosX},
		{'╝', OpenNegY | OpenNegX},
		{'╚', OpenNegY | OpenPosX},
		{'╗', OpenPosY | OpenNegX},
		{'╔', OpenPosY | OpenPosX},
		{'╠', OpenNegY | OpenPosY | OpenPosX},
		{'╣', OpenNegY | OpenPosY | OpenNegX},
		{'╩', OpenNegY | OpenNegX | OpenPosX},
		{'╦', OpenPosY | OpenNegX | OpenPosX},
		{'╬', OpenNegY | OpenPosY | OpenNegX | OpenPosX},
		{'▲', OpenNegZ},
		{'▼', OpenPosZ},
	}
	for _, tc := range cases {
		if got := FromGlyph(tc.r); got != tc.want {
			t.Fatalf("FromGlyph(%q)=%v want %v", tc.r, got, tc.want)
		}
		if got := Glyph(tc.want); got != tc.r {
			t.Fatalf("Glyph(%v)=%q want %q", tc.want, got, tc.r)
		}
	}
	for _, r := range []rune{'█', ' ', '#', '.', 'x', '┼', '0'} {
		if got := FromGlyph(r); got != Empty {
			t.Fatalf("FromGlyph(%q)=%v want EMPTY", r, got)
		}
	}
}

func TestHasNeedsAllBits(t *testing.T) {
	v := OpenPosX | OpenNegY
	if !v.Has(OpenPosX) || !v.Has(OpenNegY) {
		t.Fatalf("Has single face")
	}
	if v.Has(OpenNegX) {
		t.Fatalf("Has(-X) on %v", v)
	}
	if v.Has(OpenPosX | OpenPosY) {
		t.Fatalf("Has requires every bit")
	}
	if !OpenAll.Has(v) {
		t.Fatalf("OpenAll contains everything")
	}
	if !v.Has(Empty) {
		t.Fatalf("every value contains EMPTY")
	}
}

func TestOpposite(t *testing.T) {
	for i, f := range Faces {
		o := f.Opposite()
		if o.Opposite() != f {
			t.Fatalf("opposite not involutive for %v", f)
		}
		// Faces alternate neg/pos per axis.
		if o != Faces[i^1] {
			t.Fatalf("Opposite(%v)=%v", f, o)
		}
	}
	if OpenAll.Opposite() != OpenAll {
		t.Fatalf("OpenAll opposite")
	}
}

func TestString(t *testing.T) {
	if Empty.String() != "EMPTY" {
		t.Fatalf("Empty.String()=%q", Empty.String())
	}
	if got := (OpenNegX | OpenPosZ).String(); got != "-X|+Z" {
		t.Fatalf("String=%q", got)
	}
}
