package cell

// Glyph table of the map text format. Rows grow downward in the text, so the
// "top" stroke of a glyph opens -Y and the "bottom" stroke opens +Y.
var glyphs = map[rune]Type{
	'╨': OpenNegY,
	'╥': OpenPosY,
	'╞': OpenPosX,
	'╡': OpenNegX,
	'║': OpenNegY | OpenPosY,
	'═': OpenNegX | OpenPosX,
	'╝': OpenNegY | OpenNegX,
	'╚': OpenNegY | OpenPosX,
	'╗': OpenPosY | OpenNegX,
	'╔': OpenPosY | OpenPosX,
	'╠': OpenNegY | OpenPosY | OpenPosX,
	'╣': OpenNegY | OpenPosY | OpenNegX,
	'╩': OpenNegY | OpenNegX | OpenPosX,
	'╦': OpenPosY | OpenNegX | OpenPosX,
	'╬': OpenNegY | OpenPosY | OpenNegX | OpenPosX,

	// Shafts between levels.
	'▲': OpenNegZ,
	'▼': OpenPosZ,
}

// SolidGlyph is written for closed cells when rendering a grid back to text.
const SolidGlyph = '█'

// FromGlyph returns the flags for r. Unknown runes are closed cells.
func FromGlyph(r rune) Type {
	return glyphs[r]
}

// Glyph returns the rune that parses back to t, or SolidGlyph when t has no
// exact glyph (including Empty).
func Glyph(t Type) rune {
	if t.IsEmpty() {
		return SolidGlyph
	}
	for r, v := range glyphs {
		if v == t {
			return r
		}
	}
	return SolidGlyph
}
