// Package cell defines the per-cell direction flags of the maze grid.
//
// A Type records which of the six faces of a unit cell are open toward the
// neighbouring cell. Several faces may be open at once, so membership must be
// tested with Has rather than ==.
package cell

import "strings"

type Type uint8

// Empty is a fully walled cell.
const Empty Type = 0

const (
	OpenNegX Type = 1 << iota
	OpenPosX
	OpenNegY
	OpenPosY
	OpenNegZ
	OpenPosZ
)

// OpenAll has every face open.
const OpenAll = OpenNegX | OpenPosX | OpenNegY | OpenPosY | OpenNegZ | OpenPosZ

// Faces lists the single-face flags in a stable order.
var Faces = [6]Type{OpenNegX, OpenPosX, OpenNegY, OpenPosY, OpenNegZ, OpenPosZ}

// Has reports whether every face in dir is open in t.
func (t Type) Has(dir Type) bool { return t&dir == dir }

func (t Type) IsEmpty() bool { return t&OpenAll == Empty }

// Opposite maps each face in t to the face it meets on the neighbouring cell.
func (t Type) Opposite() Type {
	var out Type
	if t.Has(OpenNegX) {
		out |= OpenPosX
	}
	if t.Has(OpenPosX) {
		out |= OpenNegX
	}
	if t.Has(OpenNegY) {
		out |= OpenPosY
	}
	if t.Has(OpenPosY) {
		out |= OpenNegY
	}
	if t.Has(OpenNegZ) {
		out |= OpenPosZ
	}
	if t.Has(OpenPosZ) {
		out |= OpenNegZ
	}
	return out
}

var faceNames = [6]string{"-X", "+X", "-Y", "+Y", "-Z", "+Z"}

func (t Type) String() string {
	if t.IsEmpty() {
		return "EMPTY"
	}
	parts := make([]string, 0, 6)
	for i, f := range Faces {
		if t.Has(f) {
			parts = append(parts, faceNames[i])
		}
	}
	return strings.Join(parts, "|")
}
