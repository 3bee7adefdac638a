package lbcode

import (
	"math"

	"github.com/matzehuels/lbcode/pkg/ldraw"
)

// Grid unit sizes in LDraw units.
const (
	UnitWidth  = 20
	UnitDepth  = 20
	UnitHeight = 24
)

// maxCoordinate bounds accepted LDraw coordinates; anything larger cannot
// fit the 16-bit grid.
const maxCoordinate = 1e7

// GridPos is a position in stud-grid units.
type GridPos struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// ToGrid maps an LDraw position to the grid.
//
// Axes are first remapped (LDraw -Z becomes grid Y, LDraw -Y becomes grid Z)
// and rounded to whole LDU. The anchor offset then depends on the orientation,
// and the division truncates toward zero.
func ToGrid(p ldraw.Vec3, o Orientation) GridPos {
	ax := roundHalfUp(p.X)
	ay := roundHalfUp(-p.Z)
	az := roundHalfUp(-p.Y)

	if o == AlongY {
		return GridPos{
			X: (ax - UnitWidth) / UnitWidth,
			Y: (ay + UnitDepth) / UnitDepth,
			Z: (az - UnitHeight) / UnitHeight,
		}
	}
	return GridPos{
		X: (ax - 2*UnitWidth) / UnitWidth,
		Y: (ay - UnitDepth) / UnitDepth,
		Z: (az - UnitHeight) / UnitHeight,
	}
}

// roundHalfUp rounds to the nearest integer, halves toward +Inf. Adding 0.5
// before flooring would round the largest double below 0.5 up to 1.
func roundHalfUp(v float64) int {
	r := math.Floor(v)
	if v-r >= 0.5 {
		r++
	}
	return int(r)
}

func inRange(p ldraw.Vec3) bool {
	return math.Abs(p.X) <= maxCoordinate &&
		math.Abs(p.Y) <= maxCoordinate &&
		math.Abs(p.Z) <= maxCoordinate
}
