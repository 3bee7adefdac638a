package lbcode

import (
	"fmt"

	"github.com/matzehuels/lbcode/pkg/ldraw"
)

// Orientation is the principal axis a part's long side faces.
type Orientation uint8

// Supported orientations. The numeric value is the orientation bit of the
// encoded flags byte.
const (
	AlongX Orientation = iota
	AlongY
)

// String returns "along-x" or "along-y".
func (o Orientation) String() string {
	switch o {
	case AlongX:
		return "along-x"
	case AlongY:
		return "along-y"
	default:
		return fmt.Sprintf("orientation(%d)", uint8(o))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	if o > AlongY {
		return nil, fmt.Errorf("invalid orientation %d", uint8(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(text []byte) error {
	switch string(text) {
	case "along-x":
		*o = AlongX
	case "along-y":
		*o = AlongY
	default:
		return fmt.Errorf("invalid orientation %q", text)
	}
	return nil
}

// Footprint returns the stud width and depth of a part with orientation o.
func (o Orientation) Footprint() (width, depth int) {
	if o == AlongY {
		return 2, 4
	}
	return 4, 2
}

// rotations lists every accepted rotation matrix. Each orientation has two
// equivalent sign conventions.
var rotations = [...]struct {
	m ldraw.Matrix3
	o Orientation
}{
	{ldraw.Matrix3{1, 0, 0, 0, 1, 0, 0, 0, 1}, AlongX},
	{ldraw.Matrix3{-1, 0, 0, 0, 1, 0, 0, 0, -1}, AlongX},
	{ldraw.Matrix3{0, 0, 1, 0, 1, 0, -1, 0, 0}, AlongY},
	{ldraw.Matrix3{0, 0, -1, 0, 1, 0, 1, 0, 0}, AlongY},
}

// Classify matches m against the accepted rotations using exact equality.
// The second result is false when m is not one of them.
func Classify(m ldraw.Matrix3) (Orientation, bool) {
	for _, r := range rotations {
		if m == r.m {
			return r.o, true
		}
	}
	return 0, false
}
