// Package lbcode converts LDraw brick models into LBCode, a compact binary
// layout of stud-grid block placements.
//
// # Pipeline
//
// Each LDraw line flows through the same steps:
//
//  1. [ldraw.Tokenize] splits the line; blank lines are skipped
//  2. The line type decides what happens: 0 is ignored, 1 is a part, other
//     types produce a [Warning]
//  3. [Classify] maps the rotation matrix to [AlongX] or [AlongY]
//  4. [ToGrid] maps the LDraw position to a [GridPos]
//  5. The [Collector] appends a [Part] and grows the [Bounds] by its [Footprint]
//
// After the last line, [State.Layout] sorts the parts by (z, x, y) with a
// stable sort and offsets X and Y by the bounding box origin, and
// [Layout.MarshalBinary] writes the bytes.
//
// # Format
//
// All multi-byte values are little-endian:
//
//	offset 0: uint16 width  (bounding box extent in X)
//	offset 2: uint16 height (bounding box extent in Y)
//	offset 4: N records of 7 bytes, N = (len-4)/7
//	  +0 uint8  flags: bit 0 = AlongY, bit 1 = not highlighted
//	  +1 uint16 x (relative to the box)
//	  +3 uint16 y (relative to the box)
//	  +5 int16  z (absolute)
//
// The highlight bit is inverted: it is set when the part does NOT use
// [DefaultColor]. See [FlagNotHighlighted].
//
// # Errors
//
// Conversion is all-or-nothing. A malformed part line, an unsupported
// rotation or a value that does not fit the format aborts with an error
// carrying the line number (see [ldraw.LineError]) and a code from
// [github.com/matzehuels/lbcode/pkg/errors].
//
// # Usage
//
//	data, err := lbcode.Convert(f, lbcode.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//
// [Decode] parses LBCode back into a [Layout]; re-encoding a decoded layout
// reproduces the input byte for byte.
//
// [ldraw.Tokenize]: github.com/matzehuels/lbcode/pkg/ldraw.Tokenize
// [ldraw.LineError]: github.com/matzehuels/lbcode/pkg/ldraw.LineError
package lbcode
