package lbcode

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"slices"

	lberrors "github.com/matzehuels/lbcode/pkg/errors"
)

// Sizes of the LBCode header and of one part record, in bytes.
const (
	HeaderSize = 4
	RecordSize = 7
)

// Flag bits of a record's first byte.
const (
	// FlagAlongY is set for AlongY parts and clear for AlongX parts.
	FlagAlongY byte = 1 << 0

	// FlagNotHighlighted is set when the part does NOT use DefaultColor.
	FlagNotHighlighted byte = 1 << 1

	flagMask = FlagAlongY | FlagNotHighlighted
)

// Record is one encoded part, positioned relative to the layout origin.
type Record struct {
	Orientation Orientation `json:"orientation"`
	X           uint16      `json:"x"`
	Y           uint16      `json:"y"`
	Z           int16       `json:"z"`
	Highlighted bool        `json:"highlighted"`
}

// Flags returns the packed flags byte of r.
func (r Record) Flags() byte {
	var f byte
	if r.Orientation == AlongY {
		f |= FlagAlongY
	}
	if !r.Highlighted {
		f |= FlagNotHighlighted
	}
	return f
}

// Layout is a decoded or ready-to-encode LBCode document.
type Layout struct {
	Width   uint16   `json:"width"`
	Height  uint16   `json:"height"`
	Records []Record `json:"records"`
}

// Size returns the encoded length of l in bytes.
func (l Layout) Size() int { return HeaderSize + RecordSize*len(l.Records) }

// AppendBinary appends the encoding of l to b.
func (l Layout) AppendBinary(b []byte) ([]byte, error) {
	b = slices.Grow(b, l.Size())
	b = binary.LittleEndian.AppendUint16(b, l.Width)
	b = binary.LittleEndian.AppendUint16(b, l.Height)
	for _, r := range l.Records {
		b = append(b, r.Flags())
		b = binary.LittleEndian.AppendUint16(b, r.X)
		b = binary.LittleEndian.AppendUint16(b, r.Y)
		b = binary.LittleEndian.AppendUint16(b, uint16(r.Z))
	}
	return b, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (l Layout) MarshalBinary() ([]byte, error) {
	return l.AppendBinary(nil)
}

// WriteTo writes the encoding of l to w.
func (l Layout) WriteTo(w io.Writer) (int64, error) {
	data, _ := l.MarshalBinary()
	n, err := w.Write(data)
	return int64(n), err
}

// Layout sorts the collected parts and re-expresses them relative to the
// bounding box origin. X and Y are offset by the box minimum; Z is kept
// absolute. A state without parts yields an empty Layout.
//
// Values that do not fit the 16-bit fields are an OUT_OF_RANGE error.
func (s *State) Layout() (Layout, error) {
	SortParts(s.Parts)

	box, ok := s.Bounds.Rect()
	if !ok {
		return Layout{}, nil
	}

	width, height := box.Width(), box.Height()
	if width > math.MaxUint16 || height > math.MaxUint16 {
		return Layout{}, lberrors.New(lberrors.ErrCodeOutOfRange,
			"model extent %dx%d exceeds %d studs", width, height, math.MaxUint16)
	}

	l := Layout{
		Width:   uint16(width),
		Height:  uint16(height),
		Records: make([]Record, len(s.Parts)),
	}
	for i, p := range s.Parts {
		x, y := p.Pos.X-box.MinX, p.Pos.Y-box.MinY
		if p.Pos.Z < math.MinInt16 || p.Pos.Z > math.MaxInt16 {
			return Layout{}, lberrors.New(lberrors.ErrCodeOutOfRange,
				"line %d: height %d outside [%d, %d]", p.Line, p.Pos.Z, math.MinInt16, math.MaxInt16)
		}
		l.Records[i] = Record{
			Orientation: p.Orientation,
			X:           uint16(x),
			Y:           uint16(y),
			Z:           int16(p.Pos.Z),
			Highlighted: p.Highlighted,
		}
	}
	return l, nil
}

// Encode sorts, normalizes and serializes s.
func Encode(s *State) ([]byte, error) {
	l, err := s.Layout()
	if err != nil {
		return nil, err
	}
	return l.MarshalBinary()
}

// Convert reads an LDraw model from r and returns its LBCode encoding.
// Conversion is all-or-nothing: on error no bytes are returned.
func Convert(r io.Reader, opts ...Option) ([]byte, error) {
	s, err := Collect(r, opts...)
	if err != nil {
		return nil, err
	}
	return Encode(s)
}

// ConvertBytes is Convert over an in-memory model.
func ConvertBytes(model []byte, opts ...Option) ([]byte, error) {
	return Convert(bytes.NewReader(model), opts...)
}
