package lbcode

import (
	"encoding/binary"

	lberrors "github.com/matzehuels/lbcode/pkg/errors"
)

// Decode parses an LBCode document. The record count is derived from the
// length, which must be HeaderSize plus a multiple of RecordSize.
func Decode(data []byte) (Layout, error) {
	if len(data) < HeaderSize {
		return Layout{}, lberrors.New(lberrors.ErrCodeInvalidFormat,
			"truncated header: %d bytes", len(data))
	}
	body := data[HeaderSize:]
	if len(body)%RecordSize != 0 {
		return Layout{}, lberrors.New(lberrors.ErrCodeInvalidFormat,
			"body length %d is not a multiple of %d", len(body), RecordSize)
	}

	l := Layout{
		Width:  binary.LittleEndian.Uint16(data[0:2]),
		Height: binary.LittleEndian.Uint16(data[2:4]),
	}
	if n := len(body) / RecordSize; n > 0 {
		l.Records = make([]Record, n)
	}
	for i := range l.Records {
		rec := body[i*RecordSize : (i+1)*RecordSize]
		flags := rec[0]
		if flags&^flagMask != 0 {
			return Layout{}, lberrors.New(lberrors.ErrCodeInvalidFormat,
				"record %d: unknown flag bits %#02x", i, flags&^flagMask)
		}
		o := AlongX
		if flags&FlagAlongY != 0 {
			o = AlongY
		}
		l.Records[i] = Record{
			Orientation: o,
			X:           binary.LittleEndian.Uint16(rec[1:3]),
			Y:           binary.LittleEndian.Uint16(rec[3:5]),
			Z:           int16(binary.LittleEndian.Uint16(rec[5:7])),
			Highlighted: flags&FlagNotHighlighted == 0,
		}
	}
	return l, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (l *Layout) UnmarshalBinary(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*l = decoded
	return nil
}
