package ldraw

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	lberrors "github.com/matzehuels/lbcode/pkg/errors"
)

// LineType is the numeric code that starts every LDraw line.
type LineType int

// LDraw line types.
const (
	TypeComment      LineType = 0
	TypePart         LineType = 1
	TypeLine         LineType = 2
	TypeTriangle     LineType = 3
	TypeQuad         LineType = 4
	TypeOptionalLine LineType = 5
)

// PartTokens is the minimum token count of a type 1 line:
// type, colour, 12 transform values and the part file name.
const PartTokens = 15

// transformValues is the number of numeric tokens following the colour.
const transformValues = 12

// Vec3 is a point in LDraw units (LDU).
type Vec3 struct {
	X, Y, Z float64
}

// Matrix3 is a 3×3 rotation matrix in row-major order.
type Matrix3 [9]float64

// PartLine is a parsed type 1 line.
type PartLine struct {
	Number   int     // 1-based line number in the source
	Color    int     // LDraw colour code
	Position Vec3    // translation (x, y, z)
	Rotation Matrix3 // rotation (a..i)
	File     string  // part file reference, may contain spaces
}

// LineError reports a fatal problem on a single input line.
type LineError struct {
	Line int
	Err  *lberrors.Error
}

// Error implements the error interface.
func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap exposes the coded error so errors.GetCode works through LineError.
func (e *LineError) Unwrap() error { return e.Err }

// NewLineError creates a LineError for line n.
func NewLineError(n int, code lberrors.Code, format string, args ...any) *LineError {
	return &LineError{Line: n, Err: lberrors.New(code, format, args...)}
}

// ParseType reads the line type code from the first token.
// A non-numeric code is an INVALID_FORMAT error.
func ParseType(tokens []string, n int) (LineType, error) {
	if len(tokens) == 0 {
		return 0, NewLineError(n, lberrors.ErrCodeInvalidFormat, "empty line has no type")
	}
	t, err := strconv.Atoi(tokens[0])
	if err != nil {
		return 0, NewLineError(n, lberrors.ErrCodeInvalidFormat, "invalid line type %q", tokens[0])
	}
	return LineType(t), nil
}

// ParsePart parses the tokens of a type 1 line.
//
// Token layout (0-based): 0 type, 1 colour, 2..4 translation, 5..13 rotation,
// 14.. file name. Fewer than [PartTokens] tokens is INVALID_FORMAT; a
// non-numeric colour or transform value is INVALID_NUMBER.
func ParsePart(tokens []string, n int) (PartLine, error) {
	if len(tokens) < PartTokens {
		return PartLine{}, NewLineError(n, lberrors.ErrCodeInvalidFormat,
			"invalid line format: expected at least %d tokens, got %d", PartTokens, len(tokens))
	}

	color, err := parseColor(tokens[1])
	if err != nil {
		return PartLine{}, NewLineError(n, lberrors.ErrCodeInvalidNumber, "invalid colour %q", tokens[1])
	}

	var m [transformValues]float64
	for i := range m {
		tok := tokens[i+2]
		v, err := parseNumber(tok)
		if err != nil {
			return PartLine{}, NewLineError(n, lberrors.ErrCodeInvalidNumber,
				"invalid transform value %q at token %d", tok, i+3)
		}
		m[i] = v
	}

	p := PartLine{
		Number:   n,
		Color:    color,
		Position: Vec3{X: m[0], Y: m[1], Z: m[2]},
		File:     strings.Join(tokens[PartTokens-1:], " "),
	}
	copy(p.Rotation[:], m[3:])
	return p, nil
}

// parseColor accepts decimal codes and LDraw direct colours written as
// 0x2RRGGBB or #2RRGGBB.
func parseColor(tok string) (int, error) {
	base := 10
	switch {
	case strings.HasPrefix(tok, "0x"), strings.HasPrefix(tok, "0X"):
		tok, base = tok[2:], 16
	case strings.HasPrefix(tok, "#"):
		tok, base = tok[1:], 16
	}
	v, err := strconv.ParseInt(tok, base, 32)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// parseNumber parses a finite decimal value.
func parseNumber(tok string) (float64, error) {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", tok)
	}
	return v, nil
}
