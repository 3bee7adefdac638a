// Package ldraw reads the subset of the LDraw text format used for brick
// layouts.
//
// # Overview
//
// An LDraw model is a sequence of lines. Each line is split on runs of
// whitespace; the first token is a line type code:
//
//	0 <comment or meta command>
//	1 <colour> x y z a b c d e f g h i <file>
//	2..5 <lines, triangles, quads, optional lines>
//
// Only type 1 (a part placement) carries data this package parses. The twelve
// numbers after the colour are the translation (x y z) followed by the 3×3
// rotation matrix in row-major order.
//
// # Usage
//
// [Scanner] walks an io.Reader line by line and yields the tokens of each
// non-blank line together with its 1-based line number. [ParsePart] turns
// the tokens of a type 1 line into a [PartLine]:
//
//	s := ldraw.NewScanner(r)
//	for s.Scan() {
//	    typ, err := ldraw.ParseType(s.Tokens(), s.Line())
//	    if err != nil {
//	        return err
//	    }
//	    if typ != ldraw.TypePart {
//	        continue
//	    }
//	    part, err := ldraw.ParsePart(s.Tokens(), s.Line())
//	    ...
//	}
//	if err := s.Err(); err != nil {
//	    return err
//	}
//
// # Errors
//
// Parse failures are returned as [*LineError], which carries the offending
// line number and wraps a coded [errors.Error] so callers can switch on
// INVALID_FORMAT or INVALID_NUMBER.
//
// [errors.Error]: github.com/matzehuels/lbcode/pkg/errors.Error
package ldraw
