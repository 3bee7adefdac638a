package ldraw

import (
	"bufio"
	"io"
	"strings"
)

// maxLineBytes bounds a single source line. LDraw lines are short; the limit
// only guards against binary input.
const maxLineBytes = 1 << 20

const utf8BOM = "\uFEFF"

// Scanner yields the tokens of each non-blank line of an LDraw model.
// Line numbers count every physical line, blank ones included.
type Scanner struct {
	sc     *bufio.Scanner
	line   int
	tokens []string
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &Scanner{sc: sc}
}

// Scan advances to the next non-blank line. It returns false at EOF or on a
// read error, which is then reported by Err.
func (s *Scanner) Scan() bool {
	for s.sc.Scan() {
		s.line++
		text := s.sc.Text()
		if s.line == 1 {
			text = strings.TrimPrefix(text, utf8BOM)
		}
		if tokens := Tokenize(text); len(tokens) > 0 {
			s.tokens = tokens
			return true
		}
	}
	s.tokens = nil
	return false
}

// Line returns the 1-based number of the current line.
func (s *Scanner) Line() int { return s.line }

// Tokens returns the tokens of the current line.
func (s *Scanner) Tokens() []string { return s.tokens }

// Err returns the first read error, if any.
func (s *Scanner) Err() error { return s.sc.Err() }
