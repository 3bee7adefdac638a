package ldraw

import "strings"

// Tokenize splits a raw line on runs of whitespace after trimming it.
// Empty and whitespace-only lines yield no tokens.
func Tokenize(line string) []string {
	return strings.Fields(line)
}
