package lbcode

import (
	"cmp"
	"slices"
)

// SortParts orders parts by (z, x, y) ascending. The sort is stable, so parts
// sharing a position keep their input order.
func SortParts(parts []Part) {
	slices.SortStableFunc(parts, compareParts)
}

func compareParts(a, b Part) int {
	if c := cmp.Compare(a.Pos.Z, b.Pos.Z); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Pos.X, b.Pos.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Pos.Y, b.Pos.Y)
}
