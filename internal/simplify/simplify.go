// Package simplify compresses a cell-by-cell path into a sequence of
// turning points.
package simplify

import "upside-down-research.com/oss/lpastar-nav/internal/navcontracts"

// direction encodes the step between two cells as |di| + 2*|dj|. The
// code depends only on the absolute offsets, so it yields four values
// (zero, horizontal, vertical, diagonal): opposite or mirrored steps,
// such as (1,1) and (1,-1), share a code.
func direction(a, b navcontracts.Cell) int {
	di := a.I - b.I
	if di < 0 {
		di = -di
	}
	dj := a.J - b.J
	if dj < 0 {
		dj = -dj
	}
	return di + 2*dj
}

// Simplify returns the subsequence of path consisting of every cell at
// which the encoded step direction changes, and the last cell. The
// first cell is not included; callers that need it re-add it. Paths of
// length 2 or fewer are returned unchanged.
func Simplify(path []navcontracts.Cell) []navcontracts.Cell {
	if len(path) <= 2 {
		return path
	}

	simplified := make([]navcontracts.Cell, 0, len(path))
	dir := direction(path[0], path[1])
	for i := 1; i < len(path); i++ {
		prevDir := dir
		dir = direction(path[i-1], path[i])
		if prevDir != dir {
			simplified = append(simplified, path[i-1])
		}
	}
	simplified = append(simplified, path[len(path)-1])
	return simplified
}
