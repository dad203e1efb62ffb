package simplify

import (
	"testing"

	"upside-down-research.com/oss/lpastar-nav/internal/navcontracts"
)

func cells(pairs ...[2]int) []navcontracts.Cell {
	out := make([]navcontracts.Cell, len(pairs))
	for i, p := range pairs {
		out[i] = navcontracts.Cell{I: p[0], J: p[1]}
	}
	return out
}

func TestShortPathsPassThrough(t *testing.T) {
	for _, path := range [][]navcontracts.Cell{
		nil,
		cells([2]int{0, 0}),
		cells([2]int{0, 0}, [2]int{1, 0}),
	} {
		got := Simplify(path)
		if len(got) != len(path) {
			t.Fatalf("expected paths of length <=2 to pass through unchanged, got %v from %v", got, path)
		}
	}
}

// Scenario 1's straight-line reconstructed path simplifies to just its
// last turning point; the reactive loop is responsible for re-adding
// the starting cell before dispatch.
func TestStraightLineSimplifiesToEndpoint(t *testing.T) {
	path := make([]navcontracts.Cell, 0, 11)
	for i := 0; i <= 10; i++ {
		path = append(path, navcontracts.Cell{I: i, J: 0})
	}
	got := Simplify(path)
	want := cells([2]int{10, 0})
	if len(got) != len(want) || got[0] != want[0] {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestTurnIsPreserved(t *testing.T) {
	path := cells(
		[2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0},
		[2]int{2, 1}, [2]int{2, 2},
	)
	got := Simplify(path)
	want := cells([2]int{2, 0}, [2]int{2, 2})
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
