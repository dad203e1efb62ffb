package gridmap

import (
	"errors"
	"testing"

	"upside-down-research.com/oss/lpastar-nav/internal/naverrors"
	"upside-down-research.com/oss/lpastar-nav/internal/navcontracts"
)

func testParams() Params {
	return Params{
		Width:                10,
		Height:               10,
		Resolution:           1,
		FreeCaseValue:        1,
		ObstacleCaseValue:    1000,
		HeuristicsMultiplier: 1,
	}
}

func TestNewValidation(t *testing.T) {
	t.Run("ValidParams", func(t *testing.T) {
		m, err := New(testParams())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.Rows != 10 || m.Columns != 10 {
			t.Fatalf("expected 10x10 grid, got %dx%d", m.Columns, m.Rows)
		}
	})

	t.Run("MissingWidth", func(t *testing.T) {
		p := testParams()
		p.Width = 0
		_, err := New(p)
		var mie *naverrors.MapInitializationError
		if !errors.As(err, &mie) {
			t.Fatalf("expected MapInitializationError, got %v", err)
		}
		if mie.Key != "width" {
			t.Fatalf("expected key width, got %q", mie.Key)
		}
	})

	t.Run("ObstacleCostMustExceedFreeCost", func(t *testing.T) {
		p := testParams()
		p.ObstacleCaseValue = p.FreeCaseValue
		_, err := New(p)
		var mie *naverrors.MapInitializationError
		if !errors.As(err, &mie) {
			t.Fatalf("expected MapInitializationError, got %v", err)
		}
	})
}

func TestCoordConversionRoundTrip(t *testing.T) {
	m, err := New(testParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := m.CoordsToIndices(3.4, 7.8)
	if c.I != 3 || c.J != 7 {
		t.Fatalf("expected (3,7), got (%d,%d)", c.I, c.J)
	}
	back := m.IndicesToCoords(c)
	if back.X != 3 || back.Y != 7 {
		t.Fatalf("expected (3,7), got (%v,%v)", back.X, back.Y)
	}
}

func TestRasterizeObstaclesIsAMultiset(t *testing.T) {
	m, err := New(testParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	obstacles := []navcontracts.WorldObstacle{
		{X: 5, Y: 5, W: 2},
		{X: 5, Y: 5, W: 2},
	}
	stamped := m.RasterizeObstacles(obstacles)
	cell := navcontracts.Cell{I: 5, J: 5}
	if stamped[cell] != 2 {
		t.Fatalf("expected overlapping obstacles to accumulate to count 2, got %d", stamped[cell])
	}
}

func TestObstacleMultisetsEqual(t *testing.T) {
	a := map[navcontracts.Cell]int{{I: 1, J: 1}: 1}
	b := map[navcontracts.Cell]int{{I: 1, J: 1}: 1}
	if !ObstacleMultisetsEqual(a, b) {
		t.Fatalf("expected equal multisets to compare equal")
	}
	b[navcontracts.Cell{I: 1, J: 1}] = 2
	if ObstacleMultisetsEqual(a, b) {
		t.Fatalf("expected differing counts to compare unequal")
	}
}

func TestDiffObstacles(t *testing.T) {
	old := map[navcontracts.Cell]int{{I: 0, J: 0}: 1, {I: 1, J: 1}: 1}
	next := map[navcontracts.Cell]int{{I: 0, J: 0}: 1, {I: 2, J: 2}: 1}
	added, removed := DiffObstacles(old, next)
	if len(added) != 1 || added[0] != (navcontracts.Cell{I: 2, J: 2}) {
		t.Fatalf("expected added [(2,2)], got %v", added)
	}
	if len(removed) != 1 || removed[0] != (navcontracts.Cell{I: 1, J: 1}) {
		t.Fatalf("expected removed [(1,1)], got %v", removed)
	}
}

func TestNeighborsBoundsChecked(t *testing.T) {
	m, err := New(testParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	corner := m.Neighbors(navcontracts.Cell{I: 0, J: 0})
	if len(corner) != 3 {
		t.Fatalf("expected 3 neighbors at corner, got %d", len(corner))
	}
	interior := m.Neighbors(navcontracts.Cell{I: 5, J: 5})
	if len(interior) != 8 {
		t.Fatalf("expected 8 neighbors in interior, got %d", len(interior))
	}
}

func TestTransitionCost(t *testing.T) {
	m, err := New(testParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("Straight", func(t *testing.T) {
		cost, err := m.TransitionCost(navcontracts.Cell{I: 0, J: 0}, navcontracts.Cell{I: 1, J: 0})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cost != m.FreeCost {
			t.Fatalf("expected straight step to cost FreeCost, got %v", cost)
		}
	})

	t.Run("Diagonal", func(t *testing.T) {
		cost, err := m.TransitionCost(navcontracts.Cell{I: 0, J: 0}, navcontracts.Cell{I: 1, J: 1})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := m.FreeCost * 1.4142135623730951
		if diff := cost - want; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("expected diagonal step to cost FreeCost*sqrt(2), got %v", cost)
		}
	})

	t.Run("NonAdjacentIsInvalid", func(t *testing.T) {
		_, err := m.TransitionCost(navcontracts.Cell{I: 0, J: 0}, navcontracts.Cell{I: 5, J: 5})
		var it *naverrors.InvalidTransition
		if !errors.As(err, &it) {
			t.Fatalf("expected InvalidTransition, got %v", err)
		}
	})

	t.Run("ObstacleEndpoint", func(t *testing.T) {
		obstacles := m.RasterizeObstacles([]navcontracts.WorldObstacle{{X: 1.5, Y: 0.5, W: 0.2}})
		m.SetObstacles(obstacles)
		cost, err := m.TransitionCost(navcontracts.Cell{I: 0, J: 0}, navcontracts.Cell{I: 1, J: 0})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cost != m.ObstacleCost {
			t.Fatalf("expected obstacle-adjacent step to cost ObstacleCost, got %v", cost)
		}
	})
}

func TestHeuristicCost(t *testing.T) {
	m, err := New(testParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h := m.HeuristicCost(navcontracts.Cell{I: 0, J: 0}, navcontracts.Cell{I: 3, J: 4})
	if h != 5 {
		t.Fatalf("expected 3-4-5 triangle heuristic of 5, got %v", h)
	}
}
