// Package gridmap implements the static/dynamic occupancy model that
// the planner searches over: world/grid coordinate conversion,
// obstacle rasterization, neighbor enumeration, and edge/heuristic
// cost queries.
package gridmap

import (
	"math"

	"github.com/charmbracelet/log"

	"upside-down-research.com/oss/lpastar-nav/internal/naverrors"
	"upside-down-research.com/oss/lpastar-nav/internal/navcontracts"
)

// Params mirrors the occupancy model's required configuration keys.
type Params struct {
	Width, Height        float64
	Resolution           float64
	FreeCaseValue        float64
	ObstacleCaseValue    float64
	HeuristicsMultiplier float64
}

// GridMap is the static/dynamic occupancy model. Only its obstacle
// multiset mutates after construction; rows, columns, and the cost
// constants are fixed for the lifetime of the map.
type GridMap struct {
	Width, Height float64
	Resolution    float64

	Rows, Columns int

	FreeCost            float64
	ObstacleCost        float64
	HeuristicMultiplier float64
	Infinity            float64

	obstacles map[navcontracts.Cell]int
}

// New builds a GridMap from params, validating every required key is
// present and positive. Missing or non-positive required values raise
// MapInitializationError.
func New(p Params) (*GridMap, error) {
	if p.Width <= 0 {
		return nil, &naverrors.MapInitializationError{Key: "width"}
	}
	if p.Height <= 0 {
		return nil, &naverrors.MapInitializationError{Key: "height"}
	}
	if p.Resolution <= 0 {
		return nil, &naverrors.MapInitializationError{Key: "resolution"}
	}
	if p.FreeCaseValue <= 0 {
		return nil, &naverrors.MapInitializationError{Key: "free_case_value"}
	}
	if p.ObstacleCaseValue <= 0 {
		return nil, &naverrors.MapInitializationError{Key: "obstacle_case_value"}
	}
	if p.HeuristicsMultiplier <= 0 {
		return nil, &naverrors.MapInitializationError{Key: "heuristics_multiplier"}
	}
	if p.ObstacleCaseValue <= p.FreeCaseValue {
		return nil, &naverrors.MapInitializationError{
			Key:    "obstacle_case_value",
			Reason: "must exceed free_case_value",
		}
	}
	if p.HeuristicsMultiplier > p.FreeCaseValue {
		log.Warn("heuristic_multiplier exceeds free_cost: the heuristic is not admissible, paths may be suboptimal",
			"heuristics_multiplier", p.HeuristicsMultiplier, "free_case_value", p.FreeCaseValue)
	}

	rows := int(p.Height / p.Resolution)
	columns := int(p.Width / p.Resolution)

	m := &GridMap{
		Width:               p.Width,
		Height:              p.Height,
		Resolution:          p.Resolution,
		Rows:                rows,
		Columns:             columns,
		FreeCost:            p.FreeCaseValue,
		ObstacleCost:        p.ObstacleCaseValue,
		HeuristicMultiplier: p.HeuristicsMultiplier,
		obstacles:           make(map[navcontracts.Cell]int),
	}
	m.Infinity = 2 * m.ObstacleCost * math.Pow(float64(rows*columns), 2)
	return m, nil
}

// CoordsToIndices converts a world coordinate to the indices of the
// grid cell that contains it: floor division by resolution.
func (m *GridMap) CoordsToIndices(x, y float64) navcontracts.Cell {
	return navcontracts.Cell{I: int(x / m.Resolution), J: int(y / m.Resolution)}
}

// IndicesToCoords converts cell indices to the world coordinate of the
// cell's lower-left corner: the inverse of CoordsToIndices up to
// truncation.
func (m *GridMap) IndicesToCoords(c navcontracts.Cell) navcontracts.WorldPoint {
	return navcontracts.WorldPoint{X: float64(c.I) * m.Resolution, Y: float64(c.J) * m.Resolution}
}

// RasterizeObstacles stamps, for each world obstacle, every cell from
// the one containing the lower-left corner of its axis-aligned square
// to the one containing the upper-right corner (so every cell the
// square touches), clipped to the map bounds, into a multiset keyed by
// cell. Overlapping stamps accumulate counts; duplicate entries are
// expected and preserved.
func (m *GridMap) RasterizeObstacles(obstacles []navcontracts.WorldObstacle) map[navcontracts.Cell]int {
	out := make(map[navcontracts.Cell]int)
	for _, o := range obstacles {
		half := o.W / 2
		lo := m.CoordsToIndices(math.Max(0, o.X-half), math.Max(0, o.Y-half))
		hi := m.CoordsToIndices(math.Min(m.Width, o.X+half), math.Min(m.Height, o.Y+half))
		if hi.I > m.Columns-1 {
			hi.I = m.Columns - 1
		}
		if hi.J > m.Rows-1 {
			hi.J = m.Rows - 1
		}
		for i := lo.I; i <= hi.I; i++ {
			for j := lo.J; j <= hi.J; j++ {
				out[navcontracts.Cell{I: i, J: j}]++
			}
		}
	}
	return out
}

// GetObstacles returns the current obstacle multiset.
func (m *GridMap) GetObstacles() map[navcontracts.Cell]int {
	return m.obstacles
}

// SetObstacles wholesale-replaces the obstacle multiset.
func (m *GridMap) SetObstacles(obstacles map[navcontracts.Cell]int) {
	m.obstacles = obstacles
}

// IsObstacle reports whether a cell currently carries any obstacle
// stamp (count > 0).
func (m *GridMap) IsObstacle(c navcontracts.Cell) bool {
	return m.obstacles[c] > 0
}

// ObstacleMultisetsEqual reports whether two obstacle multisets carry
// the same per-cell counts, mirroring the Python source's
// collections.Counter(old) == collections.Counter(new) comparison.
func ObstacleMultisetsEqual(a, b map[navcontracts.Cell]int) bool {
	if len(a) != len(b) {
		return false
	}
	for c, n := range a {
		if b[c] != n {
			return false
		}
	}
	return true
}

// DiffObstacles returns the cells whose count increased from old to
// new (added) and the cells whose count decreased (removed), as plain
// multiset differences. A cell present in both with an unchanged count
// appears in neither list.
func DiffObstacles(old, new map[navcontracts.Cell]int) (added, removed []navcontracts.Cell) {
	for c, n := range new {
		if old[c] < n {
			added = append(added, c)
		}
	}
	for c, n := range old {
		if new[c] < n {
			removed = append(removed, c)
		}
	}
	return added, removed
}

// neighborOffsets is the 8-connected neighborhood, excluding the
// origin itself.
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Neighbors returns the in-bounds 8-neighbors of c. Ordering follows
// neighborOffsets and is deterministic for a given input.
func (m *GridMap) Neighbors(c navcontracts.Cell) []navcontracts.Cell {
	out := make([]navcontracts.Cell, 0, 8)
	for _, off := range neighborOffsets {
		ni, nj := c.I+off[0], c.J+off[1]
		if ni < 0 || ni >= m.Columns || nj < 0 || nj >= m.Rows {
			continue
		}
		out = append(out, navcontracts.Cell{I: ni, J: nj})
	}
	return out
}

// TransitionCost returns the edge cost between two 8-adjacent cells:
// ObstacleCost if either endpoint is occupied, else FreeCost scaled by
// the square root of the step's Manhattan length (straight steps cost
// FreeCost, diagonal steps FreeCost*sqrt(2)).
func (m *GridMap) TransitionCost(from, to navcontracts.Cell) (float64, error) {
	di := from.I - to.I
	if di < 0 {
		di = -di
	}
	dj := from.J - to.J
	if dj < 0 {
		dj = -dj
	}
	if di > 1 || dj > 1 {
		return 0, &naverrors.InvalidTransition{From: [2]int{from.I, from.J}, To: [2]int{to.I, to.J}}
	}
	if m.IsObstacle(from) || m.IsObstacle(to) {
		return m.ObstacleCost, nil
	}
	return m.FreeCost * math.Sqrt(float64(di+dj)), nil
}

// HeuristicCost returns the admissible-when-configured-correctly
// Euclidean heuristic between two cells.
func (m *GridMap) HeuristicCost(from, to navcontracts.Cell) float64 {
	di := float64(from.I - to.I)
	dj := float64(from.J - to.J)
	return m.HeuristicMultiplier * math.Sqrt(di*di+dj*dj)
}
