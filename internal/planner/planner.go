// Package planner implements the LPA* core: the g/rhs potential
// arrays, the key function, and the Reset/UpdateVertex/
// ComputeShortestPath/ReconstructPath operations.
//
// The flat g/rhs array representation is canonical here; no per-vertex
// object graph and no stored predecessors are kept. Predecessors are
// recomputed during reconstruction from g and TransitionCost.
package planner

import (
	"github.com/charmbracelet/log"

	"upside-down-research.com/oss/lpastar-nav/internal/gridmap"
	"upside-down-research.com/oss/lpastar-nav/internal/ipq"
	"upside-down-research.com/oss/lpastar-nav/internal/naverrors"
	"upside-down-research.com/oss/lpastar-nav/internal/navcontracts"
)

// Planner holds the LPA* search state over a GridMap: the per-cell g
// and rhs potentials, the open set, and the current start/goal cells.
// It exclusively owns g, rhs, the open set, and start/goal; the
// GridMap exclusively owns the obstacle multiset.
type Planner struct {
	m     *gridmap.GridMap
	agent navcontracts.Agent

	start, goal navcontracts.Cell

	g, rhs [][]float64
	open   *ipq.Queue
}

// New returns a Planner bound to the given map and agent. Call Reset
// before the first ComputeShortestPath.
func New(m *gridmap.GridMap, agent navcontracts.Agent) *Planner {
	p := &Planner{m: m, agent: agent}
	p.allocate()
	return p
}

func (p *Planner) allocate() {
	p.g = make([][]float64, p.m.Rows)
	p.rhs = make([][]float64, p.m.Rows)
	for j := range p.g {
		p.g[j] = make([]float64, p.m.Columns)
		p.rhs[j] = make([]float64, p.m.Columns)
	}
}

func (p *Planner) gAt(c navcontracts.Cell) float64   { return p.g[c.J][c.I] }
func (p *Planner) rhsAt(c navcontracts.Cell) float64 { return p.rhs[c.J][c.I] }
func (p *Planner) setG(c navcontracts.Cell, v float64) {
	p.g[c.J][c.I] = v
}
func (p *Planner) setRHS(c navcontracts.Cell, v float64) {
	p.rhs[c.J][c.I] = v
}

// Start returns the start cell as of the last Reset.
func (p *Planner) Start() navcontracts.Cell { return p.start }

// Goal returns the goal cell as of the last Reset.
func (p *Planner) Goal() navcontracts.Cell { return p.goal }

// G returns the current g-value of c (for tests and instrumentation).
func (p *Planner) G(c navcontracts.Cell) float64 { return p.gAt(c) }

// RHS returns the current rhs-value of c (for tests and instrumentation).
func (p *Planner) RHS(c navcontracts.Cell) float64 { return p.rhsAt(c) }

func min(xs ...float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

// key computes the lexicographic priority pair:
// ( min(g,rhs) + heuristic(c, goal), min(g,rhs) ).
func (p *Planner) key(c navcontracts.Cell) ipq.Key {
	mgr := min(p.gAt(c), p.rhsAt(c))
	return ipq.Key{A: mgr + p.m.HeuristicCost(c, p.goal), B: mgr}
}

// Reset fills g and rhs with infinity, empties the open set, fixes
// start to the agent's current cell and goal to goalWorld, and seeds
// rhs[start] = 0 with start enqueued.
func (p *Planner) Reset(goalWorld navcontracts.WorldPoint) error {
	p.allocate()
	for j := range p.g {
		for i := range p.g[j] {
			p.g[j][i] = p.m.Infinity
			p.rhs[j][i] = p.m.Infinity
		}
	}
	p.open = ipq.New()

	p.goal = p.m.CoordsToIndices(goalWorld.X, goalWorld.Y)

	pose, err := p.agent.GetPosition()
	if err != nil {
		return err
	}
	p.start = p.m.CoordsToIndices(pose.X, pose.Y)

	p.setRHS(p.start, 0)
	p.open.Insert(p.key(p.start), p.start)
	return nil
}

// UpdateVertex enforces local consistency at v: recomputes rhs[v] from
// its neighbors (unless v is start), then re-inserts v into the open
// set iff it remains inconsistent. Idempotent: calling it twice in a
// row with no intervening change is a no-op the second time.
func (p *Planner) UpdateVertex(v navcontracts.Cell) {
	if v != p.start {
		best := p.m.Infinity
		for _, n := range p.m.Neighbors(v) {
			cost, err := p.m.TransitionCost(n, v)
			if err != nil {
				continue
			}
			if cand := p.gAt(n) + cost; cand < best {
				best = cand
			}
		}
		p.setRHS(v, best)
	}
	p.open.Remove(v)
	if p.gAt(v) != p.rhsAt(v) {
		p.open.Insert(p.key(v), v)
	}
}

// ComputeShortestPath repeatedly pops the lowest-key vertex and
// restores local consistency outward until the open set's top key is
// no smaller than the goal's key and the goal itself is locally
// consistent. Returns NoPathExistsError if g[goal] remains infinite.
func (p *Planner) ComputeShortestPath() error {
	for {
		top, err := p.open.TopKey()
		if err != nil {
			// Empty queue: no more work, not a fatal condition.
			break
		}
		goalKey := p.key(p.goal)
		rhsGoal, gGoal := p.rhsAt(p.goal), p.gAt(p.goal)
		if !top.Less(goalKey) && rhsGoal == gGoal {
			break
		}

		_, v, err := p.open.Pop()
		if err != nil {
			break
		}

		if p.gAt(v) > p.rhsAt(v) {
			p.setG(v, p.rhsAt(v))
			log.Debug("vertex overconsistent", "cell", v, "g", p.gAt(v))
			for _, n := range p.m.Neighbors(v) {
				p.UpdateVertex(n)
			}
		} else {
			p.setG(v, p.m.Infinity)
			log.Debug("vertex underconsistent", "cell", v)
			for _, n := range p.m.Neighbors(v) {
				p.UpdateVertex(n)
			}
			p.UpdateVertex(v)
		}
	}

	if p.gAt(p.goal) == p.m.Infinity {
		return &naverrors.NoPathExistsError{
			Start: [2]int{p.start.I, p.start.J},
			Goal:  [2]int{p.goal.I, p.goal.J},
		}
	}
	return nil
}

// ReconstructPath walks from goal back to the agent's current cell,
// at each step choosing the neighbor that minimizes g[n] + cost(n, s),
// and returns the cell sequence [cur, ..., goal]. Callers must have
// already verified g[goal] is finite via ComputeShortestPath.
func (p *Planner) ReconstructPath() ([]navcontracts.Cell, error) {
	pose, err := p.agent.GetPosition()
	if err != nil {
		return nil, err
	}
	cur := p.m.CoordsToIndices(pose.X, pose.Y)

	s := p.goal
	path := []navcontracts.Cell{s}
	for s != cur {
		neighbors := p.m.Neighbors(s)
		if len(neighbors) == 0 {
			return nil, &naverrors.NoPathExistsError{
				Start: [2]int{p.start.I, p.start.J},
				Goal:  [2]int{p.goal.I, p.goal.J},
			}
		}
		pred := neighbors[0]
		cost, _ := p.m.TransitionCost(pred, s)
		best := p.gAt(pred) + cost
		for _, n := range neighbors[1:] {
			c, err := p.m.TransitionCost(n, s)
			if err != nil {
				continue
			}
			if cand := p.gAt(n) + c; cand < best {
				best = cand
				pred = n
			}
		}
		if best >= p.m.Infinity {
			return nil, &naverrors.NoPathExistsError{
				Start: [2]int{p.start.I, p.start.J},
				Goal:  [2]int{p.goal.I, p.goal.J},
			}
		}
		path = append([]navcontracts.Cell{pred}, path...)
		s = pred
	}
	return path, nil
}
