package reactive

import (
	"errors"
	"testing"
	"time"

	"upside-down-research.com/oss/lpastar-nav/internal/gridmap"
	"upside-down-research.com/oss/lpastar-nav/internal/naverrors"
	"upside-down-research.com/oss/lpastar-nav/internal/navcontracts"
	"upside-down-research.com/oss/lpastar-nav/internal/planner"
	"upside-down-research.com/oss/lpastar-nav/internal/simnav"
)

func smallMap(t *testing.T) *gridmap.GridMap {
	t.Helper()
	m, err := gridmap.New(gridmap.Params{
		Width: 30, Height: 20, Resolution: 1,
		FreeCaseValue: 1, ObstacleCaseValue: 1000, HeuristicsMultiplier: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return m
}

// Scenario 5: goal reached on the first iteration, never invoking the
// planner beyond Reset.
func TestFindPathGoalAlreadyReached(t *testing.T) {
	m := smallMap(t)
	agent := simnav.NewAgent(navcontracts.Pose{X: 0, Y: 0}, 0)
	sensor := simnav.NewSensor(nil)
	p := planner.New(m, agent)
	loop := New(m, p, agent, sensor, time.Millisecond, time.Second)

	if err := loop.FindPath(navcontracts.WorldPoint{X: 0, Y: 0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sensor.Calls() != 0 {
		t.Fatalf("expected no sensor scans when the goal is already reached, got %d", sensor.Calls())
	}
}

// Scenario 6: a near-zero timeout raises TimeoutError within a bounded
// number of iterations.
func TestFindPathTimesOut(t *testing.T) {
	m := smallMap(t)
	agent := simnav.NewAgent(navcontracts.Pose{X: 0, Y: 0}, 0)
	sensor := simnav.NewSensor([][]navcontracts.WorldObstacle{{}})
	p := planner.New(m, agent)
	loop := New(m, p, agent, sensor, time.Millisecond, time.Nanosecond)

	err := loop.FindPath(navcontracts.WorldPoint{X: 10, Y: 0})
	var timeoutErr *naverrors.TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("expected TimeoutError, got %v", err)
	}
}

// A straight-line run reaches the goal through the full
// scan/diff/replan/dispatch cycle. The loop only replans when a scan
// differs from the current obstacle set, so the scan reports one
// obstacle far from the route to trigger the first replan.
func TestFindPathReachesGoalOnOpenRoute(t *testing.T) {
	m := smallMap(t)
	agent := simnav.NewAgent(navcontracts.Pose{X: 0, Y: 0}, 0)
	sensor := simnav.NewSensor([][]navcontracts.WorldObstacle{{{X: 20, Y: 15, W: 1}}})
	p := planner.New(m, agent)
	loop := New(m, p, agent, sensor, time.Millisecond, 2*time.Second)

	if err := loop.FindPath(navcontracts.WorldPoint{X: 3, Y: 0}); err != nil {
		t.Fatalf("unexpected error reaching the goal: %v", err)
	}
	pose, err := agent.GetPosition()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !loop.reachedGoal(pose, navcontracts.WorldPoint{X: 3, Y: 0}) {
		t.Fatalf("expected the agent to end within resolution of the goal, got pose %+v", pose)
	}
}

func TestReachedGoalLiteralMixedDegreeTest(t *testing.T) {
	m := smallMap(t)
	agent := simnav.NewAgent(navcontracts.Pose{X: 0, Y: 0}, 0)
	p := planner.New(m, agent)
	loop := New(m, p, agent, simnav.NewSensor(nil), time.Millisecond, time.Second)

	// (x-gx)^2 + (y-gy) <= resolution^2: with dy=-3 the literal form
	// gives -3 <= 1 (reached) while the squared form would give 9 > 1,
	// so this exercises the literal, not "corrected", form.
	goal := navcontracts.WorldPoint{X: 0, Y: 5}
	pose := navcontracts.Pose{X: 0, Y: 2}
	if !loop.reachedGoal(pose, goal) {
		t.Fatalf("expected the literal mixed-degree test to treat dy=-3 as reached at resolution 1")
	}
}
