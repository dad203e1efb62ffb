// Package naverrors defines the typed error surface raised by the
// gridmap, planner, and reactive packages.
package naverrors

import (
	"fmt"
	"time"
)

// MapInitializationError occurs when a required configuration key is
// missing or holds a value the map cannot be built from.
type MapInitializationError struct {
	Key    string
	Reason string
}

func (e *MapInitializationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("map initialization: %s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("map initialization: parameter required but not provided: %s", e.Key)
}

// InvalidTransition occurs when TransitionCost is asked for a cost
// between two cells that are not 8-neighbors.
type InvalidTransition struct {
	From, To [2]int
}

func (e *InvalidTransition) Error() string {
	return fmt.Sprintf("impossible transition from (%d,%d) to (%d,%d)",
		e.From[0], e.From[1], e.To[0], e.To[1])
}

// EmptyQueueError is raised by an empty IndexedPriorityQueue's TopKey
// or Pop. It never escapes the planner package: ComputeShortestPath
// treats it as an end-of-work signal.
type EmptyQueueError struct{}

func (e *EmptyQueueError) Error() string {
	return "priority queue is empty"
}

// NoPathExistsError means the planner's search exhausted its open set
// without making the goal locally consistent with a finite cost.
type NoPathExistsError struct {
	Start, Goal [2]int
}

func (e *NoPathExistsError) Error() string {
	return fmt.Sprintf("no path exists from (%d,%d) to (%d,%d)",
		e.Start[0], e.Start[1], e.Goal[0], e.Goal[1])
}

// TimeoutError means a FindPath call exceeded its configured wall-clock
// budget before reaching the goal.
type TimeoutError struct {
	Elapsed time.Duration
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("find_path timed out after %s (budget %s)", e.Elapsed, e.Timeout)
}
