// Package simnav provides an in-process, deterministic Agent/Sensor
// pair for the CLI demo and integration tests. It never crosses a
// process boundary; remote agent/sensor RPC glue is out of scope and
// not implemented here, this is ambient test/demo tooling only.
package simnav

import (
	"context"
	"sync"
	"time"

	"upside-down-research.com/oss/lpastar-nav/internal/navcontracts"
)

// Agent is an in-memory navcontracts.Agent. FollowTrajectory starts a
// worker goroutine on first call; later calls replace the pending
// trajectory atomically via a size-1 channel ("replace, don't queue").
type Agent struct {
	mu   sync.Mutex
	pose navcontracts.Pose

	stepDelay time.Duration
	trajCh    chan []navcontracts.WorldPoint
	cancel    context.CancelFunc
	workerWG  sync.WaitGroup
	started   bool
}

// NewAgent returns an Agent starting at pose, stepping one trajectory
// point every stepDelay (0 means "jump immediately").
func NewAgent(pose navcontracts.Pose, stepDelay time.Duration) *Agent {
	return &Agent{
		pose:      pose,
		stepDelay: stepDelay,
		trajCh:    make(chan []navcontracts.WorldPoint, 1),
	}
}

// GetPosition returns the agent's current pose.
func (a *Agent) GetPosition() (navcontracts.Pose, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pose, nil
}

// Move teleports the agent to (x, y), preserving its current heading.
func (a *Agent) Move(x, y float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pose.X, a.pose.Y = x, y
	return nil
}

// Stop is a no-op for the in-memory simulation: there is no actuator
// to halt beyond the trajectory worker, which StopTrajectory handles.
func (a *Agent) Stop() error {
	return nil
}

// FollowTrajectory starts the worker on first call and otherwise
// replaces the in-flight trajectory. After the last point is consumed
// the worker holds position rather than looping.
func (a *Agent) FollowTrajectory(points []navcontracts.WorldPoint) error {
	a.mu.Lock()
	if !a.started {
		ctx, cancel := context.WithCancel(context.Background())
		a.cancel = cancel
		a.started = true
		a.workerWG.Add(1)
		go a.run(ctx)
	}
	a.mu.Unlock()

	// Drain any pending trajectory so the channel never blocks a send:
	// the worker always follows the most recently received trajectory.
	select {
	case <-a.trajCh:
	default:
	}
	a.trajCh <- points
	return nil
}

// StopTrajectory terminates the worker and calls Stop.
func (a *Agent) StopTrajectory() error {
	a.mu.Lock()
	cancel := a.cancel
	started := a.started
	a.started = false
	a.mu.Unlock()

	if started && cancel != nil {
		cancel()
		a.workerWG.Wait()
	}
	return a.Stop()
}

func (a *Agent) run(ctx context.Context) {
	defer a.workerWG.Done()
	var current []navcontracts.WorldPoint
	idx := 0

	for {
		select {
		case <-ctx.Done():
			return
		case traj := <-a.trajCh:
			current = traj
			idx = 0
		default:
		}

		if idx >= len(current) {
			// Holds position: wait for the next trajectory or cancellation.
			select {
			case <-ctx.Done():
				return
			case traj := <-a.trajCh:
				current = traj
				idx = 0
			}
			continue
		}

		point := current[idx]
		if err := a.Move(point.X, point.Y); err != nil {
			return
		}
		idx++

		if a.stepDelay > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(a.stepDelay):
			}
		}
	}
}
