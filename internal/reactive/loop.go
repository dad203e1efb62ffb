// Package reactive implements the outer control loop that drives the
// LPA* planner: poll the agent's pose, invoke the sensor, diff the
// obstacle multiset, update the affected vertices, replan, simplify,
// and dispatch a trajectory, all under a global timeout and a fixed
// polling period.
package reactive

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"upside-down-research.com/oss/lpastar-nav/internal/gridmap"
	"upside-down-research.com/oss/lpastar-nav/internal/naverrors"
	"upside-down-research.com/oss/lpastar-nav/internal/navcontracts"
	"upside-down-research.com/oss/lpastar-nav/internal/o11y"
	"upside-down-research.com/oss/lpastar-nav/internal/planner"
	"upside-down-research.com/oss/lpastar-nav/internal/progress"
	"upside-down-research.com/oss/lpastar-nav/internal/simplify"
)

// Loop is the reactive control loop: one live FindPath call per
// instance. It coordinates the GridMap, Planner, Agent, and Sensor but
// owns none of their state.
type Loop struct {
	Map     *gridmap.GridMap
	Planner *planner.Planner
	Agent   navcontracts.Agent
	Sensor  navcontracts.Sensor

	Period  time.Duration
	Timeout time.Duration

	Progress *progress.Indicator
	Metrics  *o11y.Metrics
}

// New builds a Loop with a disabled progress indicator and no metrics;
// callers may replace Progress and Metrics afterwards. Metrics may be
// nil (its methods are no-ops on a nil receiver); Progress must not be.
func New(m *gridmap.GridMap, p *planner.Planner, agent navcontracts.Agent, sensor navcontracts.Sensor, period, timeout time.Duration) *Loop {
	return &Loop{
		Map:      m,
		Planner:  p,
		Agent:    agent,
		Sensor:   sensor,
		Period:   period,
		Timeout:  timeout,
		Progress: progress.NewIndicator(false),
		Metrics:  nil,
	}
}

// FindPath resets the planner toward goal and runs the reactive loop
// until the agent reaches the goal (returns nil), the global timeout
// elapses (returns *naverrors.TimeoutError), or the sensor/agent
// collaborators return an error.
func (l *Loop) FindPath(goal navcontracts.WorldPoint) error {
	runID := uuid.NewString()
	log.Info("find_path starting", "run_id", runID, "goal_x", goal.X, "goal_y", goal.Y)

	if err := l.Planner.Reset(goal); err != nil {
		return err
	}
	t0 := time.Now()
	iteration := 0

	for {
		if time.Since(t0) > l.Timeout {
			return &naverrors.TimeoutError{Elapsed: time.Since(t0), Timeout: l.Timeout}
		}

		pose, err := l.Agent.GetPosition()
		if err != nil {
			return err
		}

		if l.reachedGoal(pose, goal) {
			if err := l.Agent.StopTrajectory(); err != nil {
				log.Warn("stop_trajectory failed on goal reached", "error", err)
			}
			break
		}

		l.Progress.Phase("scan")
		old := l.Map.GetObstacles()
		scanned, err := l.Sensor.Scan(pose)
		if err != nil {
			return err
		}
		fresh := l.Map.RasterizeObstacles(scanned)

		if !gridmap.ObstacleMultisetsEqual(old, fresh) {
			added, removed := gridmap.DiffObstacles(old, fresh)
			l.Progress.Scan(len(added), len(removed))
			l.Metrics.ObserveObstacleDiff(runID, len(added), len(removed))

			l.Map.SetObstacles(fresh)
			for _, c := range added {
				l.Planner.UpdateVertex(c)
			}
			for _, c := range removed {
				l.Planner.UpdateVertex(c)
			}

			l.Progress.Phase("replan")
			planStart := time.Now()
			planErr := l.Planner.ComputeShortestPath()
			l.Metrics.ObservePlanDuration(runID, time.Since(planStart))

			var noPath *naverrors.NoPathExistsError
			switch {
			case errors.As(planErr, &noPath):
				log.Debug("no path exists this iteration, waiting for a clearer scan", "run_id", runID)
				l.Progress.Error("replan", planErr)
			case planErr != nil:
				return planErr
			default:
				path, err := l.Planner.ReconstructPath()
				if errors.As(err, &noPath) {
					log.Debug("reconstruction found no path, waiting for a clearer scan", "run_id", runID)
				} else if err != nil {
					return err
				} else {
					l.Progress.Replan(len(path), time.Since(planStart))
					if err := l.dispatch(path); err != nil {
						return err
					}
				}
			}
		}

		if err := l.Metrics.WriteIteration(context.Background(), runID, iteration, l.Planner.G(l.Planner.Goal()), distance(pose, goal)); err != nil {
			log.Warn("failed to write iteration telemetry", "error", err)
		}

		time.Sleep(l.Period)
		iteration++
	}

	if err := l.Agent.StopTrajectory(); err != nil {
		log.Warn("cleanup stop_trajectory failed", "error", err)
	}
	if err := l.Agent.Stop(); err != nil {
		log.Warn("cleanup stop failed", "error", err)
	}
	l.Progress.Summary(true, "goal reached")
	return nil
}

// dispatch simplifies path into turning points, re-adds the path's
// starting cell (Simplify never includes it unless it happens to be a
// turn point), converts to world coordinates, and hands the
// trajectory to the agent.
func (l *Loop) dispatch(path []navcontracts.Cell) error {
	simplified := simplify.Simplify(path)

	worldPath := make([]navcontracts.WorldPoint, 0, len(simplified)+1)
	worldPath = append(worldPath, l.Map.IndicesToCoords(path[0]))
	for _, c := range simplified {
		worldPath = append(worldPath, l.Map.IndicesToCoords(c))
	}

	l.Progress.Dispatch(len(worldPath))
	return l.Agent.FollowTrajectory(worldPath)
}

// reachedGoal uses the literal mixed-degree test: (x-gx)^2 + (y-gy) <=
// resolution^2, a non-squared y term that is almost certainly a typo
// for (y-gy)^2 in the original source. Do not "fix" this without
// consulting the caller first; behavior depends on the literal form.
func (l *Loop) reachedGoal(pose navcontracts.Pose, goal navcontracts.WorldPoint) bool {
	dx := pose.X - goal.X
	dy := pose.Y - goal.Y
	return dx*dx+dy <= l.Map.Resolution*l.Map.Resolution
}

func distance(pose navcontracts.Pose, goal navcontracts.WorldPoint) float64 {
	dx := pose.X - goal.X
	dy := pose.Y - goal.Y
	return math.Sqrt(dx*dx + dy*dy)
}
