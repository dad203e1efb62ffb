package navcommands

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"upside-down-research.com/oss/lpastar-nav/internal/navcontracts"
)

// Scenario describes a scripted run for the `navigator run` demo: a
// starting pose, a goal, and a timeline of sensor scans (one entry per
// loop iteration, held at the last entry once exhausted).
type Scenario struct {
	Start struct {
		X, Y, Alpha float64
	} `yaml:"start"`
	Goal struct {
		X, Y float64
	} `yaml:"goal"`
	Scans [][]struct {
		X, Y, W float64
	} `yaml:"scans"`
}

// LoadScenario reads a Scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file: %w", err)
	}
	return &s, nil
}

// StartPose returns the scenario's starting pose as a navcontracts.Pose.
func (s *Scenario) StartPose() navcontracts.Pose {
	return navcontracts.Pose{X: s.Start.X, Y: s.Start.Y, Alpha: s.Start.Alpha}
}

// GoalPoint returns the scenario's goal as a navcontracts.WorldPoint.
func (s *Scenario) GoalPoint() navcontracts.WorldPoint {
	return navcontracts.WorldPoint{X: s.Goal.X, Y: s.Goal.Y}
}

// Timeline converts the scripted scans into the obstacle-report
// timeline a simnav.Sensor expects.
func (s *Scenario) Timeline() [][]navcontracts.WorldObstacle {
	timeline := make([][]navcontracts.WorldObstacle, len(s.Scans))
	for i, scan := range s.Scans {
		obstacles := make([]navcontracts.WorldObstacle, len(scan))
		for j, o := range scan {
			obstacles[j] = navcontracts.WorldObstacle{X: o.X, Y: o.Y, W: o.W}
		}
		timeline[i] = obstacles
	}
	return timeline
}
