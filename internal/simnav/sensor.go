package simnav

import "upside-down-research.com/oss/lpastar-nav/internal/navcontracts"

// Sensor is a scripted Sensor: each call to Scan returns the next
// entry of a fixed timeline (or the last entry once the timeline is
// exhausted), letting tests and the CLI demo drive dynamic
// obstacle-appearance scenarios deterministically instead of depending
// on real sensor hardware.
type Sensor struct {
	timeline [][]navcontracts.WorldObstacle
	calls    int
}

// NewSensor returns a Sensor that yields timeline[0] on the first
// Scan, timeline[1] on the second, and so on, holding at the last
// entry once exhausted. A single-entry timeline behaves like a static
// sensor.
func NewSensor(timeline [][]navcontracts.WorldObstacle) *Sensor {
	return &Sensor{timeline: timeline}
}

// Scan ignores origin (the scripted timeline already encodes world
// coordinates) and returns the next scheduled obstacle report.
func (s *Sensor) Scan(origin navcontracts.Pose) ([]navcontracts.WorldObstacle, error) {
	if len(s.timeline) == 0 {
		s.calls++
		return nil, nil
	}
	idx := s.calls
	if idx >= len(s.timeline) {
		idx = len(s.timeline) - 1
	}
	s.calls++
	return s.timeline[idx], nil
}

// Calls returns the number of times Scan has been invoked.
func (s *Sensor) Calls() int {
	return s.calls
}
