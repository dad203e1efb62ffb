// Package progress provides a terminal progress indicator for the
// reactive loop: phase/step/success/error reporting plus
// scan/replan/dispatch summaries.
package progress

import (
	"fmt"
	"sync"
	"time"
)

// Indicator reports reactive-loop progress to the terminal. Disabled
// by default so library callers never pay for the fmt.Printf calls.
type Indicator struct {
	enabled bool
	mu      sync.Mutex
	phase   string
	start   time.Time
}

// NewIndicator creates a new progress indicator.
func NewIndicator(enabled bool) *Indicator {
	return &Indicator{
		enabled: enabled,
		start:   time.Now(),
	}
}

// Phase sets the current phase ("scan", "replan", "dispatch").
func (p *Indicator) Phase(name string) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.phase = name
	fmt.Printf("\n📋 %s\n", name)
}

// Step reports a step within the current phase.
func (p *Indicator) Step(name string) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Printf("  ├─ %s\n", name)
}

// Success marks a step as successful.
func (p *Indicator) Success(name string) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Printf("  └─ ✓ %s\n", name)
}

// Error reports a step failure.
func (p *Indicator) Error(name string, err error) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Printf("  └─ ✗ %s: %v\n", name, err)
}

// Scan reports an obstacle scan result: how many cells were added and
// removed from the obstacle multiset.
func (p *Indicator) Scan(added, removed int) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Printf("  │  scan: +%d / -%d obstacle cells\n", added, removed)
}

// Replan reports a completed ComputeShortestPath call.
func (p *Indicator) Replan(pathLen int, d time.Duration) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Printf("  │  replanned: %d cells in %s\n", pathLen, d)
}

// Dispatch reports a trajectory handed to the agent.
func (p *Indicator) Dispatch(points int) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Printf("  └─ dispatched %d trajectory points\n", points)
}

// Elapsed returns the time since the indicator was created.
func (p *Indicator) Elapsed() time.Duration {
	return time.Since(p.start)
}

// Summary prints a final outcome line.
func (p *Indicator) Summary(reached bool, detail string) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	symbol := "✓"
	if !reached {
		symbol = "✗"
	}
	fmt.Printf("\n%s find_path finished in %s\n", symbol, formatDuration(time.Since(p.start)))
	if detail != "" {
		fmt.Printf("  %s\n", detail)
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm%ds", minutes, seconds)
}
