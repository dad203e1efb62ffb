package progress

import (
	"testing"
	"time"
)

func TestDisabledIndicatorDoesNotPanic(t *testing.T) {
	p := NewIndicator(false)
	p.Phase("scan")
	p.Step("step")
	p.Success("step")
	p.Error("step", nil)
	p.Scan(1, 2)
	p.Replan(5, time.Millisecond)
	p.Dispatch(3)
	p.Summary(true, "ok")
}

func TestElapsedIsMonotonic(t *testing.T) {
	p := NewIndicator(false)
	first := p.Elapsed()
	time.Sleep(time.Millisecond)
	second := p.Elapsed()
	if second < first {
		t.Fatalf("expected Elapsed to be monotonic, got %v then %v", first, second)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Millisecond, "500ms"},
		{2500 * time.Millisecond, "2.5s"},
		{90 * time.Second, "1m30s"},
	}
	for _, c := range cases {
		if got := formatDuration(c.d); got != c.want {
			t.Fatalf("formatDuration(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}
