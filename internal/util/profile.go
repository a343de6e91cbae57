package util

import (
	"sync"
	"time"
)

// Profiler measures call durations and keeps a running total across every
// measured call.
type Profiler struct {
	mu    sync.Mutex
	total time.Duration

	// Report, if set, is called after each measurement.
	Report func(name string, d time.Duration)
}

// Measure runs fn and records how long it took.
func (p *Profiler) Measure(name string, fn func()) time.Duration {
	start := time.Now()
	fn()
	d := time.Since(start)
	p.add(name, d)
	return d
}

// MeasureValue runs fn, records how long it took and returns its results.
func MeasureValue[T any](p *Profiler, name string, fn func() (T, error)) (T, error) {
	start := time.Now()
	v, err := fn()
	p.add(name, time.Since(start))
	return v, err
}

// Total returns the accumulated duration of every measured call.
func (p *Profiler) Total() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

func (p *Profiler) add(name string, d time.Duration) {
	p.mu.Lock()
	p.total += d
	report := p.Report
	p.mu.Unlock()

	if report != nil {
		report(name, d)
	}
}

// Millis converts a duration to fractional milliseconds.
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
