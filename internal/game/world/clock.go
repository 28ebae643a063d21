package world

import "time"

// Clock reports seconds elapsed since the scene started. It is read once per
// frame and never reset.
type Clock interface {
	Elapsed() float32
}

// SystemClock is a monotonic Clock started at construction.
type SystemClock struct {
	start time.Time
}

// NewSystemClock starts a clock at the current instant.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Elapsed returns seconds since the clock started.
func (c *SystemClock) Elapsed() float32 {
	return float32(time.Since(c.start).Seconds())
}

// ManualClock is a Clock advanced by hand.
type ManualClock struct {
	t float32
}

// Set moves the clock to t seconds.
func (c *ManualClock) Set(t float32) { c.t = t }

// Advance moves the clock forward by dt seconds.
func (c *ManualClock) Advance(dt float32) { c.t += dt }

// Elapsed returns the current time.
func (c *ManualClock) Elapsed() float32 { return c.t }
