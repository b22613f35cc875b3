package clock

import "time"

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock returns a settable instant, for tests.
type FixedClock struct {
	currentTime time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{currentTime: t}
}

func (c *FixedClock) Now() time.Time {
	return c.currentTime
}

func (c *FixedClock) Set(t time.Time) {
	c.currentTime = t
}

func (c *FixedClock) Advance(d time.Duration) {
	c.currentTime = c.currentTime.Add(d)
}

// Today truncates now to midnight in loc.
func Today(c Clock, loc *time.Location) time.Time {
	now := c.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
}
