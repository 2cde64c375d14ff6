package controller

import "time"

// Clock provides milliseconds since an arbitrary epoch.
// Values must never decrease during the lifetime of the process.
type Clock interface {
	NowMillis() int64
}

type monotonicClock struct {
	start time.Time
}

// NewMonotonicClock returns a Clock counting from the time of its creation
func NewMonotonicClock() Clock {
	return &monotonicClock{start: time.Now()}
}

func (c *monotonicClock) NowMillis() int64 {
	// time.Since uses the monotonic clock reading of start
	return time.Since(c.start).Milliseconds()
}
