package control_loop

const (
	// defaultStepSeconds is used as the elapsed time when there is no previous tick
	defaultStepSeconds = 0.2
	// minStepSeconds floors the elapsed time between two ticks
	minStepSeconds = 0.02
)

// ElapsedSeconds returns the time between the last tick and now, used to scale
// the slew rate limit. A missing previous tick or a clock that went backwards
// yields the default step.
func ElapsedSeconds(lastMillis int64, hasLast bool, nowMillis int64) float64 {
	if !hasLast || nowMillis < lastMillis {
		return defaultStepSeconds
	}
	dt := float64(nowMillis-lastMillis) / 1000.0
	if dt < minStepSeconds {
		return minStepSeconds
	}
	return dt
}
