package control_loop

import "github.com/fanforge/fanforge/internal/util"

// DefaultTemperatureDeadband is the minimum change of a raw reading (°C)
// before the control temperature follows it
const DefaultTemperatureDeadband = 0.51

// TemperatureFilter holds the control temperature until the raw reading
// moves away from it by at least Threshold degrees.
type TemperatureFilter struct {
	Threshold float64

	value  float64
	seeded bool
}

func NewTemperatureFilter(threshold float64) *TemperatureFilter {
	if threshold < 0 || !util.IsFinite(threshold) {
		threshold = DefaultTemperatureDeadband
	}
	return &TemperatureFilter{Threshold: threshold}
}

// Update feeds a raw reading into the filter and returns the control temperature.
// The returned flag is false if raw is not a usable reading, in which case the
// previous control temperature is kept untouched.
func (f *TemperatureFilter) Update(raw float64) (float64, bool) {
	if !util.IsFinite(raw) {
		return f.value, false
	}

	if !f.seeded {
		f.value = raw
		f.seeded = true
		return f.value, true
	}

	diff := raw - f.value
	if diff < 0 {
		diff = -diff
	}
	if diff >= f.Threshold {
		f.value = raw
	}
	return f.value, true
}

// Value returns the current control temperature and whether it has ever been seeded
func (f *TemperatureFilter) Value() (float64, bool) {
	return f.value, f.seeded
}
