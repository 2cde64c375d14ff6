package control_loop

import (
	"math"

	"github.com/fanforge/fanforge/internal/util"
)

// OutputShaper gracefully approaches a target duty by limiting the change
// per step. Corrections smaller than Deadband are ignored.
type OutputShaper struct {
	// Deadband in percent, 0 disables it
	Deadband float64
}

func NewOutputShaper(deadband float64) *OutputShaper {
	if deadband < 0 || !util.IsFinite(deadband) {
		deadband = 0
	}
	return &OutputShaper{Deadband: deadband}
}

// MaxStep returns the maximum allowed duty change for a step of dt seconds
func MaxStep(slewPctPerSec float64, dt float64) float64 {
	if !util.IsFinite(slewPctPerSec) {
		slewPctPerSec = 0
	}
	return util.Coerce(slewPctPerSec, 0, 100) * dt
}

// Step returns the next duty when moving from current towards target,
// changing by at most maxStep
func (s *OutputShaper) Step(target float64, current float64, maxStep float64) float64 {
	if maxStep < 0 || math.IsNaN(maxStep) {
		maxStep = 0
	}

	// the duty adjustment depends on the direction and
	// the time-based change speed limit
	delta := target - current
	if math.Abs(delta) < s.Deadband {
		delta = 0
	}
	delta = util.Coerce(delta, -maxStep, maxStep)

	return util.Coerce(current+delta, 0, 100)
}

// OutputLevel translates a duty percentage to a physical output level in [0,1]
func OutputLevel(duty float64, inverted bool) float64 {
	level := duty / 100.0
	if inverted {
		level = 1 - level
	}
	return util.Coerce(level, 0, 1)
}
