package control_loop

// DefaultFailsafeHysteresis is the temperature drop (°C) below the failsafe
// threshold required to release the latch
const DefaultFailsafeHysteresis = 1.0

// FailsafeGate latches when the temperature reaches a threshold and only
// releases once it has dropped to threshold - hysteresis.
type FailsafeGate struct {
	latched bool
}

// Update evaluates the gate for the given control temperature and returns
// whether the failsafe is latched afterwards
func (g *FailsafeGate) Update(temperature float64, threshold float64, hysteresis float64) bool {
	if hysteresis < 0 {
		hysteresis = 0
	}
	if temperature >= threshold {
		g.latched = true
	} else if temperature <= threshold-hysteresis {
		g.latched = false
	}
	return g.latched
}

// Apply returns the duty to use while considering the latch state
func (g *FailsafeGate) Apply(target float64, failsafeDuty float64) float64 {
	if g.latched && failsafeDuty > target {
		return failsafeDuty
	}
	return target
}

func (g *FailsafeGate) Reset() {
	g.latched = false
}

func (g *FailsafeGate) Latched() bool {
	return g.latched
}
