package control_loop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailsafeGate_LatchesAtThreshold(t *testing.T) {
	// GIVEN
	gate := FailsafeGate{}

	// WHEN
	latched := gate.Update(59.9, 60, 1)

	// THEN
	assert.False(t, latched)

	// WHEN
	latched = gate.Update(60, 60, 1)

	// THEN
	assert.True(t, latched)
}

func TestFailsafeGate_HoldsInsideHysteresisBand(t *testing.T) {
	// GIVEN
	gate := FailsafeGate{}
	gate.Update(60, 60, 1)

	for _, temperature := range []float64{60, 59.9, 59.5, 59.01} {
		// WHEN
		latched := gate.Update(temperature, 60, 1)

		// THEN
		assert.True(t, latched, "at %.2f", temperature)
	}

	// WHEN
	latched := gate.Update(59, 60, 1)

	// THEN
	assert.False(t, latched)
}

func TestFailsafeGate_StaysReleasedInsideBand(t *testing.T) {
	// GIVEN
	gate := FailsafeGate{}

	// WHEN
	latched := gate.Update(59.5, 60, 1)

	// THEN
	assert.False(t, latched)
}

func TestFailsafeGate_Apply(t *testing.T) {
	// GIVEN
	gate := FailsafeGate{}

	// THEN
	assert.Equal(t, 40.0, gate.Apply(40, 100))

	// WHEN
	gate.Update(70, 60, 1)

	// THEN
	assert.Equal(t, 100.0, gate.Apply(40, 100))
	assert.Equal(t, 90.0, gate.Apply(90, 80))
}

func TestFailsafeGate_Reset(t *testing.T) {
	// GIVEN
	gate := FailsafeGate{}
	gate.Update(70, 60, 1)

	// WHEN
	gate.Reset()

	// THEN
	assert.False(t, gate.Latched())
	assert.False(t, gate.Update(59.5, 60, 1))
}
