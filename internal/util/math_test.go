package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerce(t *testing.T) {
	// GIVEN
	inputOutput := map[float64]float64{
		-10:  0,
		0:    0,
		42.5: 42.5,
		100:  100,
		101:  100,
	}

	for input, output := range inputOutput {
		// WHEN
		result := Coerce(input, 0, 100)

		// THEN
		assert.Equal(t, output, result)
	}
}

func TestCoerce_Int(t *testing.T) {
	assert.Equal(t, 255, Coerce(300, 0, 255))
	assert.Equal(t, 0, Coerce(-1, 0, 255))
}

func TestRatio(t *testing.T) {
	// GIVEN
	a := 0.0
	b := 100.0
	c := 50.0

	expected := 0.5

	// WHEN
	result := Ratio(c, a, b)

	// THEN
	assert.Equal(t, expected, result)
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(21.5))
	assert.False(t, IsFinite(math.NaN()))
	assert.False(t, IsFinite(math.Inf(1)))
	assert.False(t, IsFinite(math.Inf(-1)))
}
