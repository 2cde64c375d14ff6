package curves

import "math"

const (
	// MaxPoints is the maximum number of points a stored curve may hold
	MaxPoints = 16

	// epsilon floors temperature spans and slopes to avoid division blow-up
	// on duplicate temperatures
	epsilon = 1e-6
)

type InterpolationType string

const (
	InterpolationTypeLinear InterpolationType = "linear"
	InterpolationTypeSmooth InterpolationType = "smooth"
)

// Point maps a temperature (°C) to a duty (0..100 %)
type Point struct {
	Temperature float64 `json:"t"`
	Duty        float64 `json:"p"`
}

// FallbackPoints returns the curve used whenever the stored curve is
// missing or has fewer than 2 points
func FallbackPoints() []Point {
	return []Point{
		{Temperature: 20, Duty: 20},
		{Temperature: 50, Duty: 100},
	}
}

// Evaluate returns the target duty for the given temperature.
// points must be sorted ascending by temperature. Temperatures outside
// the curve are clamped to the duty of the first or last point.
func Evaluate(interpolationType InterpolationType, temperature float64, points []Point) float64 {
	switch interpolationType {
	case InterpolationTypeSmooth:
		return InterpolateSmooth(temperature, points)
	default:
		return InterpolateLinear(temperature, points)
	}
}

// edgeValue handles the cases shared by all interpolation types:
// no points, a single point and temperatures outside of the curve.
func edgeValue(temperature float64, points []Point) (float64, bool) {
	n := len(points)
	if n <= 0 {
		return 0, true
	}
	if n == 1 || temperature <= points[0].Temperature {
		return points[0].Duty, true
	}
	if temperature >= points[n-1].Temperature {
		return points[n-1].Duty, true
	}
	return 0, false
}

// findSegment returns the index i of the segment [points[i], points[i+1]]
// containing temperature. Knots belong to the segment they start.
func findSegment(temperature float64, points []Point) int {
	last := len(points) - 2
	for i := 0; i < last; i++ {
		if temperature < points[i+1].Temperature {
			return i
		}
	}
	return last
}

func span(a, b float64) float64 {
	return math.Max(epsilon, b-a)
}
