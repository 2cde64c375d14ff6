package curves

// InterpolateLinear evaluates the piecewise linear curve through points
func InterpolateLinear(temperature float64, points []Point) float64 {
	if value, ok := edgeValue(temperature, points); ok {
		return value
	}

	seg := findSegment(temperature, points)
	a := points[seg]
	b := points[seg+1]

	ratio := (temperature - a.Temperature) / span(a.Temperature, b.Temperature)
	return a.Duty + (b.Duty-a.Duty)*ratio
}
