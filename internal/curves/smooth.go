package curves

import "math"

// InterpolateSmooth evaluates a monotone cubic Hermite spline through points.
// The spline never leaves the duty range of the segment it is evaluated in,
// so local extrema of the curve are never overshot.
func InterpolateSmooth(temperature float64, points []Point) float64 {
	if value, ok := edgeValue(temperature, points); ok {
		return value
	}

	tg := tangents(points)
	seg := findSegment(temperature, points)

	x0 := points[seg].Temperature
	x1 := points[seg+1].Temperature
	y0 := points[seg].Duty
	y1 := points[seg+1].Duty
	h := x1 - x0
	u := (temperature - x0) / span(x0, x1)

	u2 := u * u
	u3 := u2 * u
	h00 := 2*u3 - 3*u2 + 1
	h10 := u3 - 2*u2 + u
	h01 := -2*u3 + 3*u2
	h11 := u3 - u2

	return h00*y0 + h10*h*tg[seg] + h01*y1 + h11*h*tg[seg+1]
}

// tangents computes one tangent per point, limited so that every segment
// stays monotone (Fritsch-Carlson). points must contain at least 2 items.
func tangents(points []Point) []float64 {
	n := len(points)

	slopes := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		dx := points[i+1].Temperature - points[i].Temperature
		dy := points[i+1].Duty - points[i].Duty
		slopes[i] = dy / math.Max(epsilon, dx)
	}

	tg := make([]float64, n)
	tg[0] = slopes[0]
	tg[n-1] = slopes[n-2]
	for i := 1; i < n-1; i++ {
		if slopes[i-1]*slopes[i] <= 0 {
			// local extremum or flat neighbour
			tg[i] = 0
		} else {
			tg[i] = (slopes[i-1] + slopes[i]) / 2
		}
	}

	for i := 0; i < n-1; i++ {
		m := slopes[i]
		if math.Abs(m) < epsilon {
			tg[i] = 0
			tg[i+1] = 0
			continue
		}
		a := tg[i] / m
		b := tg[i+1] / m
		s := a*a + b*b
		if s > 9 {
			k := 3 / math.Sqrt(s)
			tg[i] = k * a * m
			tg[i+1] = k * b * m
		}
	}

	return tg
}
