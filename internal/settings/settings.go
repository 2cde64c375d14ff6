package settings

import (
	"math"

	"github.com/fanforge/fanforge/internal/curves"
	"github.com/fanforge/fanforge/internal/util"
	"github.com/qdm12/reprint"
)

const (
	MinDuty = 0.0
	MaxDuty = 100.0

	MinSlew = 0.0
	MaxSlew = 100.0

	MinTemperature = 0.0
	MaxTemperature = 120.0

	// curve display bounds
	MinCurveBound = 15.0
	MaxCurveBound = 50.0
)

// Settings is the runtime configuration of the fan controller.
// It is only ever replaced as a whole, see Store.
type Settings struct {
	Mode          Mode
	Smoothing     SmoothingMode
	Points        []curves.Point
	MinPwm        float64
	MaxPwm        float64
	CurveMin      float64
	CurveMax      float64
	SlewPctPerSec float64
	FailsafeTemp  float64
	FailsafePwm   float64
	ManualPwm     float64
}

// Default returns the settings used when nothing else is configured
func Default() Settings {
	return Settings{
		Mode:          ModeAuto,
		Smoothing:     SmoothingLinear,
		Points:        curves.FallbackPoints(),
		MinPwm:        0,
		MaxPwm:        100,
		CurveMin:      MinCurveBound,
		CurveMax:      MaxCurveBound,
		SlewPctPerSec: 10,
		FailsafeTemp:  60,
		FailsafePwm:   100,
		ManualPwm:     50,
	}
}

// Clone returns a deep copy of s
func (s Settings) Clone() Settings {
	return reprint.This(s).(Settings)
}

// CurvePoints returns the stored curve, or the fallback curve if the stored
// one has less than 2 points
func (s Settings) CurvePoints() []curves.Point {
	if len(s.Points) < 2 {
		return curves.FallbackPoints()
	}
	return s.Points
}

// Sanitize clamps all numeric fields to their physical ranges.
// It is applied to settings that did not pass through Apply, f.ex. defaults
// from the daemon config or data loaded from persistence.
func Sanitize(s Settings) Settings {
	result := s.Clone()
	if _, err := ParseMode(string(result.Mode)); err != nil {
		result.Mode = ModeAuto
	}
	if _, err := ParseSmoothingMode(string(result.Smoothing)); err != nil {
		result.Smoothing = SmoothingLinear
	}
	result.MinPwm = clampDuty(result.MinPwm)
	result.MaxPwm = clampDuty(result.MaxPwm)
	if result.MaxPwm < result.MinPwm {
		result.MaxPwm = result.MinPwm
	}
	result.SlewPctPerSec = clamp(result.SlewPctPerSec, MinSlew, MaxSlew)
	result.FailsafeTemp = clamp(result.FailsafeTemp, MinTemperature, MaxTemperature)
	result.FailsafePwm = clampDuty(result.FailsafePwm)
	result.ManualPwm = clampDuty(result.ManualPwm)
	result.CurveMin, result.CurveMax = normalizeCurveBounds(result.CurveMin, result.CurveMax)
	if len(result.Points) > curves.MaxPoints {
		result.Points = result.Points[:curves.MaxPoints]
	}
	return result
}

func clampDuty(value float64) float64 {
	return clamp(value, MinDuty, MaxDuty)
}

func clamp(value float64, min float64, max float64) float64 {
	if math.IsNaN(value) {
		return min
	}
	return util.Coerce(value, min, max)
}

// normalizeCurveBounds rounds and clamps the display bounds and makes sure
// they are ordered and at least one degree apart
func normalizeCurveBounds(lower float64, upper float64) (float64, float64) {
	lower = clamp(math.Round(lower), MinCurveBound, MaxCurveBound)
	upper = clamp(math.Round(upper), MinCurveBound, MaxCurveBound)
	if upper < lower {
		lower, upper = upper, lower
	}
	if upper-lower < 1 {
		if upper+1 <= MaxCurveBound {
			upper = lower + 1
		} else {
			lower = upper - 1
		}
	}
	return lower, upper
}
