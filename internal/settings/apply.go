package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/fanforge/fanforge/internal/curves"
)

var (
	ErrModeRequired          = errors.New("mode is required")
	ErrModeInvalid           = errors.New("mode must be auto, manual or off")
	ErrSmoothingRequired     = errors.New("smoothing_mode is required")
	ErrSmoothingInvalid      = errors.New("smoothing_mode must be linear or smooth")
	ErrPointsRequired        = errors.New("points array is required")
	ErrTooFewPoints          = errors.New("points must contain at least 2 items")
	ErrTooManyPoints         = fmt.Errorf("points must contain at most %d items", curves.MaxPoints)
	ErrPointNotNumeric       = errors.New("each point must include numeric t and p")
	ErrPointDutyRange        = errors.New("point.p must be within 0..100")
	ErrPointsNotIncreasing   = errors.New("point temperatures must be strictly increasing")
	ErrNumericFieldsRequired = errors.New("numeric fields are required: min_pwm, max_pwm, slew_pct_per_sec, failsafe_temp, failsafe_pwm")
	ErrMaxBelowMin           = errors.New("max_pwm must be >= min_pwm")
	ErrPointDutyLimits       = errors.New("point.p must be within min_pwm..max_pwm")
)

// Apply parses and validates a configuration document and returns the
// resulting settings. Optional fields missing from the document are taken
// from prev. On error prev must be kept as is; the returned error message
// identifies the first violated rule.
func Apply(body []byte, prev Settings) (Settings, error) {
	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return prev, fmt.Errorf("invalid JSON: %v", err)
	}
	doc, ok := parsed.(map[string]any)
	if !ok {
		doc = map[string]any{}
	}
	return apply(doc, prev)
}

func apply(doc map[string]any, prev Settings) (Settings, error) {
	modeValue, ok := doc["mode"].(string)
	if !ok {
		return prev, ErrModeRequired
	}
	mode, err := ParseMode(modeValue)
	if err != nil {
		return prev, ErrModeInvalid
	}

	smoothingValue, ok := doc["smoothing_mode"].(string)
	if !ok {
		return prev, ErrSmoothingRequired
	}
	smoothing, err := ParseSmoothingMode(smoothingValue)
	if err != nil {
		return prev, ErrSmoothingInvalid
	}

	rawPoints, ok := doc["points"].([]any)
	if !ok {
		return prev, ErrPointsRequired
	}
	points, err := parsePoints(rawPoints)
	if err != nil {
		return prev, err
	}

	required := []string{"min_pwm", "max_pwm", "slew_pct_per_sec", "failsafe_temp", "failsafe_pwm"}
	values := map[string]float64{}
	for _, key := range required {
		value, ok := number(doc, key)
		if !ok {
			return prev, ErrNumericFieldsRequired
		}
		values[key] = value
	}

	minPwm := clampDuty(values["min_pwm"])
	maxPwm := clampDuty(values["max_pwm"])
	if maxPwm < minPwm {
		return prev, ErrMaxBelowMin
	}
	for _, point := range points {
		if point.Duty < minPwm || point.Duty > maxPwm {
			return prev, ErrPointDutyLimits
		}
	}

	curveMin := prev.CurveMin
	if value, ok := number(doc, "curve_min"); ok {
		curveMin = value
	}
	curveMax := prev.CurveMax
	if value, ok := number(doc, "curve_max"); ok {
		curveMax = value
	}
	curveMin, curveMax = normalizeCurveBounds(curveMin, curveMax)

	manualPwm := prev.ManualPwm
	if value, ok := number(doc, "manual_pwm"); ok {
		manualPwm = clampDuty(value)
	}

	return Settings{
		Mode:          mode,
		Smoothing:     smoothing,
		Points:        points,
		MinPwm:        minPwm,
		MaxPwm:        maxPwm,
		CurveMin:      curveMin,
		CurveMax:      curveMax,
		SlewPctPerSec: clamp(values["slew_pct_per_sec"], MinSlew, MaxSlew),
		FailsafeTemp:  clamp(values["failsafe_temp"], MinTemperature, MaxTemperature),
		FailsafePwm:   clampDuty(values["failsafe_pwm"]),
		ManualPwm:     manualPwm,
	}, nil
}

// parsePoints validates the curve points and rounds them on both axes
func parsePoints(rawPoints []any) ([]curves.Point, error) {
	if len(rawPoints) < 2 {
		return nil, ErrTooFewPoints
	}
	if len(rawPoints) > curves.MaxPoints {
		return nil, ErrTooManyPoints
	}

	points := make([]curves.Point, 0, len(rawPoints))
	previousTemperature := math.Inf(-1)
	for _, rawPoint := range rawPoints {
		entry, ok := rawPoint.(map[string]any)
		if !ok {
			return nil, ErrPointNotNumeric
		}
		temperature, tOk := number(entry, "t")
		duty, pOk := number(entry, "p")
		if !tOk || !pOk {
			return nil, ErrPointNotNumeric
		}

		if duty < MinDuty || duty > MaxDuty {
			return nil, ErrPointDutyRange
		}

		point := curves.Point{
			Temperature: math.Round(temperature),
			Duty:        math.Round(duty),
		}
		// rounding must not collapse two points onto the same temperature
		if temperature <= previousTemperature ||
			(len(points) > 0 && point.Temperature <= points[len(points)-1].Temperature) {
			return nil, ErrPointsNotIncreasing
		}
		previousTemperature = temperature
		points = append(points, point)
	}
	return points, nil
}

func number(doc map[string]any, key string) (float64, bool) {
	value, ok := doc[key].(float64)
	return value, ok
}
