package settings

import (
	"fmt"

	"github.com/fanforge/fanforge/internal/curves"
)

// Mode is the operating mode of the fan
type Mode string

const (
	// ModeAuto evaluates the curve
	ModeAuto Mode = "auto"
	// ModeManual applies a fixed duty
	ModeManual Mode = "manual"
	// ModeOff forces a duty of 0
	ModeOff Mode = "off"
)

var modes = []Mode{ModeAuto, ModeManual, ModeOff}

func ParseMode(value string) (Mode, error) {
	for _, mode := range modes {
		if string(mode) == value {
			return mode, nil
		}
	}
	return ModeAuto, fmt.Errorf("unknown mode: %q", value)
}

func (m Mode) String() string {
	return string(m)
}

// SmoothingMode selects the curve interpolation
type SmoothingMode string

const (
	SmoothingLinear SmoothingMode = "linear"
	SmoothingSmooth SmoothingMode = "smooth"
)

func ParseSmoothingMode(value string) (SmoothingMode, error) {
	switch SmoothingMode(value) {
	case SmoothingLinear, SmoothingSmooth:
		return SmoothingMode(value), nil
	default:
		return SmoothingLinear, fmt.Errorf("unknown smoothing mode: %q", value)
	}
}

func (m SmoothingMode) String() string {
	return string(m)
}

// Interpolation returns the curve interpolation to use for this smoothing mode
func (m SmoothingMode) Interpolation() curves.InterpolationType {
	if m == SmoothingSmooth {
		return curves.InterpolationTypeSmooth
	}
	return curves.InterpolationTypeLinear
}
