package controller

import "github.com/fanforge/fanforge/internal/settings"

// Snapshot is a copy of the transient loop state
type Snapshot struct {
	// ControlTemperature is the filtered temperature used for control
	ControlTemperature float64
	// TemperatureValid reports whether the latest raw reading was usable
	TemperatureValid bool
	RawTemperature   float64

	// Duty is the currently commanded duty (%)
	Duty float64
	// TargetDuty is the duty the loop is moving towards (%)
	TargetDuty float64
	// OutputLevel is the physical level in [0,1] handed to the output
	OutputLevel float64

	FailsafeLatched bool

	Mode      settings.Mode
	Smoothing settings.SmoothingMode

	// LastUpdateMillis is the clock reading of the last tick
	LastUpdateMillis int64
	HasTicked        bool
	Ticks            uint64

	SensorErrorRate float64
	OutputErrors    uint64
	LastOutputError string
}

// Temperature returns the control temperature, or nil if the latest reading was invalid
func (s Snapshot) Temperature() *float64 {
	if !s.TemperatureValid {
		return nil
	}
	value := s.ControlTemperature
	return &value
}
