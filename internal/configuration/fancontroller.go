package configuration

import "time"

type ControllerConfig struct {
	// Sensor is the id of the sensor used for control
	Sensor string `json:"sensor"`
	// Time interval between each control tick.
	TickRate time.Duration `json:"tickRate"`
	// Minimum change of the raw temperature before the control temperature follows (°C)
	TempDeadband float64 `json:"tempDeadband"`
	// Corrections smaller than this are not applied (%)
	PwmDeadband float64 `json:"pwmDeadband"`
	// Temperature drop below the failsafe threshold required to release the failsafe (°C)
	FailsafeHysteresis float64 `json:"failsafeHysteresis"`
}
