package sensors

import (
	"fmt"

	"github.com/fanforge/fanforge/internal/configuration"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	SensorMap = cmap.New[Sensor]()
)

type Sensor interface {
	GetId() string

	GetConfig() configuration.SensorConfig

	// GetValue returns the current temperature of this sensor in °C
	GetValue() (float64, error)
}

func NewSensor(config configuration.SensorConfig) (Sensor, error) {
	if config.HwMon != nil {
		return &HwmonSensor{
			Config: config,
		}, nil
	}

	if config.File != nil {
		return &FileSensor{
			Config: config,
		}, nil
	}

	if config.Cmd != nil {
		return &CmdSensor{
			Config: config,
		}, nil
	}

	if config.Virtual != nil {
		return &VirtualSensor{
			Config: config,
			Value:  config.Virtual.Value,
		}, nil
	}

	return nil, fmt.Errorf("no matching sensor type for sensor: %s", config.ID)
}

// fromMilliDegrees interprets values above 1000 as milli-degrees
func fromMilliDegrees(value float64) float64 {
	if value > 1000 || value < -1000 {
		return value / 1000.0
	}
	return value
}
