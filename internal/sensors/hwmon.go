package sensors

import (
	"fmt"

	"github.com/fanforge/fanforge/internal/configuration"
	"github.com/fanforge/fanforge/internal/util"
)

// HwmonSensor reads a hwmon tempX_input file, which contains milli-degrees
type HwmonSensor struct {
	Config configuration.SensorConfig `json:"configuration"`
}

func (sensor HwmonSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor HwmonSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor HwmonSensor) GetValue() (float64, error) {
	value, err := util.ReadIntFromFile(sensor.Config.HwMon.Path)
	if err != nil {
		return 0, fmt.Errorf("sensor %s: %w", sensor.GetId(), err)
	}
	return float64(value) / 1000.0, nil
}
