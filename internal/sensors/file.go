package sensors

import (
	"fmt"

	"github.com/fanforge/fanforge/internal/configuration"
	"github.com/fanforge/fanforge/internal/util"
)

type FileSensor struct {
	Config configuration.SensorConfig `json:"configuration"`
}

func (sensor FileSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor FileSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor FileSensor) GetValue() (float64, error) {
	// resolve home dir path
	filePath, err := util.ExpandHome(sensor.Config.File.Path)
	if err != nil {
		return 0, err
	}

	value, err := util.ReadFloatFromFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("sensor %s: unable to read value from %s: %w", sensor.GetId(), filePath, err)
	}

	return fromMilliDegrees(value), nil
}
