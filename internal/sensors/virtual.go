package sensors

import (
	"math"
	"sync"

	"github.com/fanforge/fanforge/internal/configuration"
)

// VirtualSensor reports a fixed value that can be changed at runtime.
// A NaN value simulates a lost sensor.
type VirtualSensor struct {
	Config configuration.SensorConfig `json:"configuration"`
	Value  float64                    `json:"value"`

	mu sync.Mutex
}

func (sensor *VirtualSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *VirtualSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor *VirtualSensor) GetValue() (float64, error) {
	sensor.mu.Lock()
	defer sensor.mu.Unlock()
	if math.IsNaN(sensor.Value) {
		return 0, ErrNoReading
	}
	return sensor.Value, nil
}

func (sensor *VirtualSensor) SetValue(value float64) {
	sensor.mu.Lock()
	defer sensor.mu.Unlock()
	sensor.Value = value
}
