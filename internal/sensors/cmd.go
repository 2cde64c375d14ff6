package sensors

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fanforge/fanforge/internal/configuration"
	"github.com/fanforge/fanforge/internal/util"
)

const cmdTimeout = 2 * time.Second

type CmdSensor struct {
	Config configuration.SensorConfig `json:"configuration"`
}

func (sensor CmdSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor CmdSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor CmdSensor) GetValue() (float64, error) {
	exec := sensor.Config.Cmd.Exec
	args := sensor.Config.Cmd.Args
	result, err := util.SafeCmdExecution(exec, args, cmdTimeout)
	if err != nil {
		return 0, fmt.Errorf("sensor %s: %w", sensor.GetId(), err)
	}

	temp, err := strconv.ParseFloat(result, 64)
	if err != nil {
		return 0, fmt.Errorf("sensor %s: unable to parse command output of %s: %w", sensor.GetId(), exec, err)
	}

	return fromMilliDegrees(temp), nil
}
