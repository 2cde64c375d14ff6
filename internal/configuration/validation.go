package configuration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fanforge/fanforge/internal/util"
	"golang.org/x/exp/slices"
)

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(config *Configuration, path string) error {
	err := validateSensors(config)
	if err != nil {
		return err
	}
	err = validateOutput(&config.Output)
	if err != nil {
		return err
	}
	err = validateController(config)
	if err != nil {
		return err
	}
	err = validateDefaults(&config.Defaults)
	if err != nil {
		return err
	}

	if containsCmds(config) && path != "" {
		if _, err := util.CheckFilePermissionsForExecution(path); err != nil {
			return fmt.Errorf("config file '%s' has invalid permissions: %w", path, err)
		}
	}

	return nil
}

func containsCmds(config *Configuration) bool {
	for _, sensorConfig := range config.Sensors {
		if sensorConfig.Cmd != nil {
			return true
		}
	}
	return config.Output.Cmd != nil
}

func validateSensors(config *Configuration) error {
	var ids []string
	for _, sensorConfig := range config.Sensors {
		if len(sensorConfig.ID) <= 0 {
			return errors.New("sensor: missing id")
		}
		if slices.Contains(ids, sensorConfig.ID) {
			return fmt.Errorf("duplicate sensor id detected: %s", sensorConfig.ID)
		}
		ids = append(ids, sensorConfig.ID)

		subConfigs := 0
		if sensorConfig.HwMon != nil {
			subConfigs++
		}
		if sensorConfig.File != nil {
			subConfigs++
		}
		if sensorConfig.Cmd != nil {
			subConfigs++
		}
		if sensorConfig.Virtual != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return fmt.Errorf("sensor %s: only one sensor type can be used per sensor definition block", sensorConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("sensor %s: sub-configuration for sensor is missing, use one of: hwmon | file | cmd | virtual", sensorConfig.ID)
		}

		if sensorConfig.HwMon != nil && len(sensorConfig.HwMon.Path) <= 0 {
			return fmt.Errorf("sensor %s: no hwmon path provided", sensorConfig.ID)
		}
		if sensorConfig.File != nil && len(sensorConfig.File.Path) <= 0 {
			return fmt.Errorf("sensor %s: no file path provided", sensorConfig.ID)
		}
		if sensorConfig.Cmd != nil && len(sensorConfig.Cmd.Exec) <= 0 {
			return fmt.Errorf("sensor %s: executable is missing", sensorConfig.ID)
		}
	}

	return nil
}

func validateOutput(output *OutputConfig) error {
	var types []string
	if output.File != nil {
		types = append(types, "file")
	}
	if output.Sysfs != nil {
		types = append(types, "sysfs")
	}
	if output.Gpio != nil {
		types = append(types, "gpio")
	}
	if output.Cmd != nil {
		types = append(types, "cmd")
	}
	if output.Virtual != nil {
		types = append(types, "virtual")
	}

	if len(types) > 1 {
		return fmt.Errorf("output: only one output type can be used, found: %s", strings.Join(types, ", "))
	}
	if len(types) <= 0 {
		return errors.New("output: sub-configuration for output is missing, use one of: file | sysfs | gpio | cmd | virtual")
	}

	if output.File != nil {
		if len(output.File.Path) <= 0 {
			return errors.New("output: no file path provided")
		}
		if output.File.Max < 0 {
			return errors.New("output: file max must be >= 0")
		}
	}
	if output.Sysfs != nil {
		if len(output.Sysfs.Chip) <= 0 {
			return errors.New("output: no pwm chip provided")
		}
		if output.Sysfs.Channel < 0 {
			return errors.New("output: invalid pwm channel, must be >= 0")
		}
		if output.Sysfs.Frequency <= 0 {
			return errors.New("output: pwm frequency must be > 0")
		}
	}
	if output.Gpio != nil {
		if len(output.Gpio.Chip) <= 0 {
			return errors.New("output: no gpio chip provided")
		}
		if output.Gpio.Line < 0 {
			return errors.New("output: invalid gpio line, must be >= 0")
		}
	}
	if output.Cmd != nil && len(output.Cmd.Exec) <= 0 {
		return errors.New("output: executable is missing")
	}

	return nil
}

func validateController(config *Configuration) error {
	controller := config.Controller
	if len(controller.Sensor) <= 0 {
		return errors.New("controller: missing sensor id")
	}
	if !sensorIdExists(controller.Sensor, config) {
		return fmt.Errorf("controller: no sensor definition with id '%s' found", controller.Sensor)
	}
	if controller.TickRate <= 0 {
		return errors.New("controller: tickRate must be > 0")
	}
	if controller.TempDeadband < 0 {
		return errors.New("controller: tempDeadband must be >= 0")
	}
	if controller.PwmDeadband < 0 {
		return errors.New("controller: pwmDeadband must be >= 0")
	}
	if controller.FailsafeHysteresis < 0 {
		return errors.New("controller: failsafeHysteresis must be >= 0")
	}
	return nil
}

func validateDefaults(defaults *DefaultsConfig) error {
	if defaults.MaxPwm < defaults.MinPwm {
		return errors.New("defaults: maxPwm must be >= minPwm")
	}
	if len(defaults.Points) == 0 {
		// the fallback curve is used
		return nil
	}
	if len(defaults.Points) < 2 {
		return errors.New("defaults: points must contain at least 2 items")
	}
	for i, point := range defaults.Points {
		if point.Duty < 0 || point.Duty > 100 {
			return fmt.Errorf("defaults: point %d: duty must be within 0..100", i)
		}
		if i > 0 && point.Temperature <= defaults.Points[i-1].Temperature {
			return errors.New("defaults: point temperatures must be strictly increasing")
		}
	}
	for i, point := range defaults.Points {
		if point.Duty < defaults.MinPwm || point.Duty > defaults.MaxPwm {
			return fmt.Errorf("defaults: point %d: duty must be within minPwm..maxPwm", i)
		}
	}
	return nil
}

func sensorIdExists(sensorId string, config *Configuration) bool {
	for _, sensor := range config.Sensors {
		if sensor.ID == sensorId {
			return true
		}
	}

	return false
}
