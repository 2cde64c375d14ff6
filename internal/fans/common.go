package fans

import (
	"fmt"

	"github.com/fanforge/fanforge/internal/configuration"
)

// Output drives the physical fan input
type Output interface {
	GetId() string

	// SetLevel applies the given level in [0,1]. Polarity has already been applied.
	SetLevel(level float64) error

	// Close releases the underlying hardware
	Close() error
}

func NewOutput(config configuration.OutputConfig) (Output, error) {
	if config.File != nil {
		maxValue := config.File.Max
		if maxValue <= 0 {
			maxValue = DefaultFileMax
		}
		return &FileOutput{
			Path: config.File.Path,
			Max:  maxValue,
		}, nil
	}

	if config.Sysfs != nil {
		return NewSysfsOutput(*config.Sysfs)
	}

	if config.Gpio != nil {
		return openGpio(*config.Gpio)
	}

	if config.Cmd != nil {
		return &CmdOutput{
			Exec: config.Cmd.Exec,
			Args: config.Cmd.Args,
		}, nil
	}

	if config.Virtual != nil {
		return &VirtualOutput{Name: config.Virtual.Name}, nil
	}

	return nil, fmt.Errorf("no matching output type in output configuration")
}

func clampLevel(level float64) float64 {
	if level != level || level < 0 {
		return 0
	}
	if level > 1 {
		return 1
	}
	return level
}
