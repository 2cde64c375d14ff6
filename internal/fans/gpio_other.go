//go:build !linux

package fans

import (
	"fmt"

	"github.com/fanforge/fanforge/internal/configuration"
)

func openGpio(config configuration.GpioOutputConfig) (Output, error) {
	return nil, fmt.Errorf("gpio: unsupported on this platform (chip %s, line %d)", config.Chip, config.Line)
}
