//go:build linux

package fans

import (
	"fmt"
	"path/filepath"

	"github.com/fanforge/fanforge/internal/configuration"
	"github.com/warthog618/go-gpiocdev"
)

// GpioOutput switches a GPIO line: high for levels >= 0.5, low otherwise.
// Intended for fans driven by a transistor without PWM support.
type GpioOutput struct {
	chipName string
	offset   int
	chip     *gpiocdev.Chip
	line     *gpiocdev.Line
}

func openGpio(config configuration.GpioOutputConfig) (Output, error) {
	chipName := config.Chip
	if filepath.Dir(chipName) == "." {
		chipName = filepath.Join("/dev", chipName)
	}

	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("gpio: open %s: %w", chipName, err)
	}
	line, err := chip.RequestLine(config.Line, gpiocdev.AsOutput(0), gpiocdev.WithConsumer("fanforge"))
	if err != nil {
		_ = chip.Close()
		return nil, fmt.Errorf("gpio: request line %d on %s: %w", config.Line, chipName, err)
	}
	return &GpioOutput{chipName: chipName, offset: config.Line, chip: chip, line: line}, nil
}

func (output *GpioOutput) GetId() string {
	return fmt.Sprintf("%s:%d", output.chipName, output.offset)
}

func (output *GpioOutput) SetLevel(level float64) error {
	if output.line == nil {
		return fmt.Errorf("gpio %s: line not requested", output.GetId())
	}
	return output.line.SetValue(gpioValue(level))
}

func (output *GpioOutput) Close() error {
	if output.line == nil {
		return nil
	}
	err := output.line.Close()
	output.line = nil
	if output.chip != nil {
		_ = output.chip.Close()
		output.chip = nil
	}
	return err
}
