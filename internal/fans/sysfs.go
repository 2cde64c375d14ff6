package fans

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/fanforge/fanforge/internal/configuration"
)

var pwmSysfsBase = "/sys/class/pwm"

// retry window for freshly exported sysfs nodes
var sysfsRetryTimeout = 2 * time.Second

// SysfsOutput drives a hardware PWM channel via /sys/class/pwm/<chip>/pwm<N>
type SysfsOutput struct {
	chipPath string
	pwmPath  string
	channel  int
	periodNS uint64
}

func NewSysfsOutput(config configuration.SysfsOutputConfig) (*SysfsOutput, error) {
	if config.Frequency <= 0 {
		return nil, fmt.Errorf("sysfs pwm: invalid frequency %d", config.Frequency)
	}

	chipPath := config.Chip
	if !filepath.IsAbs(chipPath) {
		chipPath = filepath.Join(pwmSysfsBase, config.Chip)
	}
	output := &SysfsOutput{
		chipPath: chipPath,
		channel:  config.Channel,
		pwmPath:  filepath.Join(chipPath, fmt.Sprintf("pwm%d", config.Channel)),
		periodNS: uint64(1_000_000_000 / config.Frequency),
	}
	if output.periodNS == 0 {
		output.periodNS = 1
	}

	if err := output.ensureExported(); err != nil {
		return nil, err
	}

	// disable before changing the period
	_ = writeSysfs(filepath.Join(output.pwmPath, "enable"), "0")
	if err := writeSysfs(filepath.Join(output.pwmPath, "period"), strconv.FormatUint(output.periodNS, 10)); err != nil {
		return nil, fmt.Errorf("sysfs pwm: set period: %w", err)
	}
	return output, nil
}

func (output *SysfsOutput) GetId() string {
	return output.pwmPath
}

func (output *SysfsOutput) ensureExported() error {
	if _, err := os.Stat(output.pwmPath); err == nil {
		return nil
	}
	exportPath := filepath.Join(output.chipPath, "export")
	if err := writeSysfs(exportPath, strconv.Itoa(output.channel)); err != nil {
		// exported by someone else in the meantime
		if _, statErr := os.Stat(output.pwmPath); statErr == nil {
			return nil
		}
		return fmt.Errorf("sysfs pwm: export: %w", err)
	}

	deadline := time.Now().Add(500 * time.Millisecond)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(output.pwmPath); err == nil {
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}
	if _, err := os.Stat(output.pwmPath); err != nil {
		return fmt.Errorf("sysfs pwm: path not created after export: %w", err)
	}
	return nil
}

func (output *SysfsOutput) SetLevel(level float64) error {
	duty := uint64(math.Round(float64(output.periodNS) * clampLevel(level)))
	if duty > output.periodNS {
		duty = output.periodNS
	}
	if err := output.writeUint("duty_cycle", duty); err != nil {
		return fmt.Errorf("sysfs pwm: set duty cycle: %w", err)
	}
	return output.writeBool("enable", true)
}

// Close keeps the channel running at its last duty cycle
func (output *SysfsOutput) Close() error {
	return nil
}

// writeUint writes a single attribute once, failures are left to the next call
func (output *SysfsOutput) writeUint(name string, v uint64) error {
	return writeOnce(filepath.Join(output.pwmPath, name), strconv.FormatUint(v, 10))
}

func (output *SysfsOutput) writeBool(name string, v bool) error {
	val := "0"
	if v {
		val = "1"
	}
	return writeOnce(filepath.Join(output.pwmPath, name), val)
}

// writeSysfs writes value without truncating or creating the file.
// Permissions of freshly exported nodes are adjusted asynchronously by udev,
// so permission and not-exist errors are retried for a short time.
// Only used while setting up the channel.
func writeSysfs(path string, value string) error {
	deadline := time.Now().Add(sysfsRetryTimeout)
	for {
		err := writeOnce(path, value)
		if err == nil {
			return nil
		}
		if time.Now().Before(deadline) && isRetryableSysfsErr(err) {
			time.Sleep(25 * time.Millisecond)
			continue
		}
		return err
	}
}

func writeOnce(path string, value string) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	_, werr := f.WriteString(value)
	cerr := f.Close()
	return errors.Join(werr, cerr)
}

func isRetryableSysfsErr(err error) bool {
	return os.IsPermission(err) || os.IsNotExist(err) || errors.Is(err, syscall.EACCES) || errors.Is(err, syscall.EPERM) || errors.Is(err, syscall.ENOENT)
}
