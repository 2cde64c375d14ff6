package fans

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fanforge/fanforge/internal/configuration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createPwmChip creates a pwm chip directory with an already exported channel
func createPwmChip(t *testing.T, channel string) string {
	base := t.TempDir()
	pwmPath := filepath.Join(base, "pwmchip0", "pwm"+channel)
	require.NoError(t, os.MkdirAll(pwmPath, 0o755))
	for _, name := range []string{"period", "duty_cycle", "enable"} {
		require.NoError(t, os.WriteFile(filepath.Join(pwmPath, name), []byte("0\n"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(base, "pwmchip0", "export"), []byte(""), 0o644))

	old := pwmSysfsBase
	pwmSysfsBase = base
	t.Cleanup(func() { pwmSysfsBase = old })
	return pwmPath
}

func readSysfs(t *testing.T, path string) string {
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.TrimSpace(string(content))
}

func TestSysfsOutput_SetsPeriod(t *testing.T) {
	// GIVEN
	pwmPath := createPwmChip(t, "0")

	// WHEN
	output, err := NewSysfsOutput(configuration.SysfsOutputConfig{Chip: "pwmchip0", Channel: 0, Frequency: 25000})

	// THEN
	require.NoError(t, err)
	assert.Equal(t, pwmPath, output.GetId())
	assert.Equal(t, "40000", readSysfs(t, filepath.Join(pwmPath, "period")))
	assert.Equal(t, "0", readSysfs(t, filepath.Join(pwmPath, "enable")))
}

func TestSysfsOutput_SetLevel(t *testing.T) {
	// GIVEN
	pwmPath := createPwmChip(t, "1")
	output, err := NewSysfsOutput(configuration.SysfsOutputConfig{Chip: "pwmchip0", Channel: 1, Frequency: 25000})
	require.NoError(t, err)

	// WHEN
	err = output.SetLevel(0.25)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, "10000", readSysfs(t, filepath.Join(pwmPath, "duty_cycle")))
	assert.Equal(t, "1", readSysfs(t, filepath.Join(pwmPath, "enable")))

	// WHEN
	err = output.SetLevel(2)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, "40000", readSysfs(t, filepath.Join(pwmPath, "duty_cycle")))
}

func TestSysfsOutput_SetLevel_RemovedChannelFailsImmediately(t *testing.T) {
	// GIVEN
	pwmPath := createPwmChip(t, "2")
	output, err := NewSysfsOutput(configuration.SysfsOutputConfig{Chip: "pwmchip0", Channel: 2, Frequency: 25000})
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(pwmPath))

	// WHEN
	start := time.Now()
	err = output.SetLevel(0.5)
	elapsed := time.Since(start)

	// THEN
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Less(t, elapsed, sysfsRetryTimeout/4)
}

func TestSysfsOutput_InvalidFrequency(t *testing.T) {
	// WHEN
	_, err := NewSysfsOutput(configuration.SysfsOutputConfig{Chip: "pwmchip0", Channel: 0})

	// THEN
	assert.Error(t, err)
}

func TestSysfsOutput_MissingChip(t *testing.T) {
	// GIVEN
	oldBase, oldTimeout := pwmSysfsBase, sysfsRetryTimeout
	pwmSysfsBase = t.TempDir()
	sysfsRetryTimeout = 0
	t.Cleanup(func() {
		pwmSysfsBase = oldBase
		sysfsRetryTimeout = oldTimeout
	})

	// WHEN
	_, err := NewSysfsOutput(configuration.SysfsOutputConfig{Chip: "pwmchip7", Channel: 0, Frequency: 1000})

	// THEN
	assert.ErrorContains(t, err, "export")
}
