package fans

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/fanforge/fanforge/internal/configuration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOutput_Types(t *testing.T) {
	// GIVEN
	expectedTypes := []struct {
		config   configuration.OutputConfig
		expected Output
	}{
		{config: configuration.OutputConfig{File: &configuration.FileOutputConfig{Path: "/tmp/pwm1"}}, expected: &FileOutput{}},
		{config: configuration.OutputConfig{Cmd: &configuration.CmdOutputConfig{Exec: "/usr/bin/fan"}}, expected: &CmdOutput{}},
		{config: configuration.OutputConfig{Virtual: &configuration.VirtualOutputConfig{}}, expected: &VirtualOutput{}},
	}

	for _, tc := range expectedTypes {
		// WHEN
		output, err := NewOutput(tc.config)

		// THEN
		require.NoError(t, err)
		assert.IsType(t, tc.expected, output)
	}
}

func TestNewOutput_FileDefaultMax(t *testing.T) {
	// WHEN
	output, err := NewOutput(configuration.OutputConfig{File: &configuration.FileOutputConfig{Path: "/tmp/pwm1"}})

	// THEN
	require.NoError(t, err)
	assert.Equal(t, DefaultFileMax, output.(*FileOutput).Max)
}

func TestNewOutput_Missing(t *testing.T) {
	// WHEN
	_, err := NewOutput(configuration.OutputConfig{})

	// THEN
	assert.Error(t, err)
}

func TestFileOutput_SetLevel(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "pwm1")
	output := FileOutput{Path: path, Max: 255}

	expectedValues := map[float64]string{
		0:    "0",
		1:    "255",
		0.5:  "128",
		0.25: "64",
		1.7:  "255",
		-1:   "0",
	}

	for level, expected := range expectedValues {
		// WHEN
		err := output.SetLevel(level)

		// THEN
		require.NoError(t, err)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, expected, string(content), "level %v", level)
	}
}

func TestFileOutput_SetLevel_Error(t *testing.T) {
	// GIVEN
	output := FileOutput{Path: filepath.Join(t.TempDir(), "missing", "pwm1"), Max: 255}

	// WHEN
	err := output.SetLevel(0.5)

	// THEN
	assert.Error(t, err)
}

func TestVirtualOutput(t *testing.T) {
	// GIVEN
	output := &VirtualOutput{}

	// THEN
	assert.True(t, math.IsNaN(output.Level()))

	// WHEN
	err := output.SetLevel(0.4)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 0.4, output.Level())
	assert.Equal(t, 1, output.Writes())

	// WHEN
	output.SetFailure(errors.New("broken"))
	err = output.SetLevel(0.9)

	// THEN
	assert.EqualError(t, err, "broken")
	assert.Equal(t, 0.4, output.Level())

	// WHEN
	_ = output.Close()

	// THEN
	assert.True(t, output.Closed())
}

func TestGpioValue(t *testing.T) {
	assert.Equal(t, 0, gpioValue(0))
	assert.Equal(t, 0, gpioValue(0.49))
	assert.Equal(t, 1, gpioValue(0.5))
	assert.Equal(t, 1, gpioValue(1))
	assert.Equal(t, 0, gpioValue(math.NaN()))
}
