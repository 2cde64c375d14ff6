package internal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/fanforge/fanforge/internal/configuration"
	"github.com/fanforge/fanforge/internal/persistence"
	"github.com/fanforge/fanforge/internal/sensors"
	"github.com/fanforge/fanforge/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPersistence(t *testing.T) persistence.Persistence {
	p := persistence.NewPersistence(filepath.Join(t.TempDir(), "fanforge.db"))
	require.NoError(t, p.Init())
	return p
}

func defaultsConfig() configuration.DefaultsConfig {
	return configuration.DefaultsConfig{
		Mode:          settings.ModeManual,
		SmoothingMode: settings.SmoothingSmooth,
		Points: []configuration.PointConfig{
			{Temperature: 25, Duty: 30},
			{Temperature: 45, Duty: 90},
		},
		MinPwm:        10,
		MaxPwm:        90,
		CurveMin:      20,
		CurveMax:      45,
		SlewPctPerSec: 5,
		FailsafeTemp:  70,
		FailsafePwm:   100,
		ManualPwm:     35,
	}
}

func TestLoadSettings_UsesDefaultsWhenEmpty(t *testing.T) {
	// GIVEN
	pers := createPersistence(t)

	// WHEN
	result := LoadSettings(pers, defaultsConfig())

	// THEN
	assert.Equal(t, defaultsConfig().Settings(), result)
	assert.Equal(t, settings.ModeManual, result.Mode)
	assert.Equal(t, 35.0, result.ManualPwm)
}

func TestLoadSettings_PrefersStoredSettings(t *testing.T) {
	// GIVEN
	pers := createPersistence(t)
	store := settings.NewStore(defaultsConfig().Settings())
	store.AddListener(PersistSettings(pers))

	_, err := store.Apply([]byte(`{
		"mode": "auto", "smoothing_mode": "linear",
		"points": [{"t": 20, "p": 20}, {"t": 35, "p": 50}, {"t": 50, "p": 80}],
		"min_pwm": 20, "max_pwm": 80, "slew_pct_per_sec": 12,
		"failsafe_temp": 65, "failsafe_pwm": 100
	}`))
	require.NoError(t, err)

	// WHEN
	result := LoadSettings(pers, defaultsConfig())

	// THEN
	assert.Equal(t, store.Get(), result)
	assert.Equal(t, settings.ModeAuto, result.Mode)
	assert.Len(t, result.Points, 3)
	assert.Equal(t, 35.0, result.ManualPwm)
}

func TestControllerOptions(t *testing.T) {
	// GIVEN
	config := configuration.Configuration{
		Controller: configuration.ControllerConfig{
			Sensor:             "cpu",
			TickRate:           250 * time.Millisecond,
			TempDeadband:       0.3,
			PwmDeadband:        2,
			FailsafeHysteresis: 1.5,
		},
	}

	// WHEN
	options := ControllerOptions(config)

	// THEN
	assert.Equal(t, 250*time.Millisecond, options.TickRate)
	assert.Equal(t, 0.3, options.TempDeadband)
	assert.Equal(t, 2.0, options.PwmDeadband)
	assert.Equal(t, 1.5, options.FailsafeHysteresis)
	// inverted unless configured otherwise
	assert.True(t, options.Inverted)
}

func TestInitializeSensors(t *testing.T) {
	// GIVEN
	configs := []configuration.SensorConfig{
		{ID: "virtual_cpu", Virtual: &configuration.VirtualSensorConfig{Value: 42}},
	}

	// WHEN
	InitializeSensors(configs)

	// THEN
	sensor, ok := sensors.SensorMap.Get("virtual_cpu")
	require.True(t, ok)
	value, err := sensor.GetValue()
	assert.NoError(t, err)
	assert.Equal(t, 42.0, value)
}
