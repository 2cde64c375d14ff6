package configuration

import (
	"os"
	"time"

	"github.com/fanforge/fanforge/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	DbPath string `json:"dbPath"`

	SensorPollingRate     time.Duration `json:"sensorPollingRate"`
	SensorMaxAge          time.Duration `json:"sensorMaxAge"`
	SensorErrorWindowSize int           `json:"sensorErrorWindowSize"`

	Api        ApiConfig        `json:"api"`
	Statistics StatisticsConfig `json:"statistics"`

	Sensors    []SensorConfig   `json:"sensors"`
	Output     OutputConfig     `json:"output"`
	Controller ControllerConfig `json:"controller"`
	Defaults   DefaultsConfig   `json:"defaults"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("fanforge")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/fanforge/")
	}

	viper.SetEnvPrefix("fanforge")
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbpath", "/etc/fanforge/fanforge.db")

	viper.SetDefault("sensorPollingRate", 1*time.Second)
	viper.SetDefault("sensorMaxAge", 10*time.Second)
	viper.SetDefault("sensorErrorWindowSize", 20)

	viper.SetDefault("api.enabled", true)
	viper.SetDefault("api.host", "0.0.0.0")
	viper.SetDefault("api.port", 8080)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("controller.tickRate", 200*time.Millisecond)
	viper.SetDefault("controller.tempDeadband", 0.51)
	viper.SetDefault("controller.pwmDeadband", 0.0)
	viper.SetDefault("controller.failsafeHysteresis", 1.0)

	viper.SetDefault("defaults.mode", "auto")
	viper.SetDefault("defaults.smoothingMode", "linear")
	viper.SetDefault("defaults.minPwm", 0.0)
	viper.SetDefault("defaults.maxPwm", 100.0)
	viper.SetDefault("defaults.curveMin", 15.0)
	viper.SetDefault("defaults.curveMax", 50.0)
	viper.SetDefault("defaults.slewPctPerSec", 10.0)
	viper.SetDefault("defaults.failsafeTemp", 60.0)
	viper.SetDefault("defaults.failsafePwm", 100.0)
	viper.SetDefault("defaults.manualPwm", 50.0)

	viper.SetDefault("sensors", []SensorConfig{})
}

// DetectAndReadConfigFile reads the config file and returns its path
func DetectAndReadConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		// config file is required, so we fail here
		ui.Fatal("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	// load default configuration values
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(decodeHooks()))
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}

func decodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		DefaultTrueBoolHookFunc(),
		settingsEnumHookFunc(),
	)
}
