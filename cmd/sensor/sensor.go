package sensor

import (
	"fmt"

	"github.com/fanforge/fanforge/internal/configuration"
	"github.com/fanforge/fanforge/internal/sensors"
	"github.com/fanforge/fanforge/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var sensorId string

var Command = &cobra.Command{
	Use:              "sensor",
	Short:            "Print the current value of a sensor",
	Long:             ``,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		sensor, err := getSensor(sensorId)
		if err != nil {
			return err
		}

		value, err := sensor.GetValue()
		if err != nil {
			return err
		}
		fmt.Printf("%.2f\n", value)
		return nil
	},
}

func init() {
	Command.PersistentFlags().StringVarP(
		&sensorId,
		"id", "i",
		"",
		"Sensor ID as specified in the config",
	)
	_ = Command.MarkPersistentFlagRequired("id")
}

func getSensor(id string) (sensors.Sensor, error) {
	configPath := configuration.DetectAndReadConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	err := configuration.Validate(configPath)
	if err != nil {
		return nil, err
	}

	availableSensorIds := []string{}
	for _, config := range configuration.CurrentConfig.Sensors {
		availableSensorIds = append(availableSensorIds, config.ID)
		if config.ID == id {
			return sensors.NewSensor(config)
		}
	}

	return nil, fmt.Errorf("no sensor with id found: %s, options: %s", id, availableSensorIds)
}
