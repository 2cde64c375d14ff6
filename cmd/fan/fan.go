package fan

import (
	"github.com/fanforge/fanforge/internal/configuration"
	"github.com/fanforge/fanforge/internal/fans"
	"github.com/fanforge/fanforge/internal/ui"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "fan",
	Short:            "Fan output related commands",
	Long:             ``,
	TraverseChildren: true,
}

func getOutput() (fans.Output, configuration.OutputConfig, error) {
	configPath := configuration.DetectAndReadConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	err := configuration.Validate(configPath)
	if err != nil {
		return nil, configuration.OutputConfig{}, err
	}

	config := configuration.CurrentConfig.Output
	output, err := fans.NewOutput(config)
	return output, config, err
}
