package config

import (
	"fmt"

	"github.com/fanforge/fanforge/internal/configuration"
	"github.com/fanforge/fanforge/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Prints the effective configuration including defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)

		data, err := yaml.Marshal(viper.AllSettings())
		if err != nil {
			return fmt.Errorf("render configuration: %w", err)
		}
		ui.Printfln("%s", string(data))
		return nil
	},
}

func init() {
	Command.AddCommand(showCmd)
}
