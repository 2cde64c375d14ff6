package config

import (
	"github.com/fanforge/fanforge/internal/configuration"
	"github.com/fanforge/fanforge/internal/ui"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "config",
	Short:            "Configuration related commands",
	Long:             ``,
	TraverseChildren: true,
}

// readConfig reads and validates the daemon configuration
func readConfig() error {
	configPath := configuration.DetectAndReadConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	return configuration.Validate(configPath)
}
