package config

import (
	"github.com/fanforge/fanforge/internal/configuration"
	"github.com/fanforge/fanforge/internal/persistence"
	"github.com/fanforge/fanforge/internal/ui"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Deletes the stored fan configuration",
	Long: `Deletes the fan configuration stored in the database. The daemon falls
back to the configured defaults on its next start.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := readConfig(); err != nil {
			return err
		}

		pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
		if err := pers.Init(); err != nil {
			return err
		}
		if err := pers.DeleteSettings(); err != nil {
			return err
		}

		ui.Success("Deleted stored fan configuration from %s", configuration.CurrentConfig.DbPath)
		return nil
	},
}

func init() {
	Command.AddCommand(resetCmd)
}
