package config

import (
	"fmt"
	"os"

	"github.com/fanforge/fanforge/internal"
	"github.com/fanforge/fanforge/internal/configuration"
	"github.com/fanforge/fanforge/internal/persistence"
	"github.com/fanforge/fanforge/internal/settings"
	"github.com/fanforge/fanforge/internal/ui"
	"github.com/fanforge/fanforge/internal/util"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Validates a fan configuration document and stores it",
	Long: `Validates a fan configuration document, as accepted by POST /api/config,
and stores it in the database. The daemon picks it up on its next start.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := readConfig(); err != nil {
			return err
		}

		path, err := util.ExpandHome(args[0])
		if err != nil {
			return err
		}
		body, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
		if err := pers.Init(); err != nil {
			return err
		}

		current := internal.LoadSettings(pers, configuration.CurrentConfig.Defaults)
		next, err := settings.Apply(body, current)
		if err != nil {
			return fmt.Errorf("invalid fan configuration: %w", err)
		}
		if err := pers.SaveSettings(next); err != nil {
			return err
		}

		ui.Success("Stored fan configuration: mode %s, %d curve points", next.Mode, len(next.Points))
		return nil
	},
}

func init() {
	Command.AddCommand(importCmd)
}
