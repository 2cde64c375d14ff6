package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fanforge/fanforge/internal"
	"github.com/fanforge/fanforge/internal/configuration"
	"github.com/fanforge/fanforge/internal/persistence"
	"github.com/fanforge/fanforge/internal/settings"
	"github.com/fanforge/fanforge/internal/ui"
	"github.com/fanforge/fanforge/internal/util"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Prints the stored fan configuration as it is served by the API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportOutput == "" {
			// keep stdout machine readable
			pterm.DisableOutput()
		}
		if err := readConfig(); err != nil {
			return err
		}

		pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
		s := internal.LoadSettings(pers, configuration.CurrentConfig.Defaults)

		data, err := renderDocument(s)
		if err != nil {
			return err
		}

		if exportOutput == "" {
			fmt.Println(string(data))
			return nil
		}

		path, err := util.ExpandHome(exportOutput)
		if err != nil {
			return err
		}
		if err := util.WriteFileAtomic(path, bytes.NewReader(append(data, '\n'))); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		ui.Success("Fan configuration written to %s", path)
		return nil
	},
}

func renderDocument(s settings.Settings) ([]byte, error) {
	return json.MarshalIndent(settings.Render(s), "", "  ")
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "File to write the configuration to, stdout if empty")
	Command.AddCommand(exportCmd)
}
