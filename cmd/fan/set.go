package fan

import (
	"fmt"
	"strconv"

	"github.com/fanforge/fanforge/internal/control_loop"
	"github.com/fanforge/fanforge/internal/settings"
	"github.com/fanforge/fanforge/internal/ui"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <duty>",
	Short: "Drive the fan output with the given duty ([0..100] %)",
	Long: `Drives the configured fan output once with the given duty, applying the
configured polarity. Do not use this while the daemon is running.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		duty, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return err
		}
		if duty < settings.MinDuty || duty > settings.MaxDuty {
			return fmt.Errorf("duty must be within %.0f..%.0f", settings.MinDuty, settings.MaxDuty)
		}

		output, config, err := getOutput()
		if err != nil {
			return err
		}
		defer func() {
			_ = output.Close()
		}()

		level := control_loop.OutputLevel(duty, config.Inverted.Get())
		if err := output.SetLevel(level); err != nil {
			return err
		}
		ui.Success("Output %s set to %.1f%% (level %.3f)", output.GetId(), duty, level)
		return nil
	},
}

func init() {
	Command.AddCommand(setCmd)
}
