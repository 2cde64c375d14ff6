package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/fanforge/fanforge/cmd/global"
	"github.com/fanforge/fanforge/internal/configuration"
	"github.com/fanforge/fanforge/internal/hwmon"
	"github.com/fanforge/fanforge/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
	"gopkg.in/yaml.v3"
)

var printSensorConfig bool

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect temperature sensors",
	Long:  `Detects all hwmon temperature inputs and prints them as a list`,
	Run: func(cmd *cobra.Command, args []string) {
		chips := hwmon.GetChips()

		// === Print detected devices ===
		tableConfig := &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		}

		var sensorConfigs []configuration.SensorConfig
		for _, chip := range chips {
			if len(chip.Name) <= 0 {
				continue
			}

			ui.Printfln("> %s (%s)", chip.Name, chip.Platform)

			var rows [][]string
			for _, input := range chip.Inputs {
				_, file := filepath.Split(input.Path)
				labelAndFile := fmt.Sprintf("%s (%s)", input.Label, file)

				maxText := "N/A"
				if input.Max > 0 {
					maxText = strconv.FormatFloat(input.Max, 'f', 1, 64)
				}

				config := hwmon.SensorConfig(chip, input)
				sensorConfigs = append(sensorConfigs, config)

				rows = append(rows, []string{
					"", strconv.Itoa(input.Index), labelAndFile, strconv.FormatFloat(input.Value, 'f', 1, 64), maxText, config.ID,
				})
			}

			sensorTable := table.Table{
				Headers: []string{"Sensors", "Index", "Label", "Value", "Max", "ID"},
				Rows:    rows,
			}

			var buf bytes.Buffer
			tableErr := sensorTable.WriteTable(&buf, tableConfig)
			if tableErr != nil {
				ui.Fatal("Error printing table: %v", tableErr)
			}
			ui.Printfln("%s", buf.String())
		}

		if printSensorConfig && len(sensorConfigs) > 0 {
			data, err := yaml.Marshal(sensorConfigBlock(sensorConfigs))
			if err != nil {
				ui.Fatal("Error rendering sensor configuration: %v", err)
			}
			ui.Printfln("%s", string(data))
		}
	},
}

// sensorConfigBlock renders sensors the way they are written in fanforge.yaml
func sensorConfigBlock(configs []configuration.SensorConfig) map[string]any {
	var sensors []map[string]any
	for _, config := range configs {
		sensors = append(sensors, map[string]any{
			"id": config.ID,
			"hwmon": map[string]any{
				"path": config.HwMon.Path,
			},
		})
	}
	return map[string]any{"sensors": sensors}
}

func init() {
	detectCmd.Flags().BoolVarP(&printSensorConfig, "sensors", "s", false, "Print a sensors configuration block for all detected inputs")
	rootCmd.AddCommand(detectCmd)
}
