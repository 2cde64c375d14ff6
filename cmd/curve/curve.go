package curve

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fanforge/fanforge/cmd/global"
	"github.com/fanforge/fanforge/internal"
	"github.com/fanforge/fanforge/internal/configuration"
	"github.com/fanforge/fanforge/internal/curves"
	"github.com/fanforge/fanforge/internal/persistence"
	"github.com/fanforge/fanforge/internal/settings"
	"github.com/fanforge/fanforge/internal/ui"
	"github.com/guptarohit/asciigraph"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var Command = &cobra.Command{
	Use:   "curve",
	Short: "Print the stored fan curve to console",
	Long: `Evaluates the stored fan curve between curve_min and curve_max using both
interpolation strategies and prints the result as a table and a graph.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()
		if err := configuration.Validate(configPath); err != nil {
			return err
		}

		pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
		s := internal.LoadSettings(pers, configuration.CurrentConfig.Defaults)
		points := s.CurvePoints()

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

		// print table
		var rows [][]string
		for _, point := range points {
			rows = append(rows, []string{formatValue(point.Temperature), formatValue(point.Duty)})
		}
		if err := printTable(table.Table{Headers: []string{"°C", "%"}, Rows: rows}, tableConfig); err != nil {
			return err
		}

		samples := Sample(s)
		var sampleRows [][]string
		for _, sample := range samples {
			sampleRows = append(sampleRows, []string{
				formatValue(sample.Temperature), formatValue(sample.Linear), formatValue(sample.Smooth),
			})
		}
		if err := printTable(table.Table{Headers: []string{"°C", "Linear %", "Smooth %"}, Rows: sampleRows}, tableConfig); err != nil {
			return err
		}

		// print graph
		linear := make([]float64, 0, len(samples))
		smooth := make([]float64, 0, len(samples))
		for _, sample := range samples {
			linear = append(linear, sample.Linear)
			smooth = append(smooth, sample.Smooth)
		}
		caption := fmt.Sprintf("Duty %% / °C (%s .. %s), active: %s", formatValue(s.CurveMin), formatValue(s.CurveMax), s.Smoothing)
		graph := asciigraph.PlotMany(
			[][]float64{linear, smooth},
			asciigraph.Height(15),
			asciigraph.Width(100),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(100),
			asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Green),
			asciigraph.Caption(caption),
		)
		ui.Printfln("%s", graph)
		return nil
	},
}

// CurveSample is the duty of both interpolation strategies at one temperature
type CurveSample struct {
	Temperature float64
	Linear      float64
	Smooth      float64
}

// Sample evaluates the curve of s in 1 °C steps from CurveMin to CurveMax
func Sample(s settings.Settings) []CurveSample {
	points := s.CurvePoints()
	start := math.Min(s.CurveMin, s.CurveMax)
	stop := math.Max(s.CurveMin, s.CurveMax)

	var result []CurveSample
	for temperature := start; temperature <= stop; temperature++ {
		result = append(result, CurveSample{
			Temperature: temperature,
			Linear:      curves.Evaluate(curves.InterpolationTypeLinear, temperature, points),
			Smooth:      curves.Evaluate(curves.InterpolationTypeSmooth, temperature, points),
		})
	}
	return result
}

func printTable(tab table.Table, config *table.Config) error {
	var buf bytes.Buffer
	if err := tab.WriteTable(&buf, config); err != nil {
		return fmt.Errorf("error printing table: %w", err)
	}
	ui.Printfln("%s", buf.String())
	return nil
}

func formatValue(value float64) string {
	return fmt.Sprintf("%.1f", value)
}
