package status

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fanforge/fanforge/cmd/global"
	"github.com/fanforge/fanforge/internal/api"
	"github.com/fanforge/fanforge/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

const requestTimeout = 5 * time.Second

var baseUrl string

var Command = &cobra.Command{
	Use:   "status",
	Short: "Print the live state of a running daemon",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()

		status, err := FetchStatus(ctx, baseUrl)
		if err != nil {
			return err
		}

		tab := table.Table{
			Headers: []string{"", ""},
			Rows:    Rows(status),
		}
		var buf bytes.Buffer
		tableErr := tab.WriteTable(&buf, &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		})
		if tableErr != nil {
			return tableErr
		}
		ui.Printfln("%s", buf.String())
		return nil
	},
}

func init() {
	Command.Flags().StringVarP(&baseUrl, "url", "u", "http://127.0.0.1:8080", "Base URL of the fanforge API")
}

// FetchStatus requests the status endpoint of the API at baseUrl
func FetchStatus(ctx context.Context, baseUrl string) (*api.StatusResponse, error) {
	url := strings.TrimSuffix(baseUrl, "/") + api.EndpointStatus
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request %s: unexpected status %s", url, resp.Status)
	}

	var status api.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("decode status: %w", err)
	}
	return &status, nil
}

// Rows renders status as table rows
func Rows(status *api.StatusResponse) [][]string {
	temperature := "N/A"
	if status.TempC != nil {
		temperature = formatFloat(*status.TempC) + " °C"
	}

	return [][]string{
		{"Temperature", temperature},
		{"Duty", formatFloat(status.PwmPct) + " %"},
		{"Target", formatFloat(status.TargetPwmPct) + " %"},
		{"Output level", strconv.FormatFloat(status.OutputLevel, 'f', 3, 64)},
		{"Mode", status.Mode},
		{"Smoothing", status.SmoothingMode},
		{"Range", fmt.Sprintf("%s .. %s %%", formatFloat(status.MinPwm), formatFloat(status.MaxPwm))},
		{"Slew", formatFloat(status.SlewPctPerSec) + " %/s"},
		{"Manual duty", formatFloat(status.ManualPwm) + " %"},
		{"Failsafe", strconv.FormatBool(status.Failsafe)},
		{"Last update", strconv.FormatInt(status.LastUpdateMs, 10) + " ms"},
	}
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', 1, 64)
}
