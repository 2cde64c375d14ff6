package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type StatusResponse struct {
	// TempC is the control temperature, nil without a valid reading
	TempC         *float64 `json:"temp_c"`
	PwmPct        float64  `json:"pwm_pct"`
	TargetPwmPct  float64  `json:"target_pwm_pct"`
	OutputLevel   float64  `json:"output_level"`
	Mode          string   `json:"mode"`
	SmoothingMode string   `json:"smoothing_mode"`
	MinPwm        float64  `json:"min_pwm"`
	MaxPwm        float64  `json:"max_pwm"`
	SlewPctPerSec float64  `json:"slew_pct_per_sec"`
	ManualPwm     float64  `json:"manual_pwm"`
	Failsafe      bool     `json:"failsafe_active"`
	LastUpdateMs  int64    `json:"last_update_ms"`
}

func registerStatusEndpoints(rest *echo.Echo, store SettingsStore, status StatusSource) {
	rest.GET(EndpointStatus, func(c echo.Context) error {
		return getStatus(c, store, status)
	})
	rest.OPTIONS(EndpointStatus, preflight)
}

// returns the live loop state
func getStatus(c echo.Context, store SettingsStore, status StatusSource) error {
	s := store.Get()
	snapshot := status.Snapshot()

	return c.JSON(http.StatusOK, &StatusResponse{
		TempC:         snapshot.Temperature(),
		PwmPct:        snapshot.Duty,
		TargetPwmPct:  snapshot.TargetDuty,
		OutputLevel:   snapshot.OutputLevel,
		Mode:          s.Mode.String(),
		SmoothingMode: s.Smoothing.String(),
		MinPwm:        s.MinPwm,
		MaxPwm:        s.MaxPwm,
		SlewPctPerSec: s.SlewPctPerSec,
		ManualPwm:     s.ManualPwm,
		Failsafe:      snapshot.FailsafeLatched,
		LastUpdateMs:  snapshot.LastUpdateMillis,
	})
}
