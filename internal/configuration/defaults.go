package configuration

import (
	"github.com/fanforge/fanforge/internal/curves"
	"github.com/fanforge/fanforge/internal/settings"
)

// DefaultsConfig seeds the fan settings when nothing has been persisted yet
type DefaultsConfig struct {
	Mode          settings.Mode          `json:"mode"`
	SmoothingMode settings.SmoothingMode `json:"smoothingMode"`
	Points        []PointConfig          `json:"points"`
	MinPwm        float64                `json:"minPwm"`
	MaxPwm        float64                `json:"maxPwm"`
	CurveMin      float64                `json:"curveMin"`
	CurveMax      float64                `json:"curveMax"`
	SlewPctPerSec float64                `json:"slewPctPerSec"`
	FailsafeTemp  float64                `json:"failsafeTemp"`
	FailsafePwm   float64                `json:"failsafePwm"`
	ManualPwm     float64                `json:"manualPwm"`
}

type PointConfig struct {
	Temperature float64 `json:"t" mapstructure:"t"`
	Duty        float64 `json:"p" mapstructure:"p"`
}

// Settings converts the configured defaults into fan settings
func (c DefaultsConfig) Settings() settings.Settings {
	var points []curves.Point
	for _, point := range c.Points {
		points = append(points, curves.Point{Temperature: point.Temperature, Duty: point.Duty})
	}
	if len(points) < 2 {
		points = curves.FallbackPoints()
	}

	return settings.Sanitize(settings.Settings{
		Mode:          c.Mode,
		Smoothing:     c.SmoothingMode,
		Points:        points,
		MinPwm:        c.MinPwm,
		MaxPwm:        c.MaxPwm,
		CurveMin:      c.CurveMin,
		CurveMax:      c.CurveMax,
		SlewPctPerSec: c.SlewPctPerSec,
		FailsafeTemp:  c.FailsafeTemp,
		FailsafePwm:   c.FailsafePwm,
		ManualPwm:     c.ManualPwm,
	})
}
