package settings

import (
	"github.com/fanforge/fanforge/internal/curves"
)

// Document is the external representation of Settings as exchanged over the API
type Document struct {
	Mode          Mode           `json:"mode"`
	SmoothingMode SmoothingMode  `json:"smoothing_mode"`
	Points        []curves.Point `json:"points,omitempty"`
	MinPwm        float64        `json:"min_pwm"`
	MaxPwm        float64        `json:"max_pwm"`
	CurveMin      float64        `json:"curve_min"`
	CurveMax      float64        `json:"curve_max"`
	SlewPctPerSec float64        `json:"slew_pct_per_sec"`
	FailsafeTemp  float64        `json:"failsafe_temp"`
	FailsafePwm   float64        `json:"failsafe_pwm"`
	ManualPwm     float64        `json:"manual_pwm"`
}

// Render converts s into its external representation. The curve always
// contains at least 2 points.
func Render(s Settings) Document {
	points := s.CurvePoints()
	rendered := make([]curves.Point, len(points))
	copy(rendered, points)

	return Document{
		Mode:          s.Mode,
		SmoothingMode: s.Smoothing,
		Points:        rendered,
		MinPwm:        s.MinPwm,
		MaxPwm:        s.MaxPwm,
		CurveMin:      s.CurveMin,
		CurveMax:      s.CurveMax,
		SlewPctPerSec: s.SlewPctPerSec,
		FailsafeTemp:  s.FailsafeTemp,
		FailsafePwm:   s.FailsafePwm,
		ManualPwm:     s.ManualPwm,
	}
}

// FromDocument converts a stored document back into Settings.
// Unknown enum values fall back to their defaults, numeric values are clamped.
func FromDocument(doc Document, points []curves.Point) Settings {
	mode, _ := ParseMode(string(doc.Mode))
	smoothing, _ := ParseSmoothingMode(string(doc.SmoothingMode))

	return Sanitize(Settings{
		Mode:          mode,
		Smoothing:     smoothing,
		Points:        points,
		MinPwm:        doc.MinPwm,
		MaxPwm:        doc.MaxPwm,
		CurveMin:      doc.CurveMin,
		CurveMax:      doc.CurveMax,
		SlewPctPerSec: doc.SlewPctPerSec,
		FailsafeTemp:  doc.FailsafeTemp,
		FailsafePwm:   doc.FailsafePwm,
		ManualPwm:     doc.ManualPwm,
	})
}
