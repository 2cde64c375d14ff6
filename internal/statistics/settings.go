package statistics

import (
	"sync/atomic"

	"github.com/fanforge/fanforge/internal/settings"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemSettings = "settings"

type SettingsSource interface {
	Get() settings.Settings
}

// SettingsCollector exports the active fan settings and counts accepted updates.
// Register Observe as a listener of the settings store.
type SettingsCollector struct {
	store       SettingsSource
	updates     atomic.Uint64
	modeChanges atomic.Uint64

	updatesDesc     *prometheus.Desc
	modeChangesDesc *prometheus.Desc
	minPwm          *prometheus.Desc
	maxPwm          *prometheus.Desc
	manualPwm       *prometheus.Desc
	slew            *prometheus.Desc
	failsafeTemp    *prometheus.Desc
	failsafePwm     *prometheus.Desc
	points          *prometheus.Desc
}

func NewSettingsCollector(store SettingsSource) *SettingsCollector {
	return &SettingsCollector{
		store: store,
		updatesDesc: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSettings, "updates_total"),
			"Number of accepted configuration updates",
			nil, nil,
		),
		modeChangesDesc: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSettings, "mode_changes_total"),
			"Number of configuration updates that changed the operating mode",
			nil, nil,
		),
		minPwm: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSettings, "min_pwm"),
			"Lower duty limit in auto mode",
			nil, nil,
		),
		maxPwm: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSettings, "max_pwm"),
			"Upper duty limit in auto mode",
			nil, nil,
		),
		manualPwm: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSettings, "manual_pwm"),
			"Duty used in manual mode",
			nil, nil,
		),
		slew: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSettings, "slew_pct_per_sec"),
			"Maximum duty change per second",
			nil, nil,
		),
		failsafeTemp: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSettings, "failsafe_temp_celsius"),
			"Temperature at which the failsafe engages",
			nil, nil,
		),
		failsafePwm: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSettings, "failsafe_pwm"),
			"Minimum duty while the failsafe is engaged",
			nil, nil,
		),
		points: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSettings, "curve_points"),
			"Number of points of the active curve",
			nil, nil,
		),
	}
}

// Observe is a settings.Listener
func (collector *SettingsCollector) Observe(previous settings.Settings, current settings.Settings) {
	collector.updates.Add(1)
	if previous.Mode != current.Mode {
		collector.modeChanges.Add(1)
	}
}

func (collector *SettingsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.updatesDesc
	ch <- collector.modeChangesDesc
	ch <- collector.minPwm
	ch <- collector.maxPwm
	ch <- collector.manualPwm
	ch <- collector.slew
	ch <- collector.failsafeTemp
	ch <- collector.failsafePwm
	ch <- collector.points
}

// Collect implements required collect function for all prometheus collectors
func (collector *SettingsCollector) Collect(ch chan<- prometheus.Metric) {
	s := collector.store.Get()
	ch <- prometheus.MustNewConstMetric(collector.updatesDesc, prometheus.CounterValue, float64(collector.updates.Load()))
	ch <- prometheus.MustNewConstMetric(collector.modeChangesDesc, prometheus.CounterValue, float64(collector.modeChanges.Load()))
	ch <- prometheus.MustNewConstMetric(collector.minPwm, prometheus.GaugeValue, s.MinPwm)
	ch <- prometheus.MustNewConstMetric(collector.maxPwm, prometheus.GaugeValue, s.MaxPwm)
	ch <- prometheus.MustNewConstMetric(collector.manualPwm, prometheus.GaugeValue, s.ManualPwm)
	ch <- prometheus.MustNewConstMetric(collector.slew, prometheus.GaugeValue, s.SlewPctPerSec)
	ch <- prometheus.MustNewConstMetric(collector.failsafeTemp, prometheus.GaugeValue, s.FailsafeTemp)
	ch <- prometheus.MustNewConstMetric(collector.failsafePwm, prometheus.GaugeValue, s.FailsafePwm)
	ch <- prometheus.MustNewConstMetric(collector.points, prometheus.GaugeValue, float64(len(s.CurvePoints())))
}
