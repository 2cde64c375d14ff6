package statistics

import (
	"github.com/fanforge/fanforge/internal/controller"
	"github.com/fanforge/fanforge/internal/settings"
	"github.com/prometheus/client_golang/prometheus"
)

const controllerSubsystem = "controller"

var modes = []settings.Mode{settings.ModeAuto, settings.ModeManual, settings.ModeOff}

type ControllerCollector struct {
	controller controller.FanController

	duty               *prometheus.Desc
	targetDuty         *prometheus.Desc
	outputLevel        *prometheus.Desc
	controlTemperature *prometheus.Desc
	temperatureValid   *prometheus.Desc
	failsafeLatched    *prometheus.Desc
	mode               *prometheus.Desc
	outputErrors       *prometheus.Desc
	ticks              *prometheus.Desc
}

func NewControllerCollector(controller controller.FanController) *ControllerCollector {
	return &ControllerCollector{
		controller: controller,
		duty: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "duty_pct"),
			"Currently commanded duty in percent",
			nil, nil,
		),
		targetDuty: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "target_duty_pct"),
			"Duty in percent the controller is moving towards",
			nil, nil,
		),
		outputLevel: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "output_level"),
			"Physical output level in [0,1] after polarity inversion",
			nil, nil,
		),
		controlTemperature: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "temperature_celsius"),
			"Filtered temperature used for control",
			nil, nil,
		),
		temperatureValid: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "temperature_valid"),
			"1 if the latest temperature reading was usable, 0 otherwise",
			nil, nil,
		),
		failsafeLatched: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "failsafe_latched"),
			"1 while the over-temperature failsafe is engaged",
			nil, nil,
		),
		mode: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "mode"),
			"1 for the currently active operating mode",
			[]string{"mode"}, nil,
		),
		outputErrors: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "output_errors_total"),
			"Number of failed writes to the output",
			nil, nil,
		),
		ticks: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "ticks_total"),
			"Number of control loop iterations",
			nil, nil,
		),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.duty
	ch <- collector.targetDuty
	ch <- collector.outputLevel
	ch <- collector.controlTemperature
	ch <- collector.temperatureValid
	ch <- collector.failsafeLatched
	ch <- collector.mode
	ch <- collector.outputErrors
	ch <- collector.ticks
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	snapshot := collector.controller.Snapshot()
	ch <- prometheus.MustNewConstMetric(collector.duty, prometheus.GaugeValue, snapshot.Duty)
	ch <- prometheus.MustNewConstMetric(collector.targetDuty, prometheus.GaugeValue, snapshot.TargetDuty)
	ch <- prometheus.MustNewConstMetric(collector.outputLevel, prometheus.GaugeValue, snapshot.OutputLevel)
	ch <- prometheus.MustNewConstMetric(collector.controlTemperature, prometheus.GaugeValue, snapshot.ControlTemperature)
	ch <- prometheus.MustNewConstMetric(collector.temperatureValid, prometheus.GaugeValue, boolToFloat(snapshot.TemperatureValid))
	ch <- prometheus.MustNewConstMetric(collector.failsafeLatched, prometheus.GaugeValue, boolToFloat(snapshot.FailsafeLatched))
	for _, mode := range modes {
		ch <- prometheus.MustNewConstMetric(collector.mode, prometheus.GaugeValue, boolToFloat(snapshot.Mode == mode), mode.String())
	}
	ch <- prometheus.MustNewConstMetric(collector.outputErrors, prometheus.CounterValue, float64(snapshot.OutputErrors))
	ch <- prometheus.MustNewConstMetric(collector.ticks, prometheus.CounterValue, float64(snapshot.Ticks))
}

func boolToFloat(value bool) float64 {
	if value {
		return 1
	}
	return 0
}
