package statistics

import (
	"github.com/fanforge/fanforge/internal/sensors"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemSensor = "sensor"

type SensorCollector struct {
	id        string
	monitor   sensors.Monitor
	value     *prometheus.Desc
	errorRate *prometheus.Desc
}

func NewSensorCollector(id string, monitor sensors.Monitor) *SensorCollector {
	return &SensorCollector{
		id:      id,
		monitor: monitor,
		value: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "value"),
			"Last successfully read value of the sensor",
			[]string{"id"}, nil,
		),
		errorRate: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "error_rate"),
			"Ratio of failed reads within the error window",
			[]string{"id"}, nil,
		),
	}
}

func (collector *SensorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.value
	ch <- collector.errorRate
}

// Collect implements required collect function for all prometheus collectors
func (collector *SensorCollector) Collect(ch chan<- prometheus.Metric) {
	value, _, _ := collector.monitor.Last()
	ch <- prometheus.MustNewConstMetric(collector.value, prometheus.GaugeValue, value, collector.id)
	ch <- prometheus.MustNewConstMetric(collector.errorRate, prometheus.GaugeValue, collector.monitor.ErrorRate(), collector.id)
}
