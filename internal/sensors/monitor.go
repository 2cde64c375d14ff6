package sensors

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/fanforge/fanforge/internal/ui"
	"github.com/fanforge/fanforge/internal/util"
)

var ErrNoReading = errors.New("no reading available")

// Monitor polls a sensor and caches its last good reading, so the control loop
// never has to wait for a slow sensor.
type Monitor interface {
	Run(ctx context.Context) error

	// Poll reads the sensor once
	Poll()

	// Temperature returns the cached temperature, or NaN if the last read failed
	// or the cached value is older than the configured max age
	Temperature() float64

	// ErrorRate returns the ratio of failed reads within the error window
	ErrorRate() float64

	// Last returns the last successfully read value, when it was read and the
	// error of the most recent read
	Last() (value float64, at time.Time, err error)
}

type sensorMonitor struct {
	sensor      Sensor
	pollingRate time.Duration
	maxAge      time.Duration

	mu      sync.RWMutex
	value   float64
	valueAt time.Time
	lastErr error
	errors  *rolling.PointPolicy

	now func() time.Time
}

func NewMonitor(sensor Sensor, pollingRate time.Duration, maxAge time.Duration, errorWindowSize int) Monitor {
	if errorWindowSize <= 0 {
		errorWindowSize = 1
	}
	return &sensorMonitor{
		sensor:      sensor,
		pollingRate: pollingRate,
		maxAge:      maxAge,
		value:       math.NaN(),
		lastErr:     ErrNoReading,
		errors:      util.CreateRollingWindow(errorWindowSize),
		now:         time.Now,
	}
}

func (m *sensorMonitor) Run(ctx context.Context) error {
	m.Poll()

	tick := time.NewTicker(m.pollingRate)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
			m.Poll()
		}
	}
}

func (m *sensorMonitor) Poll() {
	value, err := m.sensor.GetValue()
	if err == nil && !util.IsFinite(value) {
		err = ErrNoReading
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	wasFailing := m.lastErr != nil
	m.lastErr = err
	if err != nil {
		m.errors.Append(1)
		if !wasFailing {
			ui.Warning("Sensor %s: reading failed: %v", m.sensor.GetId(), err)
		}
		return
	}

	m.errors.Append(0)
	m.value = value
	m.valueAt = m.now()
	if wasFailing {
		ui.Info("Sensor %s: reading %.2f°C", m.sensor.GetId(), value)
	}
}

func (m *sensorMonitor) Temperature() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.lastErr != nil {
		return math.NaN()
	}
	if m.maxAge > 0 && m.now().Sub(m.valueAt) > m.maxAge {
		return math.NaN()
	}
	return m.value
}

func (m *sensorMonitor) ErrorRate() float64 {
	return util.GetWindowAvg(m.errors)
}

func (m *sensorMonitor) Last() (float64, time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.value, m.valueAt, m.lastErr
}
