package statistics

import (
	"context"
	"time"
)

type MockMonitor struct {
	value float64
}

func (m *MockMonitor) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (m *MockMonitor) Poll() {}

func (m *MockMonitor) Temperature() float64 {
	return m.value
}

func (m *MockMonitor) ErrorRate() float64 {
	return 0.25
}

func (m *MockMonitor) Last() (float64, time.Time, error) {
	return m.value, time.Time{}, nil
}
