package testingutils

import (
	"sync"
	"time"
)

// MockClock is a manually advanced controller.Clock
type MockClock struct {
	mu     sync.Mutex
	millis int64
}

func (c *MockClock) NowMillis() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.millis
}

func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.millis += d.Milliseconds()
}

// MockTemperature is a temperature source returning a settable value
type MockTemperature struct {
	mu    sync.Mutex
	value float64
}

func NewMockTemperature(value float64) *MockTemperature {
	return &MockTemperature{value: value}
}

func (t *MockTemperature) Temperature() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value
}

func (t *MockTemperature) Set(value float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.value = value
}
