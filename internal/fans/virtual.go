package fans

import (
	"math"
	"sync"
)

// VirtualOutput remembers the last level it was set to
type VirtualOutput struct {
	Name string

	mu      sync.Mutex
	level   float64
	writes  int
	closed  bool
	failure error
}

func (output *VirtualOutput) GetId() string {
	if output.Name == "" {
		return "virtual"
	}
	return "virtual:" + output.Name
}

func (output *VirtualOutput) SetLevel(level float64) error {
	output.mu.Lock()
	defer output.mu.Unlock()
	if output.failure != nil {
		return output.failure
	}
	output.level = clampLevel(level)
	output.writes++
	return nil
}

func (output *VirtualOutput) Close() error {
	output.mu.Lock()
	defer output.mu.Unlock()
	output.closed = true
	return nil
}

// Level returns the last applied level, NaN if it was never set
func (output *VirtualOutput) Level() float64 {
	output.mu.Lock()
	defer output.mu.Unlock()
	if output.writes == 0 {
		return math.NaN()
	}
	return output.level
}

func (output *VirtualOutput) Writes() int {
	output.mu.Lock()
	defer output.mu.Unlock()
	return output.writes
}

func (output *VirtualOutput) Closed() bool {
	output.mu.Lock()
	defer output.mu.Unlock()
	return output.closed
}

// SetFailure makes every following SetLevel call return err, nil clears it
func (output *VirtualOutput) SetFailure(err error) {
	output.mu.Lock()
	defer output.mu.Unlock()
	output.failure = err
}
