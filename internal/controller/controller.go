package controller

import (
	"context"
	"sync"
	"time"

	"github.com/fanforge/fanforge/internal/control_loop"
	"github.com/fanforge/fanforge/internal/curves"
	"github.com/fanforge/fanforge/internal/fans"
	"github.com/fanforge/fanforge/internal/settings"
	"github.com/fanforge/fanforge/internal/ui"
	"github.com/fanforge/fanforge/internal/util"
)

// TemperatureSource provides the latest raw temperature, NaN if there is no usable reading
type TemperatureSource interface {
	Temperature() float64
}

// SettingsSource provides the current fan settings
type SettingsSource interface {
	Get() settings.Settings
}

type errorRateSource interface {
	ErrorRate() float64
}

type Options struct {
	// Time interval between each control tick
	TickRate time.Duration
	// Minimum change of the raw temperature before the control temperature follows (°C)
	TempDeadband float64
	// Corrections smaller than this are ignored (%)
	PwmDeadband float64
	// Temperature drop below the failsafe threshold required to release the failsafe (°C)
	FailsafeHysteresis float64
	// Inverted flips the output polarity
	Inverted bool
}

type FanController interface {
	// Run ticks until ctx is done and drives the output to full speed afterwards
	Run(ctx context.Context) error
	// Tick runs a single control iteration
	Tick()
	Snapshot() Snapshot
}

type fanController struct {
	settings SettingsSource
	sensor   TemperatureSource
	output   fans.Output
	clock    Clock
	options  Options

	// serializes ticks and output writes
	tickMu sync.Mutex

	// guards the loop state, never held while writing to the output
	mu     sync.RWMutex
	filter *control_loop.TemperatureFilter
	gate   control_loop.FailsafeGate
	shaper *control_loop.OutputShaper
	state  Snapshot
}

func NewFanController(settings SettingsSource, sensor TemperatureSource, output fans.Output, clock Clock, options Options) FanController {
	if options.TickRate <= 0 {
		options.TickRate = 200 * time.Millisecond
	}
	if options.FailsafeHysteresis < 0 {
		options.FailsafeHysteresis = control_loop.DefaultFailsafeHysteresis
	}
	return &fanController{
		settings: settings,
		sensor:   sensor,
		output:   output,
		clock:    clock,
		options:  options,
		filter:   control_loop.NewTemperatureFilter(options.TempDeadband),
		shaper:   control_loop.NewOutputShaper(options.PwmDeadband),
	}
}

func (f *fanController) Run(ctx context.Context) error {
	ui.Info("Starting controller loop for output '%s'", f.output.GetId())

	f.Tick()
	tick := time.NewTicker(f.options.TickRate)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			f.shutdown()
			return nil
		case <-tick.C:
			f.Tick()
		}
	}
}

// shutdown drives the fan to full speed and releases the output
func (f *fanController) shutdown() {
	f.tickMu.Lock()
	defer f.tickMu.Unlock()

	level := control_loop.OutputLevel(settings.MaxDuty, f.options.Inverted)
	ui.Info("Setting output '%s' to full speed", f.output.GetId())
	if err := f.output.SetLevel(level); err != nil {
		ui.Warning("Unable to set output '%s' to full speed, make sure the fan is running: %v", f.output.GetId(), err)
	}
	if err := f.output.Close(); err != nil {
		ui.Warning("Unable to close output '%s': %v", f.output.GetId(), err)
	}
}

func (f *fanController) Tick() {
	f.tickMu.Lock()
	defer f.tickMu.Unlock()

	level, ok := f.step()
	if !ok {
		return
	}
	err := f.output.SetLevel(level)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.recordOutputResult(level, err)
}

// step advances the loop state and returns the output level to apply
func (f *fanController) step() (float64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := f.settings.Get()
	now := f.clock.NowMillis()
	state := &f.state

	points := s.CurvePoints()

	raw := f.sensor.Temperature()
	temperature, valid := f.filter.Update(raw)
	if valid != state.TemperatureValid || state.Ticks == 0 {
		if !valid {
			ui.Warning("No valid temperature reading")
		} else if state.Ticks > 0 {
			ui.Info("Temperature reading recovered: %.2f°C", temperature)
		}
	}
	state.RawTemperature = raw
	state.ControlTemperature = temperature
	state.TemperatureValid = valid
	state.Mode = s.Mode
	state.Smoothing = s.Smoothing
	if source, ok := f.sensor.(errorRateSource); ok {
		state.SensorErrorRate = source.ErrorRate()
	}
	state.Ticks++

	var target float64
	switch s.Mode {
	case settings.ModeOff:
		target = 0
		f.resetFailsafe()
	case settings.ModeManual:
		target = util.Coerce(s.ManualPwm, settings.MinDuty, settings.MaxDuty)
		f.resetFailsafe()
	default:
		if !valid {
			// hold the last duty until a reading is available again
			state.LastUpdateMillis = now
			state.HasTicked = true
			return 0, false
		}
		target = f.autoTarget(s, temperature, points)
	}

	target = util.Coerce(target, settings.MinDuty, settings.MaxDuty)

	dt := control_loop.ElapsedSeconds(state.LastUpdateMillis, state.HasTicked, now)
	maxStep := control_loop.MaxStep(s.SlewPctPerSec, dt)
	duty := f.shaper.Step(target, state.Duty, maxStep)

	state.TargetDuty = target
	state.Duty = duty
	state.LastUpdateMillis = now
	state.HasTicked = true
	state.OutputLevel = control_loop.OutputLevel(duty, f.options.Inverted)

	return state.OutputLevel, true
}

func (f *fanController) autoTarget(s settings.Settings, temperature float64, points []curves.Point) float64 {
	target := curves.Evaluate(s.Smoothing.Interpolation(), temperature, points)
	target = util.Coerce(target, settings.MinDuty, settings.MaxDuty)
	if target > 0 {
		// a target of 0 is never pulled up to the minimum
		target = util.Coerce(target, s.MinPwm, s.MaxPwm)
	}

	wasLatched := f.gate.Latched()
	latched := f.gate.Update(temperature, s.FailsafeTemp, f.options.FailsafeHysteresis)
	if latched && !wasLatched {
		ui.Warning("Failsafe engaged: %.2f°C >= %.2f°C, forcing at least %.0f%%", temperature, s.FailsafeTemp, s.FailsafePwm)
	} else if !latched && wasLatched {
		ui.Info("Failsafe released: %.2f°C", temperature)
	}
	f.state.FailsafeLatched = latched

	return f.gate.Apply(target, s.FailsafePwm)
}

func (f *fanController) resetFailsafe() {
	f.gate.Reset()
	f.state.FailsafeLatched = false
}

func (f *fanController) recordOutputResult(level float64, err error) {
	if err != nil {
		if f.state.LastOutputError == "" {
			ui.Error("Unable to set output '%s' to %.3f: %v", f.output.GetId(), level, err)
		}
		f.state.OutputErrors++
		f.state.LastOutputError = err.Error()
		return
	}
	if f.state.LastOutputError != "" {
		ui.Info("Output '%s' recovered", f.output.GetId())
		f.state.LastOutputError = ""
	}
}

func (f *fanController) Snapshot() Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state
}
