package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fanforge/fanforge/internal/api"
	"github.com/fanforge/fanforge/internal/configuration"
	"github.com/fanforge/fanforge/internal/controller"
	"github.com/fanforge/fanforge/internal/fans"
	"github.com/fanforge/fanforge/internal/persistence"
	"github.com/fanforge/fanforge/internal/sensors"
	"github.com/fanforge/fanforge/internal/settings"
	"github.com/fanforge/fanforge/internal/statistics"
	"github.com/fanforge/fanforge/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

func RunDaemon() {
	config := configuration.CurrentConfig

	if os.Geteuid() != 0 {
		ui.Warning("fanforge is not running as root, writing to the fan output may fail")
	}

	pers := persistence.NewPersistence(config.DbPath)
	if err := pers.Init(); err != nil {
		ui.Fatal("Unable to initialize database at %s: %v", config.DbPath, err)
	}

	store := settings.NewStore(LoadSettings(pers, config.Defaults))

	InitializeSensors(config.Sensors)
	sensor, ok := sensors.SensorMap.Get(config.Controller.Sensor)
	if !ok {
		ui.Fatal("No sensor with id '%s' configured", config.Controller.Sensor)
	}
	monitor := sensors.NewMonitor(sensor, config.SensorPollingRate, config.SensorMaxAge, config.SensorErrorWindowSize)
	// have a reading ready for the first tick
	monitor.Poll()

	output, err := fans.NewOutput(config.Output)
	if err != nil {
		ui.Fatal("Unable to initialize fan output: %v", err)
	}

	fanController := controller.NewFanController(store, monitor, output, controller.NewMonotonicClock(), ControllerOptions(config))

	settingsCollector := statistics.NewSettingsCollector(store)
	store.AddListener(PersistSettings(pers))
	store.AddListener(ReportSettingsChange)
	store.AddListener(settingsCollector.Observe)

	statistics.Register(statistics.NewControllerCollector(fanController))
	statistics.Register(statistics.NewSensorCollector(sensor.GetId(), monitor))
	statistics.Register(settingsCollector)

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		if config.Statistics.Enabled {
			// === Prometheus Exporter
			port := config.Statistics.Port
			if port <= 0 || port >= 65535 {
				port = 9000
			}
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			server := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

			g.Add(func() error {
				ui.Info("Starting statistics server on %s", server.Addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("cannot start prometheus metrics endpoint: %w", err)
				}
				return nil
			}, func(err error) {
				ui.Info("Stopping statistics server...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer timeoutCancel()
				if err := server.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping statistics server: %v", err)
				} else {
					ui.Info("Statistics server stopped.")
				}
			})
		}
	}
	{
		if config.Api.Enabled {
			// === REST API
			rest := api.CreateRestService(store, fanController, prometheus.DefaultRegisterer)
			addr := fmt.Sprintf("%s:%d", config.Api.Host, config.Api.Port)

			g.Add(func() error {
				ui.Info("Starting API server on %s", addr)
				if err := rest.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("cannot start API server: %w", err)
				}
				return nil
			}, func(err error) {
				ui.Info("Stopping API server...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer timeoutCancel()
				if err := rest.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping API server: %v", err)
				} else {
					ui.Info("API server stopped.")
				}
			})
		}
	}
	{
		// === sensor monitoring
		g.Add(func() error {
			err := monitor.Run(ctx)
			ui.Info("Sensor monitor for sensor %s stopped.", sensor.GetId())
			return err
		}, func(err error) {
			cancel()
		})
	}
	{
		// === fan controller
		g.Add(func() error {
			err := fanController.Run(ctx)
			ui.Info("Fan controller for output %s stopped.", output.GetId())
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Something went wrong: %v", err)
			}
			cancel()
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Received SIGTERM signal, exiting...")
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	if err := g.Run(); err != nil {
		ui.Error("%v", err)
		os.Exit(1)
	} else {
		ui.Info("Done.")
		os.Exit(0)
	}
}

// InitializeSensors creates all configured sensors and registers them in sensors.SensorMap
func InitializeSensors(configs []configuration.SensorConfig) {
	for _, config := range configs {
		sensor, err := sensors.NewSensor(config)
		if err != nil {
			ui.Fatal("Unable to process sensor configuration: %s", config.ID)
		}

		if _, err := sensor.GetValue(); err != nil {
			ui.Warning("Error reading sensor %s: %v", config.ID, err)
		}

		sensors.SensorMap.Set(config.ID, sensor)
	}
}

func ControllerOptions(config configuration.Configuration) controller.Options {
	return controller.Options{
		TickRate:           config.Controller.TickRate,
		TempDeadband:       config.Controller.TempDeadband,
		PwmDeadband:        config.Controller.PwmDeadband,
		FailsafeHysteresis: config.Controller.FailsafeHysteresis,
		Inverted:           config.Output.Inverted.Get(),
	}
}

// LoadSettings returns the stored fan settings, or the configured defaults if nothing usable is stored
func LoadSettings(pers persistence.Persistence, defaults configuration.DefaultsConfig) settings.Settings {
	stored, err := pers.LoadSettings()
	if err == nil {
		ui.Info("Loaded stored fan configuration: mode %s, %d curve points", stored.Mode, len(stored.Points))
		return stored
	}
	if errors.Is(err, os.ErrNotExist) {
		ui.Info("No stored fan configuration found, using defaults")
	} else {
		ui.Warning("Unable to load stored fan configuration, using defaults: %v", err)
	}
	return defaults.Settings()
}

// PersistSettings returns a settings.Listener storing every accepted configuration
func PersistSettings(pers persistence.Persistence) settings.Listener {
	return func(previous settings.Settings, current settings.Settings) {
		if err := pers.SaveSettings(current); err != nil {
			ui.Error("Unable to store fan configuration: %v", err)
		}
	}
}

// ReportSettingsChange is a settings.Listener publishing mode and manual duty changes
func ReportSettingsChange(previous settings.Settings, current settings.Settings) {
	if previous.Mode != current.Mode {
		ui.Info("Mode changed: %s -> %s", previous.Mode, current.Mode)
	}
	if current.Mode == settings.ModeManual && (previous.Mode != current.Mode || previous.ManualPwm != current.ManualPwm) {
		ui.Info("Manual duty: %.0f%%", current.ManualPwm)
	}
	if previous.Smoothing != current.Smoothing {
		ui.Debug("Smoothing mode changed: %s -> %s", previous.Smoothing, current.Smoothing)
	}
}
