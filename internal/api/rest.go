package api

import (
	"github.com/fanforge/fanforge/internal/controller"
	"github.com/fanforge/fanforge/internal/settings"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	EndpointStatus = "/api/status/"
	EndpointConfig = "/api/config/"

	// request bodies are small configuration documents
	maxBodySize = "16K"
)

type SettingsStore interface {
	Get() settings.Settings
	Apply(body []byte) (settings.Settings, error)
}

type StatusSource interface {
	Snapshot() controller.Snapshot
}

// CreateRestService creates the HTTP API. Request metrics are registered
// on registerer, nil disables them.
func CreateRestService(store SettingsStore, status StatusSource, registerer prometheus.Registerer) *echo.Echo {
	echoRest := echo.New()
	echoRest.HideBanner = true
	echoRest.HidePort = true
	echoRest.HTTPErrorHandler = errorHandler(echoRest)

	// Root level middleware
	echoRest.Pre(middleware.AddTrailingSlash())

	echoRest.Use(middleware.Secure())
	echoRest.Use(middleware.Recover())
	echoRest.Use(middleware.BodyLimit(maxBodySize))
	if registerer != nil {
		echoRest.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "fanforge",
			Subsystem:  "api",
			Registerer: registerer,
		}))
	}
	echoRest.Use(cors)

	registerStatusEndpoints(echoRest, store, status)
	registerConfigEndpoints(echoRest, store)

	return echoRest
}
