package api

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/fanforge/fanforge/internal/settings"
	"github.com/labstack/echo/v4"
)

const messageEmptyBody = "empty request body"

// alternative parameter names that may carry the configuration document
var bodyParams = []string{"plain", "payload", "config"}

func registerConfigEndpoints(rest *echo.Echo, store SettingsStore) {
	rest.GET(EndpointConfig, func(c echo.Context) error {
		return c.JSON(http.StatusOK, settings.Render(store.Get()))
	})
	rest.POST(EndpointConfig, func(c echo.Context) error {
		return postConfig(c, store)
	})
	rest.OPTIONS(EndpointConfig, preflight)
}

// validates and applies a new configuration document
func postConfig(c echo.Context, store SettingsStore) error {
	body, err := requestBody(c)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return returnBadRequest(c, messageEmptyBody)
	}

	applied, err := store.Apply(body)
	if err != nil {
		return returnBadRequest(c, err.Error())
	}
	return c.JSON(http.StatusOK, settings.Render(applied))
}

// requestBody returns the configuration document of a request. Form
// encoded requests carry it in one of bodyParams, otherwise the raw body
// is used, falling back to the query parameters.
func requestBody(c echo.Context) ([]byte, error) {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEApplicationForm) || strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		return []byte(firstParam(c.FormValue)), nil
	}

	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) > 0 {
		return raw, nil
	}
	return []byte(firstParam(c.QueryParam)), nil
}

func firstParam(lookup func(name string) string) string {
	for _, name := range bodyParams {
		if value := lookup(name); value != "" {
			return value
		}
	}
	return ""
}
