package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/fanforge/fanforge/internal/controller"
	"github.com/fanforge/fanforge/internal/settings"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `{
	"mode": "auto",
	"smoothing_mode": "smooth",
	"points": [{"t": 25, "p": 30}, {"t": 40, "p": 60}, {"t": 55, "p": 90}],
	"min_pwm": 20,
	"max_pwm": 95,
	"slew_pct_per_sec": 15,
	"failsafe_temp": 65,
	"failsafe_pwm": 100
}`

type MockStatus struct {
	snapshot controller.Snapshot
}

func (s *MockStatus) Snapshot() controller.Snapshot {
	return s.snapshot
}

func createTestService(snapshot controller.Snapshot) (*echo.Echo, *settings.Store) {
	store := settings.NewStore(settings.Default())
	rest := CreateRestService(store, &MockStatus{snapshot: snapshot}, prometheus.NewRegistry())
	return rest, store
}

func serve(rest *echo.Echo, method string, target string, body string, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	rest.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	var response ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	return response.Error
}

func TestGetStatus(t *testing.T) {
	// GIVEN
	rest, _ := createTestService(controller.Snapshot{
		ControlTemperature: 41.5,
		TemperatureValid:   true,
		Duty:               47,
		TargetDuty:         52,
		OutputLevel:        0.53,
		LastUpdateMillis:   1234,
	})

	// WHEN
	rec := serve(rest, http.MethodGet, "/api/status", "", "")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var status map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, 41.5, status["temp_c"])
	assert.Equal(t, 47.0, status["pwm_pct"])
	assert.Equal(t, 52.0, status["target_pwm_pct"])
	assert.Equal(t, 0.53, status["output_level"])
	assert.Equal(t, "auto", status["mode"])
	assert.Equal(t, "linear", status["smoothing_mode"])
	assert.Equal(t, 1234.0, status["last_update_ms"])
	assert.Equal(t, "*", rec.Header().Get(headerAllowOrigin))
}

func TestGetStatus_InvalidTemperature(t *testing.T) {
	// GIVEN
	rest, _ := createTestService(controller.Snapshot{
		ControlTemperature: 41.5,
		TemperatureValid:   false,
	})

	// WHEN
	rec := serve(rest, http.MethodGet, "/api/status/", "", "")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var status map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	value, ok := status["temp_c"]
	assert.True(t, ok)
	assert.Nil(t, value)
}

func TestGetConfig(t *testing.T) {
	// GIVEN
	rest, _ := createTestService(controller.Snapshot{})

	// WHEN
	rec := serve(rest, http.MethodGet, "/api/config", "", "")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var doc settings.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, settings.Render(settings.Default()), doc)
}

func TestPostConfig_Valid(t *testing.T) {
	// GIVEN
	rest, store := createTestService(controller.Snapshot{})

	// WHEN
	rec := serve(rest, http.MethodPost, "/api/config", validConfig, echo.MIMEApplicationJSON)

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var doc settings.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, settings.SmoothingSmooth, doc.SmoothingMode)
	assert.Len(t, doc.Points, 3)
	assert.Equal(t, 95.0, doc.MaxPwm)

	current := store.Get()
	assert.Equal(t, settings.SmoothingSmooth, current.Smoothing)
	assert.Equal(t, 20.0, current.MinPwm)
	assert.Equal(t, settings.Render(current), doc)
}

func TestPostConfig_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "single point",
			body:     `{"mode":"auto","smoothing_mode":"linear","points":[{"t":30,"p":50}],"min_pwm":0,"max_pwm":100,"slew_pct_per_sec":10,"failsafe_temp":60,"failsafe_pwm":100}`,
			expected: "points must contain at least 2 items",
		},
		{
			name:     "missing mode",
			body:     `{"smoothing_mode":"linear"}`,
			expected: "mode is required",
		},
		{
			name:     "max below min",
			body:     `{"mode":"auto","smoothing_mode":"linear","points":[{"t":30,"p":50},{"t":40,"p":60}],"min_pwm":70,"max_pwm":60,"slew_pct_per_sec":10,"failsafe_temp":60,"failsafe_pwm":100}`,
			expected: "max_pwm must be >= min_pwm",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// GIVEN
			rest, store := createTestService(controller.Snapshot{})
			before := store.Get()

			// WHEN
			rec := serve(rest, http.MethodPost, "/api/config/", tc.body, echo.MIMEApplicationJSON)

			// THEN
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.expected, decodeError(t, rec))
			assert.Equal(t, before, store.Get())
		})
	}
}

func TestPostConfig_EmptyBody(t *testing.T) {
	// GIVEN
	rest, _ := createTestService(controller.Snapshot{})

	// WHEN
	rec := serve(rest, http.MethodPost, "/api/config", "  ", echo.MIMEApplicationJSON)

	// THEN
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "empty request body", decodeError(t, rec))
}

func TestPostConfig_InvalidJson(t *testing.T) {
	// GIVEN
	rest, _ := createTestService(controller.Snapshot{})

	// WHEN
	rec := serve(rest, http.MethodPost, "/api/config", `{"mode": `, echo.MIMEApplicationJSON)

	// THEN
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, strings.HasPrefix(decodeError(t, rec), "invalid JSON: "))
}

func TestPostConfig_AlternativeParameters(t *testing.T) {
	for _, name := range bodyParams {
		t.Run(name, func(t *testing.T) {
			// GIVEN
			rest, store := createTestService(controller.Snapshot{})
			form := url.Values{}
			form.Set(name, validConfig)

			// WHEN
			rec := serve(rest, http.MethodPost, "/api/config", form.Encode(), echo.MIMEApplicationForm)

			// THEN
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, settings.SmoothingSmooth, store.Get().Smoothing)
		})
	}
}

func TestPostConfig_QueryParameter(t *testing.T) {
	// GIVEN
	rest, store := createTestService(controller.Snapshot{})
	query := url.Values{}
	query.Set("payload", validConfig)

	// WHEN
	rec := serve(rest, http.MethodPost, "/api/config?"+query.Encode(), "", "")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 95.0, store.Get().MaxPwm)
}

func TestPreflight(t *testing.T) {
	for _, target := range []string{"/api/status", "/api/config"} {
		t.Run(target, func(t *testing.T) {
			// GIVEN
			rest, _ := createTestService(controller.Snapshot{})

			// WHEN
			rec := serve(rest, http.MethodOptions, target, "", "")

			// THEN
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "Content-Type", rec.Header().Get(headerAllowHeaders))
			assert.Equal(t, "GET,POST,OPTIONS", rec.Header().Get(headerAllowMethods))
			assert.Equal(t, "true", rec.Header().Get(headerAllowPrivateNetwork))
			assert.Equal(t, "600", rec.Header().Get(headerMaxAge))
		})
	}
}

func TestUnknownRoutes(t *testing.T) {
	tests := []struct {
		method string
		target string
	}{
		{method: http.MethodGet, target: "/"},
		{method: http.MethodGet, target: "/api/fans"},
		{method: http.MethodDelete, target: "/api/config"},
		{method: http.MethodPost, target: "/api/status"},
	}
	for _, tc := range tests {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			// GIVEN
			rest, _ := createTestService(controller.Snapshot{})

			// WHEN
			rec := serve(rest, tc.method, tc.target, "", "")

			// THEN
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.JSONEq(t, "{}", rec.Body.String())
		})
	}
}
