package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	headerAllowPrivateNetwork = "Access-Control-Allow-Private-Network"
	headerAllowOrigin         = "Access-Control-Allow-Origin"
	headerAllowHeaders        = "Access-Control-Allow-Headers"
	headerAllowMethods        = "Access-Control-Allow-Methods"
	headerMaxAge              = "Access-Control-Max-Age"

	preflightMaxAge = "600"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// cors adds the CORS headers to every response
func cors(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Response().Header()
		header.Set(headerAllowOrigin, "*")
		header.Set(headerAllowHeaders, echo.HeaderContentType)
		header.Set(headerAllowMethods, "GET,POST,OPTIONS")
		header.Set(headerAllowPrivateNetwork, "true")
		return next(c)
	}
}

// answers a CORS preflight request
func preflight(c echo.Context) error {
	c.Response().Header().Set(headerMaxAge, preflightMaxAge)
	return c.JSON(http.StatusOK, struct{}{})
}

// errorHandler answers unknown routes and methods with an empty object
func errorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		var he *echo.HTTPError
		if errors.As(err, &he) {
			switch he.Code {
			case http.StatusNotFound, http.StatusMethodNotAllowed:
				if c.Request().Method == http.MethodHead {
					err = c.NoContent(http.StatusNotFound)
				} else {
					err = c.JSON(http.StatusNotFound, struct{}{})
				}
				if err != nil {
					e.Logger.Error(err)
				}
				return
			}
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}

// return the error message of a rejected request
func returnBadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, &ErrorResponse{Error: message})
}
