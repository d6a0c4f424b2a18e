package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"go-owm/internal/domain/model"
	"go-owm/internal/domain/usecase/weather"
	"go-owm/pkg/openweather"
)

// StatusFor maps a use case error to the HTTP status returned to callers.
func StatusFor(err error) int {
	var (
		inputErr *openweather.InputError
		apiErr   *openweather.APIError
		parseErr *openweather.ParseError
		connErr  *openweather.ConnectionError
	)

	switch {
	case errors.As(err, &inputErr):
		return http.StatusBadRequest
	case errors.Is(err, weather.ErrQuotaExceeded):
		return http.StatusTooManyRequests
	case errors.As(err, &apiErr):
		if code := int(apiErr.Report.Code); code >= 400 && code <= 599 {
			return code
		}
		return http.StatusBadGateway
	case errors.As(err, &parseErr):
		return http.StatusBadGateway
	case errors.As(err, &connErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c echo.Context, err error) error {
	body := model.ErrorResponse{
		Error:     err.Error(),
		RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
	}

	var apiErr *openweather.APIError
	if errors.As(err, &apiErr) {
		body.Code = int(apiErr.Report.Code)
		body.Message = apiErr.Report.Message
	}

	return c.JSON(StatusFor(err), body)
}
