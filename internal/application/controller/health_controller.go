package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go-owm/internal/domain/model"
	"go-owm/internal/domain/usecase/health"
)

type HealthController struct {
	api      *echo.Group
	useCase  health.UseCase
	gatherer prometheus.Gatherer
}

// NewHealthController serves /health and, when gatherer is not nil, /metrics.
func NewHealthController(api *echo.Group, useCase health.UseCase, gatherer prometheus.Gatherer) *HealthController {
	return &HealthController{api: api, useCase: useCase, gatherer: gatherer}
}

// InitHealthRoutes initializes health check routes
func (controller *HealthController) InitHealthRoutes() {
	controller.api.GET("/health", controller.CheckHealth())
	if controller.gatherer != nil {
		controller.api.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(controller.gatherer, promhttp.HandlerOpts{})))
	}
}

func (controller *HealthController) CheckHealth() echo.HandlerFunc {
	return func(c echo.Context) error {
		healthResponse := controller.useCase.CheckHealth(c.Request().Context())

		status := http.StatusOK
		if healthResponse.Status == model.StatusDown {
			status = http.StatusServiceUnavailable
		}
		return c.JSON(status, healthResponse)
	}
}
