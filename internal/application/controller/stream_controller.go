package controller

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"go-owm/internal/application/stream"
	"go-owm/internal/domain/model"
	"go-owm/pkg/log"
)

type StreamController struct {
	api *echo.Group
	hub *stream.Hub
}

func NewStreamController(api *echo.Group, hub *stream.Hub) *StreamController {
	return &StreamController{api: api, hub: hub}
}

func (controller *StreamController) InitStreamRoutes() {
	controller.api.GET("/weather/stream", controller.Stream)
}

// Stream godoc
// @Summary Live current weather
// @Description Websocket of warm-up refreshes, for one city when city (and country) are given
// @Tags weather
// @Router /weather/stream [get]
func (controller *StreamController) Stream(c echo.Context) error {
	match := stream.TopicPrefix(model.CurrentWeatherTopicPrefix)
	if city := c.QueryParam("city"); city != "" {
		match = stream.TopicEquals(model.CurrentWeatherTopic(city, c.QueryParam("country")))
	}

	// The upgrader has already answered the request on failure.
	if err := controller.hub.Serve(c.Response(), c.Request(), match); err != nil {
		log.Debug("Weather stream not opened", zap.Error(err))
	}
	return nil
}
