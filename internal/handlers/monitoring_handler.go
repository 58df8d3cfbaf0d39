package handlers

import (
	"net/http"

	"github.com/gourdmobile/backend/internal/models"
	"github.com/gourdmobile/backend/internal/services"
	"github.com/gourdmobile/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// MonitoringHandler handles pollination monitoring records
type MonitoringHandler struct {
	monitoringService *services.MonitoringService
	log               *logger.Logger
}

func NewMonitoringHandler(monitoringService *services.MonitoringService, log *logger.Logger) *MonitoringHandler {
	return &MonitoringHandler{monitoringService: monitoringService, log: log.With("handler", "monitorings")}
}

func (h *MonitoringHandler) RegisterMonitoringRoutes(g *echo.Group) {
	g.GET("/monitorings", h.GetMonitorings)
	g.GET("/monitorings/user/:userId", h.GetMonitoringsByUser)
	g.POST("/monitorings", h.CreateMonitoring)
	g.PUT("/monitorings/:id", h.UpdateMonitoring)
	g.DELETE("/monitorings/:id", h.DeleteMonitoring)
}

func (h *MonitoringHandler) GetMonitorings(c echo.Context) error {
	records, err := h.monitoringService.List(c.Request().Context())
	if err != nil {
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, records)
}

func (h *MonitoringHandler) GetMonitoringsByUser(c echo.Context) error {
	userID, err := parseUintParam(c, "userId", "user")
	if err != nil {
		return err
	}
	records, err := h.monitoringService.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, records)
}

func (h *MonitoringHandler) CreateMonitoring(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var req models.CreateMonitoringRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	record, err := h.monitoringService.Create(c.Request().Context(), actor, &req)
	if err != nil {
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusCreated, record)
}

func (h *MonitoringHandler) UpdateMonitoring(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var req models.UpdateMonitoringRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	record, err := h.monitoringService.Update(c.Request().Context(), c.Param("id"), actor, &req)
	if err != nil {
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, record)
}

func (h *MonitoringHandler) DeleteMonitoring(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	if err := h.monitoringService.Delete(c.Request().Context(), c.Param("id"), actor); err != nil {
		return httpError(h.log, c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
