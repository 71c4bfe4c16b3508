package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/solidus85/evvie-time-tracker/internal/dto"
	"github.com/solidus85/evvie-time-tracker/internal/service"
	"github.com/solidus85/evvie-time-tracker/pkg/response"
)

// ConfigHandler serves hour limits and app settings.
type ConfigHandler struct {
	configSvc service.ConfigService
}

func NewConfigHandler(configSvc service.ConfigService) *ConfigHandler {
	return &ConfigHandler{configSvc: configSvc}
}

// ListHourLimits GET /api/v1/config/hour-limits
func (h *ConfigHandler) ListHourLimits(c *gin.Context) {
	var req dto.HourLimitListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	limits, err := h.configSvc.ListHourLimits(c.Request.Context(), &req)
	if err != nil {
		h.handleConfigError(c, err)
		return
	}
	response.OK(c, gin.H{"list": limits})
}

// CreateHourLimit POST /api/v1/config/hour-limits
func (h *ConfigHandler) CreateHourLimit(c *gin.Context) {
	var req dto.CreateHourLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	limit, err := h.configSvc.CreateHourLimit(c.Request.Context(), &req)
	if err != nil {
		h.handleConfigError(c, err)
		return
	}
	response.Created(c, limit)
}

// UpdateHourLimit PUT /api/v1/config/hour-limits/:id
func (h *ConfigHandler) UpdateHourLimit(c *gin.Context) {
	var req dto.UpdateHourLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	limit, err := h.configSvc.UpdateHourLimit(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleConfigError(c, err)
		return
	}
	response.OK(c, limit)
}

// DeactivateHourLimit DELETE /api/v1/config/hour-limits/:id
func (h *ConfigHandler) DeactivateHourLimit(c *gin.Context) {
	if err := h.configSvc.DeactivateHourLimit(c.Request.Context(), c.Param("id")); err != nil {
		h.handleConfigError(c, err)
		return
	}
	response.OK(c, nil)
}

// GetSettings GET /api/v1/config/settings
func (h *ConfigHandler) GetSettings(c *gin.Context) {
	settings, err := h.configSvc.GetSettings(c.Request.Context())
	if err != nil {
		h.handleConfigError(c, err)
		return
	}
	response.OK(c, gin.H{"list": settings})
}

// UpdateSettings PUT /api/v1/config/settings
func (h *ConfigHandler) UpdateSettings(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	if err := h.configSvc.UpdateSettings(c.Request.Context(), &req); err != nil {
		h.handleConfigError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *ConfigHandler) handleConfigError(c *gin.Context, err error) {
	if writeConflict(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrHourLimitNotFound):
		response.NotFound(c, 16001, "hour limit not found")
	case errors.Is(err, service.ErrHourLimitExists):
		response.Conflict(c, 16002, "an hour limit already exists for this employee/child pair")
	case errors.Is(err, service.ErrThresholdTooHigh):
		response.BadRequest(c, 16003, "alert threshold must be below the weekly maximum")
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 12001, "employee not found")
	case errors.Is(err, service.ErrChildNotFound):
		response.NotFound(c, 13001, "child not found")
	default:
		response.InternalError(c)
	}
}
