package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/solidus85/evvie-time-tracker/internal/dto"
	"github.com/solidus85/evvie-time-tracker/internal/service"
	"github.com/solidus85/evvie-time-tracker/pkg/response"
)

// ShiftHandler serves shift CRUD and the dry-run validation probes.
type ShiftHandler struct {
	shiftSvc service.ShiftService
}

func NewShiftHandler(shiftSvc service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftSvc: shiftSvc}
}

// List GET /api/v1/shifts
func (h *ShiftHandler) List(c *gin.Context) {
	var req dto.ShiftListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	shifts, err := h.shiftSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}
	response.OK(c, gin.H{"list": shifts})
}

// Get GET /api/v1/shifts/:id
func (h *ShiftHandler) Get(c *gin.Context) {
	shift, err := h.shiftSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleShiftError(c, err)
		return
	}
	response.OK(c, shift)
}

// Create POST /api/v1/shifts
func (h *ShiftHandler) Create(c *gin.Context) {
	var req dto.CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	shift, warnings, err := h.shiftSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}
	response.CreatedWithWarnings(c, shift, warnings)
}

// Update PUT /api/v1/shifts/:id
func (h *ShiftHandler) Update(c *gin.Context) {
	var req dto.UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	shift, warnings, err := h.shiftSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}
	response.OKWithWarnings(c, shift, warnings)
}

// Delete DELETE /api/v1/shifts/:id
func (h *ShiftHandler) Delete(c *gin.Context) {
	if err := h.shiftSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleShiftError(c, err)
		return
	}
	response.OK(c, nil)
}

// AutoGenerate POST /api/v1/shifts/auto-generate
func (h *ShiftHandler) AutoGenerate(c *gin.Context) {
	var req dto.AutoGenerateShiftsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.shiftSvc.AutoGenerate(c.Request.Context(), &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}
	response.OK(c, result)
}

// Validate POST /api/v1/shifts/validate
func (h *ShiftHandler) Validate(c *gin.Context) {
	var req dto.ValidateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	verdict, err := h.shiftSvc.Validate(c.Request.Context(), &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}
	response.OK(c, verdict)
}

// CheckOverlaps POST /api/v1/shifts/check-overlaps
func (h *ShiftHandler) CheckOverlaps(c *gin.Context) {
	var req dto.ValidateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.shiftSvc.CheckOverlaps(c.Request.Context(), &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}
	response.OK(c, result)
}

// CheckExclusions POST /api/v1/shifts/check-exclusions
func (h *ShiftHandler) CheckExclusions(c *gin.Context) {
	var req dto.ValidateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	matches, err := h.shiftSvc.CheckExclusions(c.Request.Context(), &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}
	response.OK(c, gin.H{"list": matches})
}

// CheckHourLimit POST /api/v1/shifts/check-hour-limit
func (h *ShiftHandler) CheckHourLimit(c *gin.Context) {
	var req dto.ValidateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.shiftSvc.CheckHourLimit(c.Request.Context(), &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *ShiftHandler) handleShiftError(c *gin.Context, err error) {
	if writeConflict(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrShiftNotFound):
		response.NotFound(c, 14001, "shift not found")
	case errors.Is(err, service.ErrShiftImported):
		response.Forbidden(c, 14002, "imported shifts cannot be modified or deleted")
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 12001, "employee not found")
	case errors.Is(err, service.ErrChildNotFound):
		response.NotFound(c, 13001, "child not found")
	default:
		response.InternalError(c)
	}
}
