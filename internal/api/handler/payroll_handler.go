package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/solidus85/evvie-time-tracker/internal/dto"
	"github.com/solidus85/evvie-time-tracker/internal/service"
	"github.com/solidus85/evvie-time-tracker/pkg/response"
)

// PayrollHandler serves the period, summary, and exclusion endpoints.
type PayrollHandler struct {
	payrollSvc service.PayrollService
}

func NewPayrollHandler(payrollSvc service.PayrollService) *PayrollHandler {
	return &PayrollHandler{payrollSvc: payrollSvc}
}

// ListPeriods GET /api/v1/payroll/periods
func (h *PayrollHandler) ListPeriods(c *gin.Context) {
	periods, err := h.payrollSvc.ListPeriods(c.Request.Context())
	if err != nil {
		h.handlePayrollError(c, err)
		return
	}
	response.OK(c, gin.H{"list": periods})
}

// CurrentPeriod GET /api/v1/payroll/periods/current
func (h *PayrollHandler) CurrentPeriod(c *gin.Context) {
	period, err := h.payrollSvc.GetCurrentPeriod(c.Request.Context())
	if err != nil {
		h.handlePayrollError(c, err)
		return
	}
	response.OK(c, period)
}

// PeriodForDate GET /api/v1/payroll/periods/for-date/:date
func (h *PayrollHandler) PeriodForDate(c *gin.Context) {
	period, err := h.payrollSvc.GetPeriodForDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		h.handlePayrollError(c, err)
		return
	}
	response.OK(c, period)
}

// NavigatePeriod GET /api/v1/payroll/periods/:id/navigate?direction=1
func (h *PayrollHandler) NavigatePeriod(c *gin.Context) {
	var req dto.NavigatePeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "direction must be -1 or 1")
		return
	}

	period, err := h.payrollSvc.NavigatePeriod(c.Request.Context(), c.Param("id"), req.Direction)
	if err != nil {
		h.handlePayrollError(c, err)
		return
	}
	response.OK(c, period)
}

// ConfigurePeriods POST /api/v1/payroll/periods/configure
// Destructive: drops the whole period set and rebuilds it from the anchor.
func (h *PayrollHandler) ConfigurePeriods(c *gin.Context) {
	var req dto.ConfigurePeriodsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	periods, err := h.payrollSvc.ConfigurePeriods(c.Request.Context(), &req)
	if err != nil {
		h.handlePayrollError(c, err)
		return
	}
	response.OK(c, gin.H{"list": periods})
}

// PeriodSummary GET /api/v1/payroll/periods/:id/summary
func (h *PayrollHandler) PeriodSummary(c *gin.Context) {
	summary, err := h.payrollSvc.GetPeriodSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handlePayrollError(c, err)
		return
	}
	response.OK(c, summary)
}

// ListExclusions GET /api/v1/exclusions
func (h *PayrollHandler) ListExclusions(c *gin.Context) {
	var req dto.ExclusionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	exclusions, err := h.payrollSvc.ListExclusions(c.Request.Context(), &req)
	if err != nil {
		h.handlePayrollError(c, err)
		return
	}
	response.OK(c, gin.H{"list": exclusions})
}

// CreateExclusion POST /api/v1/exclusions
func (h *PayrollHandler) CreateExclusion(c *gin.Context) {
	var req dto.CreateExclusionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	exclusion, err := h.payrollSvc.CreateExclusion(c.Request.Context(), &req)
	if err != nil {
		h.handlePayrollError(c, err)
		return
	}
	response.Created(c, exclusion)
}

// DeactivateExclusion DELETE /api/v1/exclusions/:id
func (h *PayrollHandler) DeactivateExclusion(c *gin.Context) {
	if err := h.payrollSvc.DeactivateExclusion(c.Request.Context(), c.Param("id")); err != nil {
		h.handlePayrollError(c, err)
		return
	}
	response.OK(c, nil)
}

// ExpandBulkDates POST /api/v1/exclusions/bulk/expand
func (h *PayrollHandler) ExpandBulkDates(c *gin.Context) {
	var req dto.ExpandBulkDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	dates, err := h.payrollSvc.ExpandBulkDates(c.Request.Context(), &req)
	if err != nil {
		h.handlePayrollError(c, err)
		return
	}
	response.OK(c, gin.H{"list": dates})
}

// CreateBulkExclusions POST /api/v1/exclusions/bulk
func (h *PayrollHandler) CreateBulkExclusions(c *gin.Context) {
	var req dto.CreateBulkExclusionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.payrollSvc.CreateBulkExclusions(c.Request.Context(), &req)
	if err != nil {
		h.handlePayrollError(c, err)
		return
	}
	response.Created(c, result)
}

func (h *PayrollHandler) handlePayrollError(c *gin.Context, err error) {
	if writeConflict(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrPeriodNotFound):
		response.NotFound(c, 15001, "payroll period not found")
	case errors.Is(err, service.ErrExclusionNotFound):
		response.NotFound(c, 15002, "exclusion period not found")
	case errors.Is(err, service.ErrExclusionScope):
		response.BadRequest(c, 15003, "an exclusion may target an employee or a child, not both")
	case errors.Is(err, service.ErrExclusionTimePair):
		response.BadRequest(c, 15004, "start time and end time must be set together")
	case errors.Is(err, service.ErrDateOrder):
		response.BadRequest(c, 15005, "end date must be on or after start date")
	default:
		response.InternalError(c)
	}
}
