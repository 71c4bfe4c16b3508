package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/solidus85/evvie-time-tracker/internal/service"
	"github.com/solidus85/evvie-time-tracker/pkg/response"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	icsContentType  = "text/calendar"
)

// ExportHandler serves the downloadable snapshots.
type ExportHandler struct {
	exportSvc service.ExportService
}

func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// PeriodSummary GET /api/v1/export/periods/:id/summary.xlsx
func (h *ExportHandler) PeriodSummary(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportPeriodSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExclusionCalendar GET /api/v1/export/exclusions.ics
func (h *ExportHandler) ExclusionCalendar(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportExclusionCalendar(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, icsContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoPeriod):
		response.NotFound(c, 18001, "payroll period not found")
	case errors.Is(err, service.ErrExportNoShifts):
		response.BadRequest(c, 18002, "the period has no shifts to export")
	default:
		response.InternalError(c)
	}
}
