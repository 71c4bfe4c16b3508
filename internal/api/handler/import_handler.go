package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/solidus85/evvie-time-tracker/internal/service"
	"github.com/solidus85/evvie-time-tracker/pkg/response"
)

// ImportHandler serves the timesheet CSV upload endpoints. The file arrives
// as multipart form field "file".
type ImportHandler struct {
	importSvc service.ImportService
}

func NewImportHandler(importSvc service.ImportService) *ImportHandler {
	return &ImportHandler{importSvc: importSvc}
}

// ValidateCSV POST /api/v1/import/csv/validate
func (h *ImportHandler) ValidateCSV(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, 17001, "missing file upload")
		return
	}
	defer file.Close()

	result, err := h.importSvc.ValidateCSV(c.Request.Context(), file)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ImportCSV POST /api/v1/import/csv
func (h *ImportHandler) ImportCSV(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, 17001, "missing file upload")
		return
	}
	defer file.Close()

	result, err := h.importSvc.ImportCSV(c.Request.Context(), file)
	if err != nil {
		if writeConflict(c, err) {
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
