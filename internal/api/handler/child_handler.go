package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/solidus85/evvie-time-tracker/internal/dto"
	"github.com/solidus85/evvie-time-tracker/internal/service"
	"github.com/solidus85/evvie-time-tracker/pkg/response"
)

// ChildHandler serves the client endpoints.
type ChildHandler struct {
	childSvc service.ChildService
}

func NewChildHandler(childSvc service.ChildService) *ChildHandler {
	return &ChildHandler{childSvc: childSvc}
}

// List GET /api/v1/children
func (h *ChildHandler) List(c *gin.Context) {
	var req dto.ChildListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	children, err := h.childSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": children})
}

// Get GET /api/v1/children/:id
func (h *ChildHandler) Get(c *gin.Context) {
	child, err := h.childSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleChildError(c, err)
		return
	}
	response.OK(c, child)
}

// Create POST /api/v1/children
func (h *ChildHandler) Create(c *gin.Context) {
	var req dto.CreateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	child, err := h.childSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleChildError(c, err)
		return
	}
	response.Created(c, child)
}

// Update PUT /api/v1/children/:id
func (h *ChildHandler) Update(c *gin.Context) {
	var req dto.UpdateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	child, err := h.childSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleChildError(c, err)
		return
	}
	response.OK(c, child)
}

// Deactivate DELETE /api/v1/children/:id
func (h *ChildHandler) Deactivate(c *gin.Context) {
	if err := h.childSvc.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		h.handleChildError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *ChildHandler) handleChildError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrChildNotFound):
		response.NotFound(c, 13001, "child not found")
	case errors.Is(err, service.ErrChildCodeTaken):
		response.Conflict(c, 13002, "a child with this code already exists")
	default:
		response.InternalError(c)
	}
}
