package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"eventmaster/internal/dto"
	"eventmaster/internal/service"
	"eventmaster/pkg/response"
)

// ServiceRoleHandler serves the service role endpoints.
type ServiceRoleHandler struct {
	roleSvc service.ServiceRoleService
}

// NewServiceRoleHandler creates a ServiceRoleHandler.
func NewServiceRoleHandler(roleSvc service.ServiceRoleService) *ServiceRoleHandler {
	return &ServiceRoleHandler{roleSvc: roleSvc}
}

// Create creates a service role.
// POST /api/v1/service-roles
func (h *ServiceRoleHandler) Create(c *gin.Context) {
	var req dto.CreateServiceRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14002, "invalid request payload")
		return
	}

	callerID, ok := MustGetPersonID(c)
	if !ok {
		return
	}

	role, err := h.roleSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, role)
}

// Get returns one service role.
// GET /api/v1/service-roles/:id
func (h *ServiceRoleHandler) Get(c *gin.Context) {
	role, err := h.roleSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, role)
}

// List returns all service roles.
// GET /api/v1/service-roles
func (h *ServiceRoleHandler) List(c *gin.Context) {
	roles, err := h.roleSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": roles})
}

// Update patches a service role.
// PUT /api/v1/service-roles/:id
func (h *ServiceRoleHandler) Update(c *gin.Context) {
	var req dto.UpdateServiceRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14002, "invalid request payload")
		return
	}

	callerID, ok := MustGetPersonID(c)
	if !ok {
		return
	}

	role, err := h.roleSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, role)
}

// Delete removes a service role.
// DELETE /api/v1/service-roles/:id
func (h *ServiceRoleHandler) Delete(c *gin.Context) {
	if err := h.roleSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	response.NoContent(c)
}

// Recommend resolves the default person for the role.
// GET /api/v1/service-roles/:id/recommendation
func (h *ServiceRoleHandler) Recommend(c *gin.Context) {
	recommendation, err := h.roleSvc.Recommend(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, recommendation)
}

func (h *ServiceRoleHandler) handleError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrServiceRoleNotFound) {
		response.NotFound(c, 14001, "service role not found")
		return
	}
	response.InternalError(c)
}
