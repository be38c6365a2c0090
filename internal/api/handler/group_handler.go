package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"eventmaster/internal/dto"
	"eventmaster/internal/service"
	"eventmaster/pkg/response"
)

// GroupHandler serves the team endpoints, including membership and the
// role bindings the recommender resolves through.
type GroupHandler struct {
	groupSvc service.GroupService
}

// NewGroupHandler creates a GroupHandler.
func NewGroupHandler(groupSvc service.GroupService) *GroupHandler {
	return &GroupHandler{groupSvc: groupSvc}
}

// Create creates a team.
// POST /api/v1/groups
func (h *GroupHandler) Create(c *gin.Context) {
	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "invalid request payload")
		return
	}

	callerID, ok := MustGetPersonID(c)
	if !ok {
		return
	}

	group, err := h.groupSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, group)
}

// Get returns one team with its members.
// GET /api/v1/groups/:id
func (h *GroupHandler) Get(c *gin.Context) {
	group, err := h.groupSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, group)
}

// List returns all teams.
// GET /api/v1/groups
func (h *GroupHandler) List(c *gin.Context) {
	groups, err := h.groupSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": groups})
}

// Update patches a team.
// PUT /api/v1/groups/:id
func (h *GroupHandler) Update(c *gin.Context) {
	var req dto.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "invalid request payload")
		return
	}

	callerID, ok := MustGetPersonID(c)
	if !ok {
		return
	}

	group, err := h.groupSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, group)
}

// Delete removes a team.
// DELETE /api/v1/groups/:id
func (h *GroupHandler) Delete(c *gin.Context) {
	if err := h.groupSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	response.NoContent(c)
}

// AddMember adds a person to the team.
// POST /api/v1/groups/:id/members
func (h *GroupHandler) AddMember(c *gin.Context) {
	var req dto.AddGroupMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "invalid request payload")
		return
	}

	callerID, ok := MustGetPersonID(c)
	if !ok {
		return
	}

	member, err := h.groupSvc.AddMember(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Created(c, member)
}

// UpdateMember changes a member's team role or position.
// PUT /api/v1/groups/members/:memberId
func (h *GroupHandler) UpdateMember(c *gin.Context) {
	var req dto.UpdateGroupMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "invalid request payload")
		return
	}

	callerID, ok := MustGetPersonID(c)
	if !ok {
		return
	}

	member, err := h.groupSvc.UpdateMember(c.Request.Context(), c.Param("memberId"), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, member)
}

// RemoveMember takes a person off the team.
// DELETE /api/v1/groups/members/:memberId
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	if err := h.groupSvc.RemoveMember(c.Request.Context(), c.Param("memberId")); err != nil {
		h.handleError(c, err)
		return
	}

	response.NoContent(c)
}

// BindRole links a service role to the team.
// POST /api/v1/groups/:id/roles
func (h *GroupHandler) BindRole(c *gin.Context) {
	var req dto.BindRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "invalid request payload")
		return
	}

	callerID, ok := MustGetPersonID(c)
	if !ok {
		return
	}

	if err := h.groupSvc.BindRole(c.Request.Context(), c.Param("id"), &req, callerID); err != nil {
		h.handleError(c, err)
		return
	}

	response.NoContent(c)
}

// UnbindRole removes a role binding from the team.
// DELETE /api/v1/groups/:id/roles/:roleId
func (h *GroupHandler) UnbindRole(c *gin.Context) {
	if err := h.groupSvc.UnbindRole(c.Request.Context(), c.Param("id"), c.Param("roleId")); err != nil {
		h.handleError(c, err)
		return
	}

	response.NoContent(c)
}

func (h *GroupHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGroupNotFound):
		response.NotFound(c, 13002, "group not found")
	case errors.Is(err, service.ErrGroupMemberNotFound):
		response.NotFound(c, 13003, "group member not found")
	case errors.Is(err, service.ErrPersonNotFound):
		response.NotFound(c, 12001, "person not found")
	case errors.Is(err, service.ErrServiceRoleNotFound):
		response.NotFound(c, 14001, "service role not found")
	default:
		response.InternalError(c)
	}
}
