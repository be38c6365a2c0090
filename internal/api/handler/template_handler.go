package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"eventmaster/internal/dto"
	"eventmaster/internal/service"
	"eventmaster/pkg/response"
)

// TemplateHandler serves the event template endpoints, including the
// template-scoped run-of-show, default staffing, and task lists.
type TemplateHandler struct {
	templateSvc service.TemplateService
	programSvc  service.ProgramService
	staffingSvc service.StaffingService
}

// NewTemplateHandler creates a TemplateHandler.
func NewTemplateHandler(templateSvc service.TemplateService, programSvc service.ProgramService, staffingSvc service.StaffingService) *TemplateHandler {
	return &TemplateHandler{templateSvc: templateSvc, programSvc: programSvc, staffingSvc: staffingSvc}
}

// ════════════════════════════════════════════════════════════
// Template CRUD
// ════════════════════════════════════════════════════════════

// Create creates a template.
// POST /api/v1/templates
func (h *TemplateHandler) Create(c *gin.Context) {
	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "invalid request payload")
		return
	}

	callerID, ok := MustGetPersonID(c)
	if !ok {
		return
	}

	template, err := h.templateSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, template)
}

// Get returns one template.
// GET /api/v1/templates/:id
func (h *TemplateHandler) Get(c *gin.Context) {
	template, err := h.templateSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, template)
}

// List returns all templates.
// GET /api/v1/templates
func (h *TemplateHandler) List(c *gin.Context) {
	templates, err := h.templateSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": templates})
}

// Update patches a template.
// PUT /api/v1/templates/:id
func (h *TemplateHandler) Update(c *gin.Context) {
	var req dto.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "invalid request payload")
		return
	}

	callerID, ok := MustGetPersonID(c)
	if !ok {
		return
	}

	template, err := h.templateSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, template)
}

// Delete removes a template. Its occurrences survive as standalone
// events.
// DELETE /api/v1/templates/:id
func (h *TemplateHandler) Delete(c *gin.Context) {
	if err := h.templateSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	response.NoContent(c)
}

// ════════════════════════════════════════════════════════════
// Template program, staffing, tasks
// ════════════════════════════════════════════════════════════

// ListProgram returns the template's run-of-show.
// GET /api/v1/templates/:id/program
func (h *TemplateHandler) ListProgram(c *gin.Context) {
	items, err := h.programSvc.ListTemplateProgram(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// AddProgramItem appends a run-of-show segment to the template.
// POST /api/v1/templates/:id/program
func (h *TemplateHandler) AddProgramItem(c *gin.Context) {
	var req dto.CreateProgramItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "invalid request payload")
		return
	}

	callerID, ok := MustGetPersonID(c)
	if !ok {
		return
	}

	item, err := h.programSvc.AddTemplateItem(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Created(c, item)
}

// ReorderProgram rewrites the template's run-of-show order.
// PUT /api/v1/templates/:id/program/order
func (h *TemplateHandler) ReorderProgram(c *gin.Context) {
	var req dto.ReorderProgramItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "invalid request payload")
		return
	}

	callerID, ok := MustGetPersonID(c)
	if !ok {
		return
	}

	items, err := h.programSvc.ReorderTemplateProgram(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// ListStaffing returns the template's default staffing.
// GET /api/v1/templates/:id/staffing
func (h *TemplateHandler) ListStaffing(c *gin.Context) {
	assignments, err := h.staffingSvc.ListTemplateStaffing(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": assignments})
}

// AddAssignment adds a default staffing record to the template.
// POST /api/v1/templates/:id/staffing
func (h *TemplateHandler) AddAssignment(c *gin.Context) {
	var req dto.AddAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "invalid request payload")
		return
	}

	callerID, ok := MustGetPersonID(c)
	if !ok {
		return
	}

	assignment, err := h.staffingSvc.AddTemplateAssignment(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Created(c, assignment)
}

// ListTasks returns the template's task list.
// GET /api/v1/templates/:id/tasks
func (h *TemplateHandler) ListTasks(c *gin.Context) {
	tasks, err := h.programSvc.ListTemplateTasks(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": tasks})
}

// AddTask appends a task to the template.
// POST /api/v1/templates/:id/tasks
func (h *TemplateHandler) AddTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "invalid request payload")
		return
	}

	callerID, ok := MustGetPersonID(c)
	if !ok {
		return
	}

	task, err := h.programSvc.AddTemplateTask(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Created(c, task)
}

func (h *TemplateHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTemplateNotFound):
		response.NotFound(c, 15002, "template not found")
	case errors.Is(err, service.ErrReorderMismatch):
		response.BadRequest(c, 15003, "reorder list does not match the program")
	case errors.Is(err, service.ErrAssignmentRoleNeeded):
		response.BadRequest(c, 17003, "assignment requires a service role")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 15004, "invalid date")
	default:
		response.InternalError(c)
	}
}
