package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"eventmaster/internal/dto"
	"eventmaster/internal/service"
	"eventmaster/pkg/response"
)

// OccurrenceHandler serves the event occurrence endpoints, including
// the occurrence-scoped run-of-show and task lists.
type OccurrenceHandler struct {
	occurrenceSvc service.OccurrenceService
	programSvc    service.ProgramService
}

// NewOccurrenceHandler creates an OccurrenceHandler.
func NewOccurrenceHandler(occurrenceSvc service.OccurrenceService, programSvc service.ProgramService) *OccurrenceHandler {
	return &OccurrenceHandler{occurrenceSvc: occurrenceSvc, programSvc: programSvc}
}

// ════════════════════════════════════════════════════════════
// Occurrence CRUD and series creation
// ════════════════════════════════════════════════════════════

// Create creates a single occurrence, seeded from its template when one
// is given.
// POST /api/v1/occurrences
func (h *OccurrenceHandler) Create(c *gin.Context) {
	var req dto.CreateOccurrenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 16001, "invalid request payload")
		return
	}

	callerID, ok := MustGetPersonID(c)
	if !ok {
		return
	}

	occurrence, err := h.occurrenceSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Created(c, occurrence)
}

// CreateSeries expands a template into a recurring series. Dates that
// already carry an occurrence are reported as skipped.
// POST /api/v1/occurrences/series
func (h *OccurrenceHandler) CreateSeries(c *gin.Context) {
	var req dto.CreateSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 16001, "invalid request payload")
		return
	}

	callerID, ok := MustGetPersonID(c)
	if !ok {
		return
	}

	result, err := h.occurrenceSvc.CreateSeries(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Created(c, result)
}

// Get returns one occurrence with its program, staffing, and tasks.
// GET /api/v1/occurrences/:id
func (h *OccurrenceHandler) Get(c *gin.Context) {
	occurrence, err := h.occurrenceSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, occurrence)
}

// List pages occurrences with template, status, and date-range filters.
// GET /api/v1/occurrences
func (h *OccurrenceHandler) List(c *gin.Context) {
	var req dto.OccurrenceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 16001, "invalid query parameters")
		return
	}

	occurrences, total, err := h.occurrenceSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OKPage(c, occurrences, total, req.GetPage(), req.GetPageSize())
}

// Update patches an occurrence, including publishing it.
// PUT /api/v1/occurrences/:id
func (h *OccurrenceHandler) Update(c *gin.Context) {
	var req dto.UpdateOccurrenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 16001, "invalid request payload")
		return
	}

	callerID, ok := MustGetPersonID(c)
	if !ok {
		return
	}

	occurrence, err := h.occurrenceSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, occurrence)
}

// Delete removes an occurrence and everything scoped to it.
// DELETE /api/v1/occurrences/:id
func (h *OccurrenceHandler) Delete(c *gin.Context) {
	if err := h.occurrenceSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	response.NoContent(c)
}

// ════════════════════════════════════════════════════════════
// Occurrence program and tasks
// ════════════════════════════════════════════════════════════

// ListProgram returns the occurrence's run-of-show.
// GET /api/v1/occurrences/:id/program
func (h *OccurrenceHandler) ListProgram(c *gin.Context) {
	items, err := h.programSvc.ListOccurrenceProgram(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// AddProgramItem appends a segment; the roster follows automatically.
// POST /api/v1/occurrences/:id/program
func (h *OccurrenceHandler) AddProgramItem(c *gin.Context) {
	var req dto.CreateProgramItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 16001, "invalid request payload")
		return
	}

	callerID, ok := MustGetPersonID(c)
	if !ok {
		return
	}

	item, err := h.programSvc.AddOccurrenceItem(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Created(c, item)
}

// ReorderProgram rewrites the occurrence's run-of-show order.
// PUT /api/v1/occurrences/:id/program/order
func (h *OccurrenceHandler) ReorderProgram(c *gin.Context) {
	var req dto.ReorderProgramItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 16001, "invalid request payload")
		return
	}

	callerID, ok := MustGetPersonID(c)
	if !ok {
		return
	}

	items, err := h.programSvc.ReorderOccurrenceProgram(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// UpdateProgramItem patches one segment (template- or occurrence-owned).
// PUT /api/v1/program-items/:id
func (h *OccurrenceHandler) UpdateProgramItem(c *gin.Context) {
	var req dto.UpdateProgramItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 16001, "invalid request payload")
		return
	}

	callerID, ok := MustGetPersonID(c)
	if !ok {
		return
	}

	item, err := h.programSvc.UpdateItem(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, item)
}

// DeleteProgramItem removes one segment.
// DELETE /api/v1/program-items/:id
func (h *OccurrenceHandler) DeleteProgramItem(c *gin.Context) {
	callerID, ok := MustGetPersonID(c)
	if !ok {
		return
	}

	if err := h.programSvc.DeleteItem(c.Request.Context(), c.Param("id"), callerID); err != nil {
		h.handleError(c, err)
		return
	}

	response.NoContent(c)
}

// ListTasks returns the occurrence's task list.
// GET /api/v1/occurrences/:id/tasks
func (h *OccurrenceHandler) ListTasks(c *gin.Context) {
	tasks, err := h.programSvc.ListOccurrenceTasks(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": tasks})
}

// AddTask appends a task to the occurrence.
// POST /api/v1/occurrences/:id/tasks
func (h *OccurrenceHandler) AddTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 16001, "invalid request payload")
		return
	}

	callerID, ok := MustGetPersonID(c)
	if !ok {
		return
	}

	task, err := h.programSvc.AddOccurrenceTask(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Created(c, task)
}

// UpdateTask patches one task.
// PUT /api/v1/tasks/:id
func (h *OccurrenceHandler) UpdateTask(c *gin.Context) {
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 16001, "invalid request payload")
		return
	}

	callerID, ok := MustGetPersonID(c)
	if !ok {
		return
	}

	task, err := h.programSvc.UpdateTask(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, task)
}

// DeleteTask removes one task.
// DELETE /api/v1/tasks/:id
func (h *OccurrenceHandler) DeleteTask(c *gin.Context) {
	if err := h.programSvc.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	response.NoContent(c)
}

func (h *OccurrenceHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOccurrenceNotFound):
		response.NotFound(c, 16002, "occurrence not found")
	case errors.Is(err, service.ErrTemplateNotFound):
		response.NotFound(c, 15002, "template not found")
	case errors.Is(err, service.ErrProgramItemNotFound):
		response.NotFound(c, 16003, "program item not found")
	case errors.Is(err, service.ErrTaskNotFound):
		response.NotFound(c, 16004, "task not found")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 16005, "invalid date")
	case errors.Is(err, service.ErrReorderMismatch):
		response.BadRequest(c, 16006, "reorder list does not match the program")
	default:
		response.InternalError(c)
	}
}
