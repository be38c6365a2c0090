package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"eventmaster/internal/dto"
	"eventmaster/internal/service"
	"eventmaster/pkg/response"
)

// StaffingHandler serves the occurrence staffing endpoints and the
// staffing audit trail.
type StaffingHandler struct {
	staffingSvc service.StaffingService
}

// NewStaffingHandler creates a StaffingHandler.
func NewStaffingHandler(staffingSvc service.StaffingService) *StaffingHandler {
	return &StaffingHandler{staffingSvc: staffingSvc}
}

// List returns the occurrence's staffing with the computed manual flag.
// GET /api/v1/occurrences/:id/staffing
func (h *StaffingHandler) List(c *gin.Context) {
	assignments, err := h.staffingSvc.ListStaffing(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": assignments})
}

// Add creates a manual assignment on the occurrence, optionally
// auto-filling via the recommender.
// POST /api/v1/occurrences/:id/staffing
func (h *StaffingHandler) Add(c *gin.Context) {
	var req dto.AddAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 17001, "invalid request payload")
		return
	}

	callerID, ok := MustGetPersonID(c)
	if !ok {
		return
	}

	assignment, err := h.staffingSvc.AddOccurrenceAssignment(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Created(c, assignment)
}

// Sync forces a reconciliation pass on the occurrence.
// POST /api/v1/occurrences/:id/staffing/sync
func (h *StaffingHandler) Sync(c *gin.Context) {
	callerID, ok := MustGetPersonID(c)
	if !ok {
		return
	}

	if err := h.staffingSvc.Reconcile(c.Request.Context(), c.Param("id"), callerID); err != nil {
		h.handleError(c, err)
		return
	}

	assignments, err := h.staffingSvc.ListStaffing(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": assignments})
}

// Update rebinds an assignment to another person.
// PUT /api/v1/assignments/:id
func (h *StaffingHandler) Update(c *gin.Context) {
	var req dto.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 17001, "invalid request payload")
		return
	}

	callerID, ok := MustGetPersonID(c)
	if !ok {
		return
	}

	assignment, err := h.staffingSvc.UpdateAssignment(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, assignment)
}

// Delete removes an assignment.
// DELETE /api/v1/assignments/:id
func (h *StaffingHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetPersonID(c)
	if !ok {
		return
	}

	if err := h.staffingSvc.DeleteAssignment(c.Request.Context(), c.Param("id"), callerID); err != nil {
		h.handleError(c, err)
		return
	}

	response.NoContent(c)
}

// ListChangeLogs pages through the occurrence's staffing audit trail.
// GET /api/v1/occurrences/:id/change-logs
func (h *StaffingHandler) ListChangeLogs(c *gin.Context) {
	var req dto.ChangeLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 17001, "invalid query parameters")
		return
	}

	logs, total, err := h.staffingSvc.ListChangeLogs(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OKPage(c, logs, total, req.GetPage(), req.GetPageSize())
}

func (h *StaffingHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOccurrenceNotFound):
		response.NotFound(c, 16002, "occurrence not found")
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 17002, "assignment not found")
	case errors.Is(err, service.ErrAssignmentRoleNeeded):
		response.BadRequest(c, 17003, "assignment requires a service role")
	default:
		response.InternalError(c)
	}
}
