package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"eventmaster/internal/dto"
	"eventmaster/internal/service"
	"eventmaster/pkg/response"
)

// AttendanceHandler serves attendance request responses and listings.
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler creates an AttendanceHandler.
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// Respond accepts or declines the caller's pending attendance request
// for one of the occurrence's roles.
// POST /api/v1/occurrences/:id/roles/:roleId/attendance
func (h *AttendanceHandler) Respond(c *gin.Context) {
	var req dto.RespondAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 18003, "invalid request payload")
		return
	}

	personID, ok := MustGetPersonID(c)
	if !ok {
		return
	}

	record, err := h.attendanceSvc.Respond(c.Request.Context(), c.Param("id"), c.Param("roleId"), personID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, record)
}

// ListByOccurrence returns every attendance record for an occurrence.
// GET /api/v1/occurrences/:id/attendance
func (h *AttendanceHandler) ListByOccurrence(c *gin.Context) {
	records, err := h.attendanceSvc.ListByOccurrence(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": records})
}

// ListMine returns the caller's own attendance records.
// GET /api/v1/attendance/mine
func (h *AttendanceHandler) ListMine(c *gin.Context) {
	personID, ok := MustGetPersonID(c)
	if !ok {
		return
	}

	records, err := h.attendanceSvc.ListMine(c.Request.Context(), personID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": records})
}

func (h *AttendanceHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAttendanceNotFound):
		response.NotFound(c, 18004, "attendance request not found")
	case errors.Is(err, service.ErrAttendanceNotOpen):
		response.Conflict(c, 18005, "attendance request is not awaiting a response")
	default:
		response.InternalError(c)
	}
}
