package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"eventmaster/internal/dto"
	"eventmaster/internal/service"
	"eventmaster/pkg/response"
)

// NoticeHandler serves the caller's inbox.
type NoticeHandler struct {
	noticeSvc service.NoticeService
}

// NewNoticeHandler creates a NoticeHandler.
func NewNoticeHandler(noticeSvc service.NoticeService) *NoticeHandler {
	return &NoticeHandler{noticeSvc: noticeSvc}
}

// List pages through the caller's inbox, broadcast notices included.
// GET /api/v1/notices
func (h *NoticeHandler) List(c *gin.Context) {
	var req dto.NoticeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 18001, "invalid query parameters")
		return
	}

	personID, ok := MustGetPersonID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	notices, total, err := h.noticeSvc.ListInbox(c.Request.Context(), personID, role, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OKPage(c, notices, total, req.GetPage(), req.GetPageSize())
}

// UnreadCount returns the caller's unread badge count.
// GET /api/v1/notices/unread-count
func (h *NoticeHandler) UnreadCount(c *gin.Context) {
	personID, ok := MustGetPersonID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	count, err := h.noticeSvc.UnreadCount(c.Request.Context(), personID, role)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, count)
}

// MarkRead marks one of the caller's notices as read.
// PUT /api/v1/notices/:id/read
func (h *NoticeHandler) MarkRead(c *gin.Context) {
	personID, ok := MustGetPersonID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	if err := h.noticeSvc.MarkRead(c.Request.Context(), c.Param("id"), personID, role); err != nil {
		h.handleError(c, err)
		return
	}

	response.NoContent(c)
}

// MarkAllRead marks the caller's whole inbox as read.
// PUT /api/v1/notices/read-all
func (h *NoticeHandler) MarkAllRead(c *gin.Context) {
	personID, ok := MustGetPersonID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	if err := h.noticeSvc.MarkAllRead(c.Request.Context(), personID, role); err != nil {
		h.handleError(c, err)
		return
	}

	response.NoContent(c)
}

func (h *NoticeHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoticeNotFound):
		response.NotFound(c, 18002, "notice not found")
	default:
		response.InternalError(c)
	}
}
