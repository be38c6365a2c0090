package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"eventmaster/internal/service"
	"eventmaster/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves file exports: the staffing spreadsheet and the
// iCalendar feed.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportStaffing streams the occurrence's staffing as an xlsx workbook.
// GET /api/v1/export/occurrences/:id/staffing
func (h *ExportHandler) ExportStaffing(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportStaffing(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// CalendarFeed serves the published occurrences as an iCalendar feed so
// people can subscribe from their calendar app.
// GET /api/v1/calendar.ics
func (h *ExportHandler) CalendarFeed(c *gin.Context) {
	feed, err := h.exportSvc.CalendarFeed(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

func (h *ExportHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOccurrenceNotFound):
		response.NotFound(c, 16002, "occurrence not found")
	case errors.Is(err, service.ErrExportNoStaffing):
		response.BadRequest(c, 19001, "occurrence has no staffing to export")
	default:
		response.InternalError(c)
	}
}
