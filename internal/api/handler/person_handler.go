package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"eventmaster/internal/dto"
	"eventmaster/internal/service"
	"eventmaster/pkg/response"
)

// PersonHandler serves the congregation member endpoints.
type PersonHandler struct {
	personSvc service.PersonService
}

// NewPersonHandler creates a PersonHandler.
func NewPersonHandler(personSvc service.PersonService) *PersonHandler {
	return &PersonHandler{personSvc: personSvc}
}

// Create registers a person.
// POST /api/v1/persons
func (h *PersonHandler) Create(c *gin.Context) {
	var req dto.CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12002, "invalid request payload")
		return
	}

	callerID, ok := MustGetPersonID(c)
	if !ok {
		return
	}

	person, err := h.personSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.Conflict(c, 12003, "email is already registered")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, person)
}

// Get returns one person.
// GET /api/v1/persons/:id
func (h *PersonHandler) Get(c *gin.Context) {
	person, err := h.personSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, person)
}

// List pages through persons with optional role and keyword filters.
// GET /api/v1/persons
func (h *PersonHandler) List(c *gin.Context) {
	var req dto.PersonListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 12002, "invalid query parameters")
		return
	}

	persons, total, err := h.personSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, persons, total, req.GetPage(), req.GetPageSize())
}

// Update patches a person.
// PUT /api/v1/persons/:id
func (h *PersonHandler) Update(c *gin.Context) {
	var req dto.UpdatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12002, "invalid request payload")
		return
	}

	callerID, ok := MustGetPersonID(c)
	if !ok {
		return
	}

	person, err := h.personSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, person)
}

// Delete removes a person.
// DELETE /api/v1/persons/:id
func (h *PersonHandler) Delete(c *gin.Context) {
	if err := h.personSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	response.NoContent(c)
}

func (h *PersonHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPersonNotFound):
		response.NotFound(c, 12001, "person not found")
	case errors.Is(err, service.ErrEmailTaken):
		response.Conflict(c, 12003, "email is already registered")
	default:
		response.InternalError(c)
	}
}
