package handler

import (
	"github.com/gin-gonic/gin"

	"eventmaster/pkg/response"
)

// MustGetPersonID extracts the authenticated person id from the context.
// When the auth middleware did not run, it writes a 401 and returns
// false; callers should return immediately in that case.
func MustGetPersonID(c *gin.Context) (string, bool) {
	v, exists := c.Get("person_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetRole extracts the authenticated role from the context.
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}
