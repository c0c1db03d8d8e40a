package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shapeshed/shapeshed-backend/internal/response"
	"github.com/shapeshed/shapeshed-backend/internal/service"
)

// RootHandler answers the liveness probe.
type RootHandler struct{}

// NewRootHandler creates a new RootHandler.
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// Ping godoc
// GET /
func (h *RootHandler) Ping(c *gin.Context) {
	c.String(http.StatusOK, "Running ShapeShed")
}

// failService maps service errors onto the error envelope.
func failService(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidID):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
	case errors.Is(err, service.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	default:
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
