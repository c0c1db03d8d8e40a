package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shapeshed/shapeshed-backend/internal/response"
	"github.com/shapeshed/shapeshed-backend/internal/service"
)

// InstructorHandler handles read-only instructor endpoints.
type InstructorHandler struct {
	instructorService *service.InstructorService
}

// NewInstructorHandler creates a new InstructorHandler.
func NewInstructorHandler(instructorService *service.InstructorService) *InstructorHandler {
	return &InstructorHandler{instructorService: instructorService}
}

// ListInstructors godoc
// GET /instructors
func (h *InstructorHandler) ListInstructors(c *gin.Context) {
	instructors, err := h.instructorService.List(c.Request.Context())
	if err != nil {
		failService(c, err)
		return
	}
	response.Raw(c, http.StatusOK, instructors)
}

// GetInstructor godoc
// GET /instructors/:id
// Returns the instructor with its class names resolved to class documents.
func (h *InstructorHandler) GetInstructor(c *gin.Context) {
	detail, err := h.instructorService.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		failService(c, err)
		return
	}
	response.Raw(c, http.StatusOK, detail)
}
