package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shapeshed/shapeshed-backend/internal/model"
	"github.com/shapeshed/shapeshed-backend/internal/response"
	"github.com/shapeshed/shapeshed-backend/internal/service"
	"github.com/shapeshed/shapeshed-backend/internal/validator"
)

// ClassHandler handles class listing, creation and updates.
type ClassHandler struct {
	classService *service.ClassService
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classService *service.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// ListClasses godoc
// GET /classes
func (h *ClassHandler) ListClasses(c *gin.Context) {
	classes, err := h.classService.List(c.Request.Context())
	if err != nil {
		failService(c, err)
		return
	}
	response.Raw(c, http.StatusOK, classes)
}

// CreateClass godoc
// POST /classes
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var class model.Class
	if fields := validator.Bind(c, &class); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	res, err := h.classService.Create(c.Request.Context(), &class)
	if err != nil {
		failService(c, err)
		return
	}
	response.Raw(c, http.StatusOK, res)
}

// SetStatus godoc
// PATCH /classes/:status/:id
func (h *ClassHandler) SetStatus(c *gin.Context) {
	res, err := h.classService.SetStatus(c.Request.Context(), c.Param("id"), c.Param("key"))
	if err != nil {
		failService(c, err)
		return
	}
	response.Raw(c, http.StatusOK, res)
}

// TakeSeat godoc
// PATCH /classes/:id
// Decrements availableSeats by one, even below zero.
func (h *ClassHandler) TakeSeat(c *gin.Context) {
	res, err := h.classService.TakeSeat(c.Request.Context(), c.Param("key"))
	if err != nil {
		failService(c, err)
		return
	}
	response.Raw(c, http.StatusOK, res)
}
