package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shapeshed/shapeshed-backend/internal/model"
	"github.com/shapeshed/shapeshed-backend/internal/response"
	"github.com/shapeshed/shapeshed-backend/internal/service"
	"github.com/shapeshed/shapeshed-backend/internal/validator"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const userExistsMessage = "user already exists"

// UserHandler handles user registration and class list updates.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers godoc
// GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		failService(c, err)
		return
	}
	response.Raw(c, http.StatusOK, users)
}

// CreateUser godoc
// POST /users
// Inserts the posted user unless the email is already registered.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var u model.User
	if fields := validator.Bind(c, &u); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	res, err := h.userService.Register(c.Request.Context(), &u)
	switch {
	case errors.Is(err, service.ErrUserExists):
		response.Message(c, http.StatusOK, userExistsMessage)
	case errors.Is(err, service.ErrDuplicateUser):
		response.Message(c, http.StatusConflict, userExistsMessage)
	case err != nil:
		failService(c, err)
	default:
		response.Raw(c, http.StatusOK, res)
	}
}

// PatchUser godoc
// PATCH /users/:classId/:id  and  PATCH /users/:role/:id
// Both routes share one path shape. A first segment that is an ObjectID is a
// class to select; anything else is the new role.
func (h *UserHandler) PatchUser(c *gin.Context) {
	key, userID := c.Param("key"), c.Param("id")

	var (
		res *model.UpdateResult
		err error
	)
	if primitive.IsValidObjectID(key) {
		res, err = h.userService.SelectClass(c.Request.Context(), userID, key)
	} else {
		res, err = h.userService.SetRole(c.Request.Context(), userID, key)
	}
	if err != nil {
		failService(c, err)
		return
	}
	response.Raw(c, http.StatusOK, res)
}

// EnrollClass godoc
// PATCH /users/:classId/:id/enrolled
func (h *UserHandler) EnrollClass(c *gin.Context) {
	res, err := h.userService.EnrollClass(c.Request.Context(), c.Param("id"), c.Param("key"))
	if err != nil {
		failService(c, err)
		return
	}
	response.Raw(c, http.StatusOK, res)
}

// RemoveSelectedClass godoc
// PATCH /users/:classId/:id/remove
func (h *UserHandler) RemoveSelectedClass(c *gin.Context) {
	res, err := h.userService.UnselectClass(c.Request.Context(), c.Param("id"), c.Param("key"))
	if err != nil {
		failService(c, err)
		return
	}
	response.Raw(c, http.StatusOK, res)
}
