package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskforce/taskforce-api/internal/dto"
	apierrors "github.com/taskforce/taskforce-api/internal/errors"
	"github.com/taskforce/taskforce-api/internal/middleware"
	"github.com/taskforce/taskforce-api/internal/services"
)

// UserHandler exposes the administrative user endpoints.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers returns every user, passwordless.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		apierrors.InternalError(c, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserViews(users))
}

// GetUser returns a single user by ID.
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Param("id"))
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserView(*user))
}

// UpdateUser applies a partial update to a user record.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	type UpdateUserRequest struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
		Role  *string `json:"role"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateUser(c.Param("id"), services.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserView(*user))
}

// ToggleActive flips a user's active flag.
func (h *UserHandler) ToggleActive(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	isActive, err := h.userService.ToggleActive(actor.ID, c.Param("id"))
	if err != nil {
		respondUserError(c, err)
		return
	}

	message := "User deactivated"
	if isActive {
		message = "User activated"
	}
	c.JSON(http.StatusOK, gin.H{
		"isActive": isActive,
		"message":  message,
	})
}

// SetRole assigns a new role to a user.
func (h *UserHandler) SetRole(c *gin.Context) {
	type SetRoleRequest struct {
		Role string `json:"role"`
	}

	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.userService.SetRole(c.Param("id"), req.Role); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"role":    req.Role,
		"message": fmt.Sprintf("Role updated to %s", req.Role),
	})
}

// DeleteUser removes a user and every task assigned to them.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.userService.DeleteUser(actor.ID, c.Param("id")); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrNoFieldsToUpdate):
		apierrors.BadRequest(c, "No data to update")
	case errors.Is(err, services.ErrSelfDeactivation):
		apierrors.BadRequest(c, "Cannot deactivate yourself")
	case errors.Is(err, services.ErrSelfDeletion):
		apierrors.BadRequest(c, "Cannot delete yourself")
	case errors.Is(err, services.ErrInvalidRole):
		apierrors.BadRequest(c, "Invalid role")
	default:
		apierrors.InternalError(c, "")
	}
}
