package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhub/internal/dto"
	apierrors "taskhub/internal/errors"
	"taskhub/internal/services"
)

type UserHandler struct {
	userService *services.UserService
	authService *services.AuthService
}

func NewUserHandler(userService *services.UserService, authService *services.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
	}
}

// CreateUser creates a new user, optionally with an initial role
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Username string  `json:"username" binding:"required,min=5,max=50"`
		Email    string  `json:"email" binding:"required,email"`
		Password string  `json:"password" binding:"required"`
		FullName string  `json:"full_name"`
		RoleID   *uint64 `json:"role_id"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.CreateUser(services.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		RoleID:   req.RoleID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// ListUsers returns all users, sorted when sort_by is given
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Query("sort_by"), c.DefaultQuery("order", "asc"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserListResponse(users))
}

// GetUser returns a specific user by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateUser applies a partial update to a user
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	type UpdateUserRequest struct {
		Username *string        `json:"username" binding:"omitempty,min=5,max=50"`
		Email    *string        `json:"email" binding:"omitempty,email"`
		FullName optionalString `json:"full_name"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateUser(id, services.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName.ptr(),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// ReplaceRoles replaces the user's entire role set
func (h *UserHandler) ReplaceRoles(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	type ReplaceRolesRequest struct {
		RoleIDs []uint64 `json:"role_ids"`
	}

	var req ReplaceRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.ReplaceRoles(id, req.RoleIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// RemoveRoles detaches the named roles from the user
func (h *UserHandler) RemoveRoles(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	type RemoveRolesRequest struct {
		RoleIDs []uint64 `json:"role_ids"`
	}

	var req RemoveRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.RemoveRoles(id, req.RoleIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// ChangePassword replaces the user's password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	type ChangePasswordRequest struct {
		CurrentPassword    string `json:"current_password" binding:"required"`
		NewPassword        string `json:"new_password" binding:"required"`
		ConfirmNewPassword string `json:"confirm_new_password" binding:"required"`
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	err := h.authService.ChangePassword(id, services.ChangePasswordInput{
		CurrentPassword:    req.CurrentPassword,
		NewPassword:        req.NewPassword,
		ConfirmNewPassword: req.ConfirmNewPassword,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteUser removes a user, cascading to its tasks and role edges
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
