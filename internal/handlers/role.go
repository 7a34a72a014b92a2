package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhub/internal/dto"
	apierrors "taskhub/internal/errors"
	"taskhub/internal/services"
)

type RoleHandler struct {
	roleService *services.RoleService
}

func NewRoleHandler(roleService *services.RoleService) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
	}
}

// CreateRole creates a new role
func (h *RoleHandler) CreateRole(c *gin.Context) {
	type CreateRoleRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	role, err := h.roleService.CreateRole(req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRoleDTO(*role))
}

// ListRoles returns all roles, sorted when sort_by is given
func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.roleService.ListRoles(c.Query("sort_by"), c.DefaultQuery("order", "asc"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRoleListResponse(roles))
}

// GetRole returns a specific role by ID
func (h *RoleHandler) GetRole(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	role, err := h.roleService.GetRole(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRoleDTO(*role))
}

// UpdateRole applies a partial update to a role
func (h *RoleHandler) UpdateRole(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	type UpdateRoleRequest struct {
		Name *string `json:"name"`
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	role, err := h.roleService.UpdateRole(id, services.UpdateRoleInput{Name: req.Name})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRoleDTO(*role))
}

// ReplaceUsers replaces the role's entire user set
func (h *RoleHandler) ReplaceUsers(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	type ReplaceUsersRequest struct {
		UserIDs []uint64 `json:"user_ids"`
	}

	var req ReplaceUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	role, err := h.roleService.ReplaceUsers(id, req.UserIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRoleDTO(*role))
}

// RemoveUsers detaches the named users from the role
func (h *RoleHandler) RemoveUsers(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	type RemoveUsersRequest struct {
		UserIDs []uint64 `json:"user_ids"`
	}

	var req RemoveUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	role, err := h.roleService.RemoveUsers(id, req.UserIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRoleDTO(*role))
}

// DeleteRole removes a role; users holding it are kept
func (h *RoleHandler) DeleteRole(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.roleService.DeleteRole(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
