package dto

import (
	"taskhub/internal/models"
)

// RoleDTO represents a role in API responses
type RoleDTO struct {
	ID    uint64    `json:"id"`
	Name  string    `json:"name"`
	Users []UserDTO `json:"users,omitempty"`
}

// RoleListResponse represents the role collection in list responses
type RoleListResponse struct {
	Roles []RoleDTO `json:"roles"`
}

// ToRoleDTO converts a Role model to RoleDTO
func ToRoleDTO(role models.Role) RoleDTO {
	dto := RoleDTO{
		ID:   role.ID,
		Name: role.Name,
	}

	// Include users if preloaded
	if len(role.Users) > 0 {
		dto.Users = make([]UserDTO, len(role.Users))
		for i, edge := range role.Users {
			dto.Users[i] = ToUserDTO(edge.User)
		}
	}

	return dto
}

// ToRoleListResponse converts a slice of roles to RoleListResponse
func ToRoleListResponse(roles []models.Role) RoleListResponse {
	items := make([]RoleDTO, len(roles))
	for i, role := range roles {
		items[i] = ToRoleDTO(role)
	}
	return RoleListResponse{Roles: items}
}
