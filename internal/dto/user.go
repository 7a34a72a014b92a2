package dto

import (
	"taskhub/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64    `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name,omitempty"`
	Roles    []RoleDTO `json:"roles,omitempty"`
}

// UserListResponse represents the user collection in list responses
type UserListResponse struct {
	Users []UserDTO `json:"users"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	dto := UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
	}

	// Include roles if preloaded
	if len(user.Roles) > 0 {
		dto.Roles = make([]RoleDTO, len(user.Roles))
		for i, edge := range user.Roles {
			dto.Roles[i] = ToRoleDTO(edge.Role)
		}
	}

	return dto
}

// ToUserListResponse converts a slice of users to UserListResponse
func ToUserListResponse(users []models.User) UserListResponse {
	items := make([]UserDTO, len(users))
	for i, user := range users {
		items[i] = ToUserDTO(user)
	}
	return UserListResponse{Users: items}
}
