package repository

import (
	"taskhub/internal/models"
)

// ListOptions holds the ordering applied to a listing query. SortColumn is a
// database column name already validated against the entity's allow-list by
// the caller; empty means no ordering (store-defined result order).
type ListOptions struct {
	SortColumn string
	Desc       bool
}

// TaskFilter holds filtering and ordering options for listing tasks
type TaskFilter struct {
	Status *models.TaskStatus
	Sort   ListOptions
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// CreateWithRole creates a user and attaches an initial role, atomically
	CreateWithRole(user *models.User, roleID uint64) error

	// FindByID finds a user by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByIDs returns the users whose IDs appear in ids
	FindByIDs(ids []uint64) ([]models.User, error)

	// List retrieves users with the given ordering
	List(opts ListOptions) ([]models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// Delete removes a user together with its owned tasks and role edges
	Delete(id uint64) error

	// ReplaceRoles clears the user's role set and installs roleIDs in order
	ReplaceRoles(userID uint64, roleIDs []uint64) error

	// RemoveRoles detaches the given roles from the user
	RemoveRoles(userID uint64, roleIDs []uint64) error
}

// RoleRepository defines the interface for role data access
type RoleRepository interface {
	// Create creates a new role
	Create(role *models.Role) error

	// FindByID finds a role by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Role, error)

	// FindByName finds a role by name
	FindByName(name string) (*models.Role, error)

	// FindByIDs returns the roles whose IDs appear in ids
	FindByIDs(ids []uint64) ([]models.Role, error)

	// List retrieves roles with the given ordering
	List(opts ListOptions) ([]models.Role, error)

	// Update updates a role
	Update(role *models.Role) error

	// Delete removes a role and its user edges; users are untouched
	Delete(id uint64) error

	// ReplaceUsers clears the role's user set and installs userIDs in order
	ReplaceUsers(roleID uint64, userIDs []uint64) error

	// RemoveUsers detaches the given users from the role
	RemoveUsers(roleID uint64, userIDs []uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks matching the filter
	List(filter TaskFilter) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete removes a task permanently
	Delete(id uint64) error
}
