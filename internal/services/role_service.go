package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"taskhub/internal/models"
	"taskhub/internal/repository"
)

// rolePreloads are the association paths loaded before a role is returned.
var rolePreloads = []string{"Users", "Users.User"}

// RoleService handles role business logic, including the role side of the
// user association.
type RoleService struct {
	roleRepo repository.RoleRepository
	userRepo repository.UserRepository
}

// NewRoleService creates a new RoleService
func NewRoleService(roleRepo repository.RoleRepository, userRepo repository.UserRepository) *RoleService {
	return &RoleService{
		roleRepo: roleRepo,
		userRepo: userRepo,
	}
}

// UpdateRoleInput represents a partial role update
type UpdateRoleInput struct {
	Name *string
}

// CreateRole creates a new role with a unique name
func (s *RoleService) CreateRole(name string) (*models.Role, error) {
	if err := s.ensureNameFree(name, 0); err != nil {
		return nil, err
	}

	role := &models.Role{Name: name}
	if err := s.roleRepo.Create(role); err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}

	return s.roleRepo.FindByID(role.ID)
}

// ListRoles returns all roles, optionally ordered by an allow-listed field.
func (s *RoleService) ListRoles(sortBy, order string) ([]models.Role, error) {
	opts, err := resolveSort(roleSortFields, sortBy, order)
	if err != nil {
		return nil, err
	}

	roles, err := s.roleRepo.List(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	return roles, nil
}

// GetRole returns a role with its user set
func (s *RoleService) GetRole(id uint64) (*models.Role, error) {
	role, err := s.roleRepo.FindByID(id, rolePreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newNotFound("role", id)
		}
		return nil, fmt.Errorf("failed to find role: %w", err)
	}

	return role, nil
}

// UpdateRole applies a partial update to a role
func (s *RoleService) UpdateRole(id uint64, input UpdateRoleInput) (*models.Role, error) {
	role, err := s.roleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newNotFound("role", id)
		}
		return nil, fmt.Errorf("failed to find role: %w", err)
	}

	if input.Name != nil && *input.Name != role.Name {
		if err := s.ensureNameFree(*input.Name, id); err != nil {
			return nil, err
		}
		role.Name = *input.Name
	}

	if err := s.roleRepo.Update(role); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	return s.roleRepo.FindByID(id)
}

// ReplaceUsers clears the role's user set and installs userIDs in order.
// Every user must exist; nothing is mutated when any lookup fails.
func (s *RoleService) ReplaceUsers(roleID uint64, userIDs []uint64) (*models.Role, error) {
	if len(userIDs) == 0 {
		return nil, ErrUserIDsEmpty
	}

	if _, err := s.GetRole(roleID); err != nil {
		return nil, err
	}

	ids := uniqueUint64(userIDs)
	if err := s.ensureUsersExist(ids); err != nil {
		return nil, err
	}

	if err := s.roleRepo.ReplaceUsers(roleID, ids); err != nil {
		return nil, fmt.Errorf("failed to replace users: %w", err)
	}

	return s.roleRepo.FindByID(roleID, rolePreloads...)
}

// RemoveUsers detaches the given users from the role. Every user must
// exist; users not currently associated are silent no-ops.
func (s *RoleService) RemoveUsers(roleID uint64, userIDs []uint64) (*models.Role, error) {
	if len(userIDs) == 0 {
		return nil, ErrUserIDsEmpty
	}

	if _, err := s.GetRole(roleID); err != nil {
		return nil, err
	}

	ids := uniqueUint64(userIDs)
	if err := s.ensureUsersExist(ids); err != nil {
		return nil, err
	}

	if err := s.roleRepo.RemoveUsers(roleID, ids); err != nil {
		return nil, fmt.Errorf("failed to remove users: %w", err)
	}

	return s.roleRepo.FindByID(roleID, rolePreloads...)
}

// DeleteRole removes a role and its user edges; users keep existing
func (s *RoleService) DeleteRole(id uint64) error {
	if _, err := s.roleRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newNotFound("role", id)
		}
		return fmt.Errorf("failed to find role: %w", err)
	}

	if err := s.roleRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}

	return nil
}

// ensureUsersExist resolves every id to an existing user before any edge is
// written, so a miss leaves the association set untouched.
func (s *RoleService) ensureUsersExist(userIDs []uint64) error {
	users, err := s.userRepo.FindByIDs(userIDs)
	if err != nil {
		return fmt.Errorf("failed to verify users: %w", err)
	}

	found := make(map[uint64]struct{}, len(users))
	for _, user := range users {
		found[user.ID] = struct{}{}
	}

	for _, id := range userIDs {
		if _, ok := found[id]; !ok {
			return newNotFound("user", id)
		}
	}

	return nil
}

func (s *RoleService) ensureNameFree(name string, selfID uint64) error {
	existing, err := s.roleRepo.FindByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check role name: %w", err)
	}
	if existing.ID != selfID {
		return ErrRoleNameTaken
	}
	return nil
}
