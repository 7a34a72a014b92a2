package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskhub/internal/constants"
	"taskhub/internal/models"
	"taskhub/internal/repository"
)

// userPreloads are the association paths loaded before a user is returned.
var userPreloads = []string{"Roles", "Roles.Role"}

// UserService handles user business logic, including the user side of the
// role association.
type UserService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

// CreateUserInput represents input for creating a user
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	FullName string
	RoleID   *uint64
}

// UpdateUserInput represents a partial user update; nil fields are left
// untouched.
type UpdateUserInput struct {
	Username *string
	Email    *string
	FullName *string
}

// CreateUser creates a new user, optionally attaching an initial role.
func (s *UserService) CreateUser(input CreateUserInput) (*models.User, error) {
	if err := validateUsername(input.Username); err != nil {
		return nil, err
	}
	if err := s.ensureUsernameFree(input.Username, 0); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(input.Email, 0); err != nil {
		return nil, err
	}

	if input.RoleID != nil {
		if _, err := s.roleRepo.FindByID(*input.RoleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, newNotFound("role", *input.RoleID)
			}
			return nil, fmt.Errorf("failed to find role: %w", err)
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashedPassword),
		FullName: input.FullName,
	}

	if input.RoleID != nil {
		if err := s.userRepo.CreateWithRole(user, *input.RoleID); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	} else if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.userRepo.FindByID(user.ID, userPreloads...)
}

// ListUsers returns all users, optionally ordered by an allow-listed field.
func (s *UserService) ListUsers(sortBy, order string) ([]models.User, error) {
	opts, err := resolveSort(userSortFields, sortBy, order)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.List(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// GetUser returns a user with its role set
func (s *UserService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id, userPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newNotFound("user", id)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// UpdateUser applies a partial update to a user
func (s *UserService) UpdateUser(id uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newNotFound("user", id)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Username != nil && *input.Username != user.Username {
		if err := validateUsername(*input.Username); err != nil {
			return nil, err
		}
		if err := s.ensureUsernameFree(*input.Username, id); err != nil {
			return nil, err
		}
		user.Username = *input.Username
	}
	if input.Email != nil && *input.Email != user.Email {
		if err := s.ensureEmailFree(*input.Email, id); err != nil {
			return nil, err
		}
		user.Email = *input.Email
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return s.userRepo.FindByID(id, userPreloads...)
}

// ReplaceRoles clears the user's role set and installs roleIDs in order.
// Every role must exist; nothing is mutated when any lookup fails.
func (s *UserService) ReplaceRoles(userID uint64, roleIDs []uint64) (*models.User, error) {
	if len(roleIDs) == 0 {
		return nil, ErrRoleIDsEmpty
	}

	if _, err := s.GetUser(userID); err != nil {
		return nil, err
	}

	ids := uniqueUint64(roleIDs)
	if err := s.ensureRolesExist(ids); err != nil {
		return nil, err
	}

	if err := s.userRepo.ReplaceRoles(userID, ids); err != nil {
		return nil, fmt.Errorf("failed to replace roles: %w", err)
	}

	return s.userRepo.FindByID(userID, userPreloads...)
}

// RemoveRoles detaches the given roles from the user. Every role must
// exist; roles not currently associated are silent no-ops.
func (s *UserService) RemoveRoles(userID uint64, roleIDs []uint64) (*models.User, error) {
	if len(roleIDs) == 0 {
		return nil, ErrRoleIDsEmpty
	}

	if _, err := s.GetUser(userID); err != nil {
		return nil, err
	}

	ids := uniqueUint64(roleIDs)
	if err := s.ensureRolesExist(ids); err != nil {
		return nil, err
	}

	if err := s.userRepo.RemoveRoles(userID, ids); err != nil {
		return nil, fmt.Errorf("failed to remove roles: %w", err)
	}

	return s.userRepo.FindByID(userID, userPreloads...)
}

// DeleteUser removes a user, its owned tasks, and its role edges
func (s *UserService) DeleteUser(id uint64) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newNotFound("user", id)
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.userRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// ensureRolesExist resolves every id to an existing role before any edge is
// written, so a miss leaves the association set untouched.
func (s *UserService) ensureRolesExist(roleIDs []uint64) error {
	roles, err := s.roleRepo.FindByIDs(roleIDs)
	if err != nil {
		return fmt.Errorf("failed to verify roles: %w", err)
	}

	found := make(map[uint64]struct{}, len(roles))
	for _, role := range roles {
		found[role.ID] = struct{}{}
	}

	for _, id := range roleIDs {
		if _, ok := found[id]; !ok {
			return newNotFound("role", id)
		}
	}

	return nil
}

func (s *UserService) ensureUsernameFree(username string, selfID uint64) error {
	existing, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check username: %w", err)
	}
	if existing.ID != selfID {
		return ErrUsernameTaken
	}
	return nil
}

func validateUsername(username string) error {
	if len(username) < constants.MinUsernameLength || len(username) > constants.MaxUsernameLength {
		return ErrUsernameLength
	}
	return nil
}

func (s *UserService) ensureEmailFree(email string, selfID uint64) error {
	existing, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check email: %w", err)
	}
	if existing.ID != selfID {
		return ErrEmailTaken
	}
	return nil
}
