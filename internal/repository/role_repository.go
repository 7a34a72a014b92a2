package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskhub/internal/models"
)

// GormRoleRepository is a GORM implementation of RoleRepository
type GormRoleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new RoleRepository
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &GormRoleRepository{db: db}
}

// Create creates a new role
func (r *GormRoleRepository) Create(role *models.Role) error {
	return r.db.Create(role).Error
}

// FindByID finds a role by ID with optional preloading
func (r *GormRoleRepository) FindByID(id uint64, preload ...string) (*models.Role, error) {
	var role models.Role
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&role, id).Error; err != nil {
		return nil, err
	}

	return &role, nil
}

// FindByName finds a role by name
func (r *GormRoleRepository) FindByName(name string) (*models.Role, error) {
	var role models.Role
	if err := r.db.Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// FindByIDs returns the roles whose IDs appear in ids
func (r *GormRoleRepository) FindByIDs(ids []uint64) ([]models.Role, error) {
	var roles []models.Role
	if err := r.db.Where("id IN ?", ids).Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// List retrieves roles with the given ordering
func (r *GormRoleRepository) List(opts ListOptions) ([]models.Role, error) {
	var roles []models.Role

	query := r.db.Model(&models.Role{})
	if opts.SortColumn != "" {
		query = query.Order(clause.OrderByColumn{
			Column: clause.Column{Name: opts.SortColumn},
			Desc:   opts.Desc,
		})
	}

	if err := query.Find(&roles).Error; err != nil {
		return nil, err
	}

	return roles, nil
}

// Update updates a role
func (r *GormRoleRepository) Update(role *models.Role) error {
	return r.db.Save(role).Error
}

// Delete removes a role and its user edges in a single transaction. Users
// holding the role are never deleted.
func (r *GormRoleRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&models.UserRole{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Role{}, id).Error
	})
}

// ReplaceUsers clears the role's user set and installs userIDs in order
func (r *GormRoleRepository) ReplaceUsers(roleID uint64, userIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleID).Delete(&models.UserRole{}).Error; err != nil {
			return err
		}

		edges := make([]models.UserRole, len(userIDs))
		for i, userID := range userIDs {
			edges[i] = models.UserRole{
				UserID: userID,
				RoleID: roleID,
			}
		}

		return tx.Create(&edges).Error
	})
}

// RemoveUsers detaches the given users from the role. Edges that do not
// exist are ignored, removal is idempotent.
func (r *GormRoleRepository) RemoveUsers(roleID uint64, userIDs []uint64) error {
	return r.db.Where("role_id = ? AND user_id IN ?", roleID, userIDs).
		Delete(&models.UserRole{}).Error
}
