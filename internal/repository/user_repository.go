package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskhub/internal/models"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// CreateWithRole creates a user and its initial role edge in one
// transaction, so a failed attach never leaves a roleless user behind.
func (r *GormUserRepository) CreateWithRole(user *models.User, roleID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		return tx.Create(&models.UserRole{UserID: user.ID, RoleID: roleID}).Error
	})
}

// FindByID finds a user by ID with optional preloading
func (r *GormUserRepository) FindByID(id uint64, preload ...string) (*models.User, error) {
	var user models.User
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&user, id).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDs returns the users whose IDs appear in ids
func (r *GormUserRepository) FindByIDs(ids []uint64) ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// List retrieves users with the given ordering
func (r *GormUserRepository) List(opts ListOptions) ([]models.User, error) {
	var users []models.User

	query := r.db.Model(&models.User{})
	if opts.SortColumn != "" {
		query = query.Order(clause.OrderByColumn{
			Column: clause.Column{Name: opts.SortColumn},
			Desc:   opts.Desc,
		})
	}

	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

// Update updates a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete removes a user together with its owned tasks and role edges in a
// single transaction. Roles themselves are never touched.
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.UserRole{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, id).Error
	})
}

// ReplaceRoles clears the user's role set and installs roleIDs in order
func (r *GormUserRepository) ReplaceRoles(userID uint64, roleIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserRole{}).Error; err != nil {
			return err
		}

		edges := make([]models.UserRole, len(roleIDs))
		for i, roleID := range roleIDs {
			edges[i] = models.UserRole{
				UserID: userID,
				RoleID: roleID,
			}
		}

		return tx.Create(&edges).Error
	})
}

// RemoveRoles detaches the given roles from the user. Edges that do not
// exist are ignored, removal is idempotent.
func (r *GormUserRepository) RemoveRoles(userID uint64, roleIDs []uint64) error {
	return r.db.Where("user_id = ? AND role_id IN ?", userID, roleIDs).
		Delete(&models.UserRole{}).Error
}
