package models

// UserRole is one edge of the many-to-many association between users and
// roles. Rows are created and removed only through the association
// operations, never independently.
type UserRole struct {
	UserID uint64 `gorm:"primarykey" json:"user_id"`
	RoleID uint64 `gorm:"primarykey" json:"role_id"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}
