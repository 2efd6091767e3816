package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminRole is the back-office trust level of an admin account
type AdminRole string

const (
	RoleSuperAdmin AdminRole = "SUPER_ADMIN"
	RoleAdmin      AdminRole = "ADMIN"
)

// Admin represents a back-office operator. Admin rows are never physically
// deleted; deactivation flips Active instead.
type Admin struct {
	ID          string     `json:"id" gorm:"type:uuid;primaryKey"`
	Email       string     `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Role        AdminRole  `json:"role" gorm:"type:varchar(20);not null;default:'ADMIN'"`
	PinHash     string     `json:"-" gorm:"type:varchar(255);not null"`
	Active      bool       `json:"active" gorm:"not null"`
	CreatedBy   *string    `json:"created_by,omitempty" gorm:"type:uuid"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// BeforeCreate assigns a UUID and normalizes the email to lowercase
func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.Email = strings.ToLower(a.Email)
	return nil
}

// IsSuperAdmin reports whether the admin holds the elevated role
func (a *Admin) IsSuperAdmin() bool {
	return a.Role == RoleSuperAdmin
}
