package model

import (
	"time"

	"gorm.io/gorm"
)

// Session is a server-side login session keyed by the opaque cookie token.
// Role and email are snapshots taken at login time.
type Session struct {
	Token     string    `json:"-" gorm:"type:varchar(64);primaryKey"`
	AdminID   string    `json:"admin_id" gorm:"type:uuid;index;not null"`
	Email     string    `json:"email" gorm:"type:varchar(255);not null"`
	Role      AdminRole `json:"role" gorm:"type:varchar(20);not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns an opaque random token
func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.Token == "" {
		s.Token = generateSecureToken()
	}
	return nil
}

// IsExpired checks if the session has passed its TTL
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsSuperAdmin reports whether the session was issued to a super admin
func (s *Session) IsSuperAdmin() bool {
	return s.Role == RoleSuperAdmin
}
