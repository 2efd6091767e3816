package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLog is an append-only record of an administrative action.
// Rows are never updated or deleted.
type AuditLog struct {
	ID           string            `json:"id" gorm:"type:uuid;primaryKey"`
	ActorAdminID *string           `json:"actor_admin_id,omitempty" gorm:"type:uuid;index"`
	Action       string            `json:"action" gorm:"type:varchar(100);not null;index"`
	Meta         datatypes.JSONMap `json:"meta,omitempty"`
	CreatedAt    time.Time         `json:"created_at" gorm:"index"`
}

// BeforeCreate assigns a UUID
func (l *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
