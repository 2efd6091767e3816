package model

import "time"

// CareerPost is a job opening shown on the careers page
type CareerPost struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"type:varchar(255);not null"`
	Location    string     `json:"location" gorm:"type:varchar(255)"`
	Type        string     `json:"type" gorm:"type:varchar(100)"`
	Description string     `json:"description" gorm:"type:text"`
	IsActive    bool       `json:"is_active" gorm:"not null"`
	IsDeleted   bool       `json:"is_deleted" gorm:"not null;index"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	CreatedBy   *string    `json:"created_by,omitempty" gorm:"type:uuid"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
