package model

import "time"

// ContactMessage is a submission from the public contact form.
// Visibility is admin-only, so there is no is_active flag.
type ContactMessage struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name" gorm:"type:varchar(255);not null"`
	Email     string     `json:"email" gorm:"type:varchar(255);not null"`
	Subject   string     `json:"subject" gorm:"type:varchar(255);not null"`
	Message   string     `json:"message" gorm:"type:text;not null"`
	IsRead    bool       `json:"is_read" gorm:"not null"`
	IsDeleted bool       `json:"is_deleted" gorm:"not null;index"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
