package model

import "time"

// RetailOutlet is a physical store listed on the public site
type RetailOutlet struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name" gorm:"type:varchar(255);not null"`
	Image     string     `json:"image" gorm:"type:text"`
	MapURL    string     `json:"map_url" gorm:"type:text"`
	Phone     string     `json:"phone" gorm:"type:varchar(50)"`
	Hours     string     `json:"hours" gorm:"type:varchar(255)"`
	IsActive  bool       `json:"is_active" gorm:"not null"`
	IsDeleted bool       `json:"is_deleted" gorm:"not null;index"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedBy *string    `json:"created_by,omitempty" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Warehouse is a distribution location listed on the public site
type Warehouse struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name" gorm:"type:varchar(255);not null"`
	Image     string     `json:"image" gorm:"type:text"`
	MapURL    string     `json:"map_url" gorm:"type:text"`
	Phone     string     `json:"phone" gorm:"type:varchar(50)"`
	Hours     string     `json:"hours" gorm:"type:varchar(255)"`
	IsActive  bool       `json:"is_active" gorm:"not null"`
	IsDeleted bool       `json:"is_deleted" gorm:"not null;index"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedBy *string    `json:"created_by,omitempty" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
