package model

import (
	"time"

	"gorm.io/datatypes"
)

// Boolean columns deliberately carry no SQL defaults: gorm omits zero-value
// fields that have a default tag, which would turn an explicit false into
// true on insert. Defaults live in the create paths instead.

// Category groups products on the public site
type Category struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"type:varchar(255);not null"`
	Slug        string     `json:"slug" gorm:"type:varchar(255);uniqueIndex;not null"`
	Description string     `json:"description" gorm:"type:text"`
	Image       string     `json:"image" gorm:"type:text"`
	SortOrder   int        `json:"sort_order" gorm:"not null;default:0"`
	IsActive    bool       `json:"is_active" gorm:"not null"`
	IsDeleted   bool       `json:"is_deleted" gorm:"not null;index"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	CreatedBy   *string    `json:"created_by,omitempty" gorm:"type:uuid"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Product represents a catalog item. Images holds at least three URLs;
// a product may reference a soft-deleted category (tolerated dangling state).
type Product struct {
	ID          uint                        `json:"id" gorm:"primaryKey"`
	Name        string                      `json:"name" gorm:"type:varchar(255);not null"`
	Slug        string                      `json:"slug" gorm:"type:varchar(255);uniqueIndex;not null"`
	PartNumber  string                      `json:"part_number" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string                      `json:"description" gorm:"type:text;not null"`
	Price       *string                     `json:"price,omitempty" gorm:"type:varchar(100)"`
	CategoryID  uint                        `json:"category_id" gorm:"index"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	IsActive    bool                        `json:"is_active" gorm:"not null"`
	IsFeatured  bool                        `json:"is_featured" gorm:"not null"`
	IsDeleted   bool                        `json:"is_deleted" gorm:"not null;index"`
	DeletedAt   *time.Time                  `json:"deleted_at,omitempty"`
	CreatedBy   *string                     `json:"created_by,omitempty" gorm:"type:uuid;index"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}
