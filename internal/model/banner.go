package model

import "time"

// Banner is a home-page hero slide
type Banner struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Title     string     `json:"title" gorm:"type:varchar(255)"`
	Subtitle  string     `json:"subtitle" gorm:"type:varchar(255)"`
	Image     string     `json:"image" gorm:"type:text;not null"`
	LinkURL   string     `json:"link_url" gorm:"type:text"`
	SortOrder int        `json:"sort_order" gorm:"not null;default:0"`
	IsActive  bool       `json:"is_active" gorm:"not null"`
	IsDeleted bool       `json:"is_deleted" gorm:"not null;index"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedBy *string    `json:"created_by,omitempty" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
