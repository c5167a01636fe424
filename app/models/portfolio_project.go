package models

import "time"

// PortfolioProject is a past production showcased on the marketing site.
type PortfolioProject struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	ImageURL     string    `gorm:"type:varchar(512);default:''" json:"image_url"`
	Featured     bool      `gorm:"default:false;index" json:"featured"`
	DisplayOrder int       `gorm:"not null;default:0;index" json:"display_order"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
