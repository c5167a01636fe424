package models

import "time"

// Testimonial is a client quote shown on the marketing site.
type Testimonial struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Author    string    `gorm:"type:varchar(150);not null" json:"author"`
	Company   string    `gorm:"type:varchar(150);default:''" json:"company"`
	Quote     string    `gorm:"type:text;not null" json:"quote"`
	Featured  bool      `gorm:"default:false;index" json:"featured"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
