package models

import "time"

// Product is a service package shown on the marketing site (consultations,
// workshop blocks, on-site production days).
type Product struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Description   string    `gorm:"type:text" json:"description"`
	PriceCents    int       `gorm:"not null;default:0" json:"price_cents"`
	Interval      string    `gorm:"type:varchar(10);not null;default:'month'" json:"interval"`
	StripePriceID string    `gorm:"type:varchar(255);default:''" json:"-"`
	Active        bool      `gorm:"default:true;index" json:"active"`
	DisplayOrder  int       `gorm:"not null;default:0;index" json:"display_order"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
