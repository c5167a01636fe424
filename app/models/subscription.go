package models

import "time"

// Subscription is the normalized per-user subscription row, kept alongside the
// denormalized user fields for audit and reporting. The unique user_id index
// enforces at most one row per user; rows are created on first sync and updated
// in place afterwards, never deleted (cancellation is a status transition).
type Subscription struct {
	ID                   uint       `gorm:"primaryKey" json:"id"`
	UserID               uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	Tier                 string     `gorm:"type:varchar(20);not null;default:'free'" json:"tier"`
	Status               string     `gorm:"type:varchar(20);not null;default:'none';index" json:"status"`
	StripeSubscriptionID string     `gorm:"type:varchar(255);default:null" json:"stripe_subscription_id"`
	StripeCustomerID     string     `gorm:"type:varchar(255);default:null;index" json:"stripe_customer_id"`
	CurrentPeriodStart   *time.Time `gorm:"type:timestamp;default:null" json:"current_period_start,omitempty"`
	CurrentPeriodEnd     *time.Time `gorm:"type:timestamp;default:null" json:"current_period_end,omitempty"`
	CreatedAt            time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
