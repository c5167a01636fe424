package models

import "time"

// SubscriptionEvent records a sync transition (who changed, from/to state) for
// operator visibility. Writing it is advisory; sync correctness never depends
// on this table.
type SubscriptionEvent struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"not null;index" json:"user_id"`
	StripeCustomerID string    `gorm:"type:varchar(255);not null;index" json:"stripe_customer_id"`
	FromStatus       string    `gorm:"type:varchar(20);not null" json:"from_status"`
	ToStatus         string    `gorm:"type:varchar(20);not null" json:"to_status"`
	FromRole         string    `gorm:"type:varchar(20);not null" json:"from_role"`
	ToRole           string    `gorm:"type:varchar(20);not null" json:"to_role"`
	CreatedAt        time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
