package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	SERVICE_TYPE_CONSULTATION = "consultation"
	SERVICE_TYPE_WORKSHOP     = "workshop"
	SERVICE_TYPE_ON_SITE      = "on_site"
)

const (
	BOOKING_STATUS_PENDING   = "pending"
	BOOKING_STATUS_CONFIRMED = "confirmed"
	BOOKING_STATUS_DECLINED  = "declined"
)

// ServiceTypes lists the bookable service types in display order.
func ServiceTypes() []string {
	return []string{SERVICE_TYPE_CONSULTATION, SERVICE_TYPE_WORKSHOP, SERVICE_TYPE_ON_SITE}
}

// Booking is a service request submitted through the booking form.
type Booking struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Reference   string     `gorm:"type:char(36);not null;uniqueIndex" json:"reference"`
	Name        string     `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	Email       string     `gorm:"type:varchar(320);not null" json:"email" validate:"required,email,max=320"`
	Phone       string     `gorm:"type:varchar(32);default:''" json:"phone" validate:"max=32"`
	ServiceType string     `gorm:"type:varchar(20);not null;index" json:"service_type" validate:"oneof=consultation workshop on_site"`
	Description string     `gorm:"type:text" json:"description" validate:"max=4000"`
	EventDate   *time.Time `gorm:"type:timestamp;default:null" json:"event_date,omitempty"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (b *Booking) Validate() error {
	v := validator.New()

	return v.Struct(b)
}

// NewBooking builds a pending booking with a fresh reference code.
func NewBooking(name, email, phone, serviceType, description string, eventDate *time.Time) (*Booking, error) {
	b := &Booking{
		Reference:   uuid.NewString(),
		Name:        name,
		Email:       email,
		Phone:       phone,
		ServiceType: serviceType,
		Description: description,
		EventDate:   eventDate,
		Status:      BOOKING_STATUS_PENDING,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}
