package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// ContactSubmission is a message from the contact form.
type ContactSubmission struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	Email     string    `gorm:"type:varchar(320);not null" json:"email" validate:"required,email,max=320"`
	Subject   string    `gorm:"type:varchar(255);default:''" json:"subject" validate:"max=255"`
	Message   string    `gorm:"type:text" json:"message" validate:"required,max=8000"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (cs *ContactSubmission) Validate() error {
	v := validator.New()

	return v.Struct(cs)
}
