package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	ROLE_GUEST   = "guest"
	ROLE_FREE    = "free"
	ROLE_PRO     = "pro"
	ROLE_PREMIUM = "premium"
	ROLE_ADMIN   = "admin"
)

const (
	SUB_STATUS_ACTIVE   = "active"
	SUB_STATUS_TRIALING = "trialing"
	SUB_STATUS_PAST_DUE = "past_due"
	SUB_STATUS_CANCELED = "canceled"
	SUB_STATUS_UNPAID   = "unpaid"
	SUB_STATUS_NONE     = "none"
)

const (
	TIER_FREE    = "free"
	TIER_PRO     = "pro"
	TIER_PREMIUM = "premium"
)

// User carries account identity plus the denormalized subscription fields the
// sync engine maintains. Subscription fields are never mutated outside the sync
// engine; role premium/admin are assigned manually and survive syncs untouched
// only until the next processor event arrives for the customer.
type User struct {
	ID                   uint           `gorm:"primaryKey" json:"id"`
	Name                 string         `gorm:"type:varchar(150)" json:"name" validate:"required,min=2,max=150"`
	Email                string         `gorm:"uniqueIndex;type:varchar(320)" json:"email" validate:"required,email,max=320"`
	Password             string         `gorm:"type:text" json:"-"`
	LoginMethod          string         `gorm:"type:varchar(64);default:''" json:"login_method"`
	OpenID               string         `gorm:"type:varchar(191);default:null;uniqueIndex" json:"-"`
	Role                 string         `gorm:"type:varchar(20);not null;default:'guest';index" json:"role" validate:"oneof=guest free pro premium admin"`
	StripeCustomerID     string         `gorm:"type:varchar(255);default:null;uniqueIndex" json:"-"`
	StripeSubscriptionID string         `gorm:"type:varchar(255);default:null" json:"-"`
	SubscriptionStatus   string         `gorm:"type:varchar(20);not null;default:'none'" json:"subscription_status"`
	SubscriptionTier     string         `gorm:"type:varchar(20);not null;default:'free'" json:"subscription_tier"`
	CurrentPeriodEnd     *time.Time     `gorm:"type:timestamp;default:null" json:"current_period_end,omitempty"`
	LastLoginAt          *time.Time     `gorm:"type:timestamp;default:null" json:"last_login_at"`
	CreatedAt            time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == ROLE_ADMIN
}

// CreateUser builds a new account with subscription defaults (none/free).
func CreateUser(name, email, password string) (*User, error) {
	pw, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Name:               name,
		Email:              email,
		Password:           pw,
		Role:               ROLE_FREE,
		SubscriptionStatus: SUB_STATUS_NONE,
		SubscriptionTier:   TIER_FREE,
	}

	if err := u.Validate(); err != nil {
		return nil, err
	}

	return u, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}
