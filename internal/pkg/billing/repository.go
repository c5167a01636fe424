package billing

import (
	"time"

	"github.com/StageCraftMedia/StageCraft/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserSubscriptionFields is the set of user columns the sync engine owns. The
// whole set is written in one statement so a user row can never carry a
// half-applied sync.
type UserSubscriptionFields struct {
	Role                 string
	Status               string
	Tier                 string
	StripeSubscriptionID string
	CurrentPeriodEnd     *time.Time
}

// Repository provides DB operations used by the billing service.
type Repository interface {
	FindUserByCustomerID(customerID string) (*models.User, error)
	FindUserByID(userID uint) (*models.User, error)
	FindSubscriptionByUserID(userID uint) (*models.Subscription, error)
	UpdateUserSubscriptionFields(userID uint, fields UserSubscriptionFields) error
	UpsertSubscriptionRecord(sub *models.Subscription) error
	SaveUserStripeCustomerID(userID uint, customerID string) error
	CreateSubscriptionEvent(event *models.SubscriptionEvent) error
	// Transaction runs fn against a repository bound to one DB transaction;
	// everything fn writes either commits together or rolls back together.
	Transaction(fn func(Repository) error) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a billing repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindUserByCustomerID(customerID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("stripe_customer_id = ?", customerID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormRepository) FindUserByID(userID uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormRepository) FindSubscriptionByUserID(userID uint) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.Where("user_id = ?", userID).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *gormRepository) UpdateUserSubscriptionFields(userID uint, fields UserSubscriptionFields) error {
	// Map form so nil period end clears the column instead of being skipped.
	updates := map[string]interface{}{
		"role":                   fields.Role,
		"subscription_status":    fields.Status,
		"subscription_tier":      fields.Tier,
		"stripe_subscription_id": fields.StripeSubscriptionID,
		"current_period_end":     fields.CurrentPeriodEnd,
		"updated_at":             time.Now(),
	}
	return r.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
}

func (r *gormRepository) UpsertSubscriptionRecord(sub *models.Subscription) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"tier",
			"status",
			"stripe_subscription_id",
			"stripe_customer_id",
			"current_period_end",
			"updated_at",
		}),
	}).Create(sub).Error; err != nil {
		return err
	}

	// Hand the stored row back to the caller, ID included.
	stored, err := r.FindSubscriptionByUserID(sub.UserID)
	if err != nil {
		return err
	}
	*sub = *stored
	return nil
}

func (r *gormRepository) SaveUserStripeCustomerID(userID uint, customerID string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("stripe_customer_id", customerID).Error
}

func (r *gormRepository) CreateSubscriptionEvent(event *models.SubscriptionEvent) error {
	return r.db.Create(event).Error
}

func (r *gormRepository) Transaction(fn func(Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}
