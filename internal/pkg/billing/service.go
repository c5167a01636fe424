package billing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/StageCraftMedia/StageCraft/app/models"
	"github.com/StageCraftMedia/StageCraft/internal/pkg/entitlements"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

// Service reconciles payment-processor subscription events into the local user
// and subscription records, and answers entitlement queries for the portal.
type Service struct {
	repo Repository
}

// NewService creates a billing service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewServiceFromDB creates a billing service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// SyncSubscriptionStatus applies one external subscription status to the local
// records. The transition is memoryless: the new internal state depends only on
// the incoming status, never on the prior one, which makes the operation
// idempotent and safe under duplicate or out-of-order delivery.
//
// An unknown customer is not an error: the event may be stale, test data, or
// racing account linkage, and retrying it would never succeed. A warning is
// logged and no rows are touched. Persistence failures propagate so the
// webhook delivery can be retried.
//
// periodEnd is epoch seconds; nil clears the stored renewal date. Cancellation
// events typically omit it, and clearing the date then is the intended
// fail-safe, not data loss.
func (s *Service) SyncSubscriptionStatus(ctx context.Context, customerID, status, subscriptionID string, periodEnd *int64) error {
	_ = ctx
	customerID = strings.TrimSpace(customerID)
	status = strings.ToLower(strings.TrimSpace(status))
	subscriptionID = strings.TrimSpace(subscriptionID)

	user, err := s.repo.FindUserByCustomerID(customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fiberlog.Warnf("[Stripe Webhook] no user found for customer %s", customerID)
			return nil
		}
		return err
	}

	newRole, newTier := entitlements.DeriveRoleAndTier(status)

	// Keep the stored subscription id when the event omits one, and write the
	// resolved value to both rows so they stay equal after the sync.
	resolvedSubID := subscriptionID
	if resolvedSubID == "" {
		resolvedSubID = user.StripeSubscriptionID
	}

	var periodEndAt *time.Time
	if periodEnd != nil {
		t := time.Unix(*periodEnd, 0)
		periodEndAt = &t
	}

	err = s.repo.Transaction(func(r Repository) error {
		if err := r.UpdateUserSubscriptionFields(user.ID, UserSubscriptionFields{
			Role:                 string(newRole),
			Status:               status,
			Tier:                 string(newTier),
			StripeSubscriptionID: resolvedSubID,
			CurrentPeriodEnd:     periodEndAt,
		}); err != nil {
			return err
		}

		return r.UpsertSubscriptionRecord(&models.Subscription{
			UserID:               user.ID,
			Tier:                 string(newTier),
			Status:               status,
			StripeSubscriptionID: resolvedSubID,
			StripeCustomerID:     customerID,
			CurrentPeriodEnd:     periodEndAt,
		})
	})
	if err != nil {
		return err
	}

	fiberlog.Infof("[Stripe Webhook] synced user %d: role=%s status=%s subId=%s", user.ID, newRole, status, resolvedSubID)

	// Audit record is advisory; a failure here must not fail the sync.
	if auditErr := s.repo.CreateSubscriptionEvent(&models.SubscriptionEvent{
		UserID:           user.ID,
		StripeCustomerID: customerID,
		FromStatus:       user.SubscriptionStatus,
		ToStatus:         status,
		FromRole:         user.Role,
		ToRole:           string(newRole),
	}); auditErr != nil {
		fiberlog.Warnf("[Stripe Webhook] failed to record subscription event for user %d: %v", user.ID, auditErr)
	}

	return nil
}

// UserEntitlement is the read-only subscription view consumed by the portal
// and resource gating.
type UserEntitlement struct {
	Status           string     `json:"status"`
	Tier             string     `json:"tier"`
	Role             string     `json:"role"`
	DisplayTier      string     `json:"display_tier"`
	HasProAccess     bool       `json:"has_pro_access"`
	CurrentPeriodEnd *time.Time `json:"current_period_end,omitempty"`
}

// Entitlement returns the persisted subscription state for a user.
func (s *Service) Entitlement(ctx context.Context, userID uint) (*UserEntitlement, error) {
	_ = ctx
	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		return nil, err
	}

	return &UserEntitlement{
		Status:           user.SubscriptionStatus,
		Tier:             user.SubscriptionTier,
		Role:             user.Role,
		DisplayTier:      entitlements.DisplayTier(user.Role),
		HasProAccess:     entitlements.HasProAccess(user.SubscriptionStatus),
		CurrentPeriodEnd: user.CurrentPeriodEnd,
	}, nil
}
