package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	fiberlog "github.com/gofiber/fiber/v2/log"
)

// CheckoutService starts Pro subscription checkouts. It reuses the user's
// stored processor customer when present, otherwise finds or creates one by
// email and persists the linkage before handing out the session URL.
type CheckoutService struct {
	repo      Repository
	processor PaymentProcessorClient
	priceID   string
}

// NewCheckoutService creates a checkout service for the given Pro price.
func NewCheckoutService(repo Repository, processor PaymentProcessorClient, priceID string) *CheckoutService {
	return &CheckoutService{
		repo:      repo,
		processor: processor,
		priceID:   priceID,
	}
}

// CreateProCheckoutSession creates a subscription-mode checkout session for the
// user and returns its id and redirect URL.
func (s *CheckoutService) CreateProCheckoutSession(ctx context.Context, userID uint, successURL, cancelURL string) (*ProcessorCheckoutSession, error) {
	if strings.TrimSpace(s.priceID) == "" {
		return nil, errors.New("pro price id is not configured")
	}

	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("lookup user %d: %w", userID, err)
	}
	if strings.TrimSpace(user.Email) == "" {
		return nil, errors.New("user email is required for checkout")
	}

	customerID := strings.TrimSpace(user.StripeCustomerID)
	if customerID == "" {
		customerID, err = s.processor.FindCustomerByEmail(ctx, user.Email)
		if err != nil {
			return nil, err
		}
		if customerID == "" {
			customerID, err = s.processor.CreateCustomer(ctx, user.Email)
			if err != nil {
				return nil, err
			}
			fiberlog.Infof("[Checkout] created customer %s for user %d", customerID, user.ID)
		}
		if err := s.repo.SaveUserStripeCustomerID(user.ID, customerID); err != nil {
			return nil, fmt.Errorf("persist customer id for user %d: %w", user.ID, err)
		}
	}

	session, err := s.processor.CreateCheckoutSession(ctx, CheckoutParams{
		CustomerID: customerID,
		PriceID:    s.priceID,
		SuccessURL: successURL,
		CancelURL:  cancelURL,
		UserID:     user.ID,
	})
	if err != nil {
		return nil, err
	}

	fiberlog.Infof("[Checkout] created session %s for user %d", session.ID, user.ID)
	return session, nil
}
