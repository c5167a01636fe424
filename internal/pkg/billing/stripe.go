package billing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/StageCraftMedia/StageCraft/internal/pkg/env"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// StripeClient is the Stripe-backed PaymentProcessorClient. It wraps an
// explicitly constructed API client; nothing here touches the SDK's global key.
type StripeClient struct {
	api *client.API
}

// NewStripeClient creates a Stripe client for the given secret key.
func NewStripeClient(secretKey string) (*StripeClient, error) {
	key := strings.TrimSpace(secretKey)
	if key == "" {
		return nil, errors.New("stripe secret key is required")
	}
	api := &client.API{}
	api.Init(key, nil)
	return &StripeClient{api: api}, nil
}

// NewStripeClientFromEnv creates a Stripe client from STRIPE_SECRET_KEY.
func NewStripeClientFromEnv() (*StripeClient, error) {
	return NewStripeClient(env.GetEnv("STRIPE_SECRET_KEY", ""))
}

func (c *StripeClient) RetrieveSubscription(ctx context.Context, subscriptionID string) (*ProcessorSubscription, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx

	sub, err := c.api.Subscriptions.Get(subscriptionID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe subscription retrieve: %w", err)
	}

	out := &ProcessorSubscription{
		ID:     sub.ID,
		Status: string(sub.Status),
	}
	if sub.Customer != nil {
		out.CustomerID = sub.Customer.ID
	}
	// current_period_end lives on the subscription items in the API version
	// this SDK tracks.
	if sub.Items != nil {
		for _, item := range sub.Items.Data {
			if item != nil && item.CurrentPeriodEnd > 0 {
				v := item.CurrentPeriodEnd
				out.CurrentPeriodEnd = &v
				break
			}
		}
	}
	return out, nil
}

// FindCustomerByEmail returns the first customer with the given email, or ""
// when none exists.
func (c *StripeClient) FindCustomerByEmail(ctx context.Context, email string) (string, error) {
	params := &stripe.CustomerListParams{}
	params.Context = ctx
	params.Email = stripe.String(email)
	params.Limit = stripe.Int64(1)

	iter := c.api.Customers.List(params)
	for iter.Next() {
		return iter.Customer().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", fmt.Errorf("stripe customer list: %w", err)
	}
	return "", nil
}

func (c *StripeClient) CreateCustomer(ctx context.Context, email string) (string, error) {
	params := &stripe.CustomerParams{Email: stripe.String(email)}
	params.Context = ctx

	customer, err := c.api.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe customer create: %w", err)
	}
	return customer.ID, nil
}

func (c *StripeClient) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*ProcessorCheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(p.CustomerID),
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(p.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{
				"userId": strconv.FormatUint(uint64(p.UserID), 10),
			},
		},
	}
	params.Context = ctx

	session, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session create: %w", err)
	}
	if session.URL == "" {
		return nil, errors.New("stripe checkout session has no url")
	}
	return &ProcessorCheckoutSession{ID: session.ID, URL: session.URL}, nil
}
