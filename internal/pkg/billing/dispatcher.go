package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/stripe/stripe-go/v82/webhook"
)

// ErrSignatureVerification marks a webhook delivery whose signature did not
// verify against the configured secret. Nothing may be synced for such events.
var ErrSignatureVerification = errors.New("webhook signature verification failed")

// Dispatcher verifies webhook deliveries, classifies them into typed events and
// forwards them to the sync engine. The payment processor client is injected so
// the checkout-completion path can be exercised with a test double.
type Dispatcher struct {
	secret    string
	processor PaymentProcessorClient
	sync      *Service
}

// NewDispatcher creates a dispatcher for the given webhook signing secret.
func NewDispatcher(secret string, processor PaymentProcessorClient, sync *Service) *Dispatcher {
	return &Dispatcher{
		secret:    secret,
		processor: processor,
		sync:      sync,
	}
}

// checkoutSessionPayload is the minimal shape read from a
// checkout.session.completed event body.
type checkoutSessionPayload struct {
	ID           string `json:"id"`
	Customer     string `json:"customer"`
	Subscription string `json:"subscription"`
}

// subscriptionPayload is the minimal shape read from customer.subscription.*
// event bodies. Newer processor API versions report current_period_end per
// item, so both locations are consulted.
type subscriptionPayload struct {
	ID               string `json:"id"`
	Customer         string `json:"customer"`
	Status           string `json:"status"`
	CurrentPeriodEnd int64  `json:"current_period_end"`
	Items            struct {
		Data []struct {
			CurrentPeriodEnd int64 `json:"current_period_end"`
		} `json:"data"`
	} `json:"items"`
}

func (p *subscriptionPayload) periodEnd() *int64 {
	if p.CurrentPeriodEnd > 0 {
		v := p.CurrentPeriodEnd
		return &v
	}
	for _, item := range p.Items.Data {
		if item.CurrentPeriodEnd > 0 {
			v := item.CurrentPeriodEnd
			return &v
		}
	}
	return nil
}

// VerifyAndClassify checks the delivery signature and maps the event body to
// one of the typed event variants. A nil event with nil error means the event
// type is not one this system processes; the caller should acknowledge it.
func (d *Dispatcher) VerifyAndClassify(payload []byte, sigHeader string) (Event, error) {
	event, err := webhook.ConstructEventWithOptions(payload, sigHeader, d.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignatureVerification, err)
	}

	switch event.Type {
	case "checkout.session.completed":
		var session checkoutSessionPayload
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return nil, fmt.Errorf("decode checkout.session: %w", err)
		}
		return CheckoutSessionCompleted{
			SessionID:      strings.TrimSpace(session.ID),
			CustomerID:     strings.TrimSpace(session.Customer),
			SubscriptionID: strings.TrimSpace(session.Subscription),
		}, nil

	case "customer.subscription.created":
		sub, err := decodeSubscriptionPayload(event.Data.Raw)
		if err != nil {
			return nil, err
		}
		return SubscriptionCreated{
			CustomerID:       sub.Customer,
			SubscriptionID:   sub.ID,
			Status:           sub.Status,
			CurrentPeriodEnd: sub.periodEnd(),
		}, nil

	case "customer.subscription.updated":
		sub, err := decodeSubscriptionPayload(event.Data.Raw)
		if err != nil {
			return nil, err
		}
		return SubscriptionUpdated{
			CustomerID:       sub.Customer,
			SubscriptionID:   sub.ID,
			Status:           sub.Status,
			CurrentPeriodEnd: sub.periodEnd(),
		}, nil

	case "customer.subscription.deleted":
		sub, err := decodeSubscriptionPayload(event.Data.Raw)
		if err != nil {
			return nil, err
		}
		return SubscriptionDeleted{
			CustomerID:     sub.Customer,
			SubscriptionID: sub.ID,
		}, nil

	default:
		fiberlog.Infof("[Stripe Webhook] ignoring unhandled event type %s (id=%s)", event.Type, event.ID)
		return nil, nil
	}
}

func decodeSubscriptionPayload(raw []byte) (*subscriptionPayload, error) {
	var sub subscriptionPayload
	if err := json.Unmarshal(raw, &sub); err != nil {
		return nil, fmt.Errorf("decode subscription: %w", err)
	}
	sub.ID = strings.TrimSpace(sub.ID)
	sub.Customer = strings.TrimSpace(sub.Customer)
	sub.Status = strings.TrimSpace(sub.Status)
	return &sub, nil
}

// Dispatch forwards a classified event to the sync engine. Errors mean the
// delivery should be retried by the processor; a nil return acknowledges it.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) error {
	switch e := ev.(type) {
	case CheckoutSessionCompleted:
		if e.CustomerID == "" {
			fiberlog.Errorf("[Stripe Webhook] checkout session %s has no customer id, skipping sync", e.SessionID)
			return nil
		}
		if e.SubscriptionID == "" {
			fiberlog.Warnf("[Stripe Webhook] checkout session %s has no subscription id", e.SessionID)
			return nil
		}
		// The checkout event omits status and period end; read them back from
		// the processor before syncing.
		sub, err := d.processor.RetrieveSubscription(ctx, e.SubscriptionID)
		if err != nil {
			return fmt.Errorf("retrieve subscription %s: %w", e.SubscriptionID, err)
		}
		return d.sync.SyncSubscriptionStatus(ctx, e.CustomerID, sub.Status, sub.ID, sub.CurrentPeriodEnd)

	case SubscriptionCreated:
		return d.sync.SyncSubscriptionStatus(ctx, e.CustomerID, e.Status, e.SubscriptionID, e.CurrentPeriodEnd)

	case SubscriptionUpdated:
		return d.sync.SyncSubscriptionStatus(ctx, e.CustomerID, e.Status, e.SubscriptionID, e.CurrentPeriodEnd)

	case SubscriptionDeleted:
		return d.sync.SyncSubscriptionStatus(ctx, e.CustomerID, "canceled", e.SubscriptionID, nil)

	case nil:
		return nil

	default:
		return fmt.Errorf("unhandled event variant %T", ev)
	}
}
