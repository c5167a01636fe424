package billing

import "context"

// Event is one of the verified, classified webhook event variants. The
// dispatcher produces exactly one variant per accepted delivery and Dispatch
// consumes them exhaustively.
type Event interface {
	EventName() string
}

// CheckoutSessionCompleted carries the fields of a checkout.session.completed
// event. The event itself omits status and period end, so the dispatcher must
// retrieve the subscription from the processor before syncing.
type CheckoutSessionCompleted struct {
	SessionID      string
	CustomerID     string
	SubscriptionID string
}

// SubscriptionCreated carries a customer.subscription.created event.
type SubscriptionCreated struct {
	CustomerID       string
	SubscriptionID   string
	Status           string
	CurrentPeriodEnd *int64
}

// SubscriptionUpdated carries a customer.subscription.updated event.
type SubscriptionUpdated struct {
	CustomerID       string
	SubscriptionID   string
	Status           string
	CurrentPeriodEnd *int64
}

// SubscriptionDeleted carries a customer.subscription.deleted event. Period end
// is intentionally absent; a deleted subscription syncs as canceled with the
// renewal date cleared.
type SubscriptionDeleted struct {
	CustomerID     string
	SubscriptionID string
}

func (CheckoutSessionCompleted) EventName() string { return "checkout.session.completed" }
func (SubscriptionCreated) EventName() string      { return "customer.subscription.created" }
func (SubscriptionUpdated) EventName() string      { return "customer.subscription.updated" }
func (SubscriptionDeleted) EventName() string      { return "customer.subscription.deleted" }

// ProcessorSubscription is the normalized subscription detail read back from
// the payment processor on the checkout-completion path.
type ProcessorSubscription struct {
	ID               string
	CustomerID       string
	Status           string
	CurrentPeriodEnd *int64
}

// ProcessorCheckoutSession is the created checkout session handed back to the
// caller for redirecting the user.
type ProcessorCheckoutSession struct {
	ID  string
	URL string
}

// CheckoutParams describes a subscription-mode checkout session to create.
type CheckoutParams struct {
	CustomerID string
	PriceID    string
	SuccessURL string
	CancelURL  string
	UserID     uint
}

// PaymentProcessorClient is the injected boundary to the payment processor.
// Construct it explicitly and pass it in; there is no package-level client.
type PaymentProcessorClient interface {
	RetrieveSubscription(ctx context.Context, subscriptionID string) (*ProcessorSubscription, error)
	FindCustomerByEmail(ctx context.Context, email string) (string, error)
	CreateCustomer(ctx context.Context, email string) (string, error)
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*ProcessorCheckoutSession, error)
}
