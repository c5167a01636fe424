package controllers

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripewebhook "github.com/stripe/stripe-go/v82/webhook"
	"gorm.io/gorm"

	"github.com/StageCraftMedia/StageCraft/app/models"
	"github.com/StageCraftMedia/StageCraft/internal/pkg/billing"
)

const webhookTestSecret = "whsec_controller_test"

// stubBillingRepository backs the webhook handler tests without a database.
// Lookups miss so deliveries for unknown customers exercise the
// acknowledge-and-skip path.
type stubBillingRepository struct{}

func (stubBillingRepository) FindUserByCustomerID(string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (stubBillingRepository) FindUserByID(uint) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (stubBillingRepository) FindSubscriptionByUserID(uint) (*models.Subscription, error) {
	return nil, gorm.ErrRecordNotFound
}

func (stubBillingRepository) UpdateUserSubscriptionFields(uint, billing.UserSubscriptionFields) error {
	return nil
}

func (stubBillingRepository) UpsertSubscriptionRecord(*models.Subscription) error { return nil }

func (stubBillingRepository) SaveUserStripeCustomerID(uint, string) error { return nil }

func (stubBillingRepository) CreateSubscriptionEvent(*models.SubscriptionEvent) error { return nil }

func (r stubBillingRepository) Transaction(fn func(billing.Repository) error) error {
	return fn(r)
}

func newWebhookTestApp() *fiber.App {
	billingDispatcher = billing.NewDispatcher(webhookTestSecret, nil, billing.NewService(stubBillingRepository{}))

	app := fiber.New()
	app.Post("/webhooks/stripe", HandleStripeWebhook)
	return app
}

func signWebhookPayload(payload string) ([]byte, string) {
	signed := stripewebhook.GenerateTestSignedPayload(&stripewebhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    webhookTestSecret,
		Timestamp: time.Now(),
		Scheme:    "v1",
	})
	return signed.Payload, signed.Header
}

func TestStripeWebhookRejectsInvalidSignature(t *testing.T) {
	app := newWebhookTestApp()

	req := httptest.NewRequest(fiber.MethodPost, "/webhooks/stripe",
		strings.NewReader(`{"id":"evt_1","type":"customer.subscription.updated"}`))
	req.Header.Set("Stripe-Signature", "t=123,v1=deadbeef")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "invalid_signature")
}

func TestStripeWebhookAcknowledgesUnknownEventType(t *testing.T) {
	app := newWebhookTestApp()

	payload, header := signWebhookPayload(`{"id":"evt_1","type":"invoice.paid","data":{"object":{}}}`)
	req := httptest.NewRequest(fiber.MethodPost, "/webhooks/stripe", strings.NewReader(string(payload)))
	req.Header.Set("Stripe-Signature", header)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "ignored")
}

func TestStripeWebhookAcknowledgesUnknownCustomer(t *testing.T) {
	app := newWebhookTestApp()

	payload, header := signWebhookPayload(`{
		"id": "evt_1",
		"type": "customer.subscription.updated",
		"data": {"object": {
			"id": "sub_123",
			"customer": "cus_missing",
			"status": "active",
			"current_period_end": 1900000000
		}}
	}`)
	req := httptest.NewRequest(fiber.MethodPost, "/webhooks/stripe", strings.NewReader(string(payload)))
	req.Header.Set("Stripe-Signature", header)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "unknown customers are acknowledged, not retried")
}

func TestStripeWebhookUnavailableWithoutDispatcher(t *testing.T) {
	billingDispatcher = nil

	app := fiber.New()
	app.Post("/webhooks/stripe", HandleStripeWebhook)

	req := httptest.NewRequest(fiber.MethodPost, "/webhooks/stripe", strings.NewReader(`{}`))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
