package controllers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/StageCraftMedia/StageCraft/internal/pkg/billing"
	"github.com/StageCraftMedia/StageCraft/internal/pkg/database"
	"github.com/StageCraftMedia/StageCraft/internal/pkg/env"
	"github.com/StageCraftMedia/StageCraft/internal/pkg/session"
	"github.com/StageCraftMedia/StageCraft/internal/pkg/usercontext"
)

var (
	billingService    *billing.Service
	billingDispatcher *billing.Dispatcher
	checkoutService   *billing.CheckoutService
)

// InitializeBillingController wires the Stripe client, sync service and
// webhook dispatcher. Without a configured secret key the payment routes
// stay up but report billing as unavailable.
func InitializeBillingController() {
	billingService = billing.NewServiceFromDB(database.GetDB())

	processor, err := billing.NewStripeClientFromEnv()
	if err != nil {
		log.Warnf("[Billing] Stripe client not configured: %v", err)
		return
	}

	webhookSecret := env.GetEnv("STRIPE_WEBHOOK_SECRET", "")
	if webhookSecret == "" {
		log.Warnf("[Billing] STRIPE_WEBHOOK_SECRET is not set, webhook deliveries will be rejected")
	}

	billingDispatcher = billing.NewDispatcher(webhookSecret, processor, billingService)
	checkoutService = billing.NewCheckoutService(
		billing.NewRepository(database.GetDB()),
		processor,
		env.GetEnv("STRIPE_PRO_PRICE_ID", ""),
	)
}

// HandleStripeWebhook receives Stripe event deliveries. The response status
// drives Stripe's retry behavior: 2xx acknowledges, 4xx drops the delivery,
// 5xx makes Stripe redeliver later.
func HandleStripeWebhook(c *fiber.Ctx) error {
	if billingDispatcher == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "billing_unavailable"})
	}

	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := strings.TrimSpace(c.Get("Stripe-Signature"))

	event, err := billingDispatcher.VerifyAndClassify(rawBody, signature)
	if err != nil {
		if errors.Is(err, billing.ErrSignatureVerification) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_signature"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload"})
	}
	if event == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true, "ignored": true})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := billingDispatcher.Dispatch(ctx, event); err != nil {
		log.Errorf("[Stripe Webhook] failed to process %s: %v", event.EventName(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "event_processing_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true})
}

// HandleCheckoutStart creates a Stripe Checkout session for the Pro plan
// and sends the user to Stripe's hosted payment page.
func HandleCheckoutStart(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	if checkoutService == nil {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Payments are currently unavailable, please try again later",
		}).Redirect("/pricing")
	}

	base := strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", ""), "/")
	if base == "" {
		base = "http://localhost:" + env.GetEnv("APP_PORT", "4000")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	checkout, err := checkoutService.CreateProCheckoutSession(
		ctx,
		userCtx.UserID,
		base+"/checkout/success",
		base+"/checkout/cancel",
	)
	if err != nil {
		log.Errorf("[Checkout] failed to create session for user %d: %v", userCtx.UserID, err)
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Could not start checkout, please try again",
		}).Redirect("/pricing")
	}

	return c.Redirect(checkout.URL, fiber.StatusSeeOther)
}

func HandleCheckoutSuccess(c *fiber.Ctx) error {
	// Drop the cached entitlement so the next request re-reads the role the
	// webhook has written in the meantime.
	_ = session.SetSessionValue(c, "user_role", "")

	fm := fiber.Map{
		"type":    "success",
		"message": "Thank you! Your subscription is being activated.",
	}
	return flash.WithSuccess(c, fm).Redirect("/portal")
}

func HandleCheckoutCancel(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type":    "error",
		"message": "Checkout canceled, you have not been charged.",
	}
	return flash.WithError(c, fm).Redirect("/pricing")
}

// HandlePortal renders the client portal dashboard with the user's
// subscription state.
func HandlePortal(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	data := pageContext(c, "Client Portal")
	data["Flash"] = flash.Get(c)

	ent, err := billingService.Entitlement(context.Background(), userCtx.UserID)
	if err != nil {
		log.Errorf("[Portal] failed to load entitlement for user %d: %v", userCtx.UserID, err)
		return c.Render("portal", data)
	}

	data["Subscription"] = ent
	if ent.CurrentPeriodEnd != nil {
		data["RenewsAt"] = ent.CurrentPeriodEnd.Format("January 2, 2006")
	}

	return c.Render("portal", data)
}

// HandleSubscriptionStatus returns the logged-in user's subscription state as JSON.
func HandleSubscriptionStatus(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	ent, err := billingService.Entitlement(context.Background(), userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "entitlement_lookup_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(ent)
}
