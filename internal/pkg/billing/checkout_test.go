package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutReusesStoredCustomer(t *testing.T) {
	repo := newFakeRepository(freeUser())
	processor := &fakeProcessor{
		session: &ProcessorCheckoutSession{ID: "cs_1", URL: "https://checkout.example/cs_1"},
	}
	svc := NewCheckoutService(repo, processor, "price_pro_monthly")

	session, err := svc.CreateProCheckoutSession(context.Background(), 1, "https://site/success", "https://site/cancel")
	require.NoError(t, err)
	assert.Equal(t, "cs_1", session.ID)
	assert.Equal(t, "cus_123", processor.lastParams.CustomerID, "stored customer id must be reused")
	assert.Equal(t, 0, processor.createdCalls)
	assert.Equal(t, "price_pro_monthly", processor.lastParams.PriceID)
	assert.Equal(t, uint(1), processor.lastParams.UserID)
}

func TestCheckoutFindsCustomerByEmail(t *testing.T) {
	user := freeUser()
	user.StripeCustomerID = ""
	repo := newFakeRepository(user)
	processor := &fakeProcessor{
		customerByEmail: "cus_found",
		session:         &ProcessorCheckoutSession{ID: "cs_2", URL: "https://checkout.example/cs_2"},
	}
	svc := NewCheckoutService(repo, processor, "price_pro_monthly")

	_, err := svc.CreateProCheckoutSession(context.Background(), 1, "https://site/success", "https://site/cancel")
	require.NoError(t, err)
	assert.Equal(t, 0, processor.createdCalls)
	assert.Equal(t, "cus_found", repo.user(1).StripeCustomerID, "found customer id must be persisted")
}

func TestCheckoutCreatesCustomerWhenMissing(t *testing.T) {
	user := freeUser()
	user.StripeCustomerID = ""
	repo := newFakeRepository(user)
	processor := &fakeProcessor{
		createdCustomer: "cus_new",
		session:         &ProcessorCheckoutSession{ID: "cs_3", URL: "https://checkout.example/cs_3"},
	}
	svc := NewCheckoutService(repo, processor, "price_pro_monthly")

	_, err := svc.CreateProCheckoutSession(context.Background(), 1, "https://site/success", "https://site/cancel")
	require.NoError(t, err)
	assert.Equal(t, 1, processor.createdCalls)
	assert.Equal(t, "cus_new", repo.user(1).StripeCustomerID)
	assert.Equal(t, "cus_new", processor.lastParams.CustomerID)
}

func TestCheckoutRequiresConfiguredPrice(t *testing.T) {
	svc := NewCheckoutService(newFakeRepository(freeUser()), &fakeProcessor{}, "")

	_, err := svc.CreateProCheckoutSession(context.Background(), 1, "https://site/success", "https://site/cancel")
	assert.Error(t, err)
}

func TestCheckoutRequiresUserEmail(t *testing.T) {
	user := freeUser()
	user.Email = ""
	user.StripeCustomerID = ""
	svc := NewCheckoutService(newFakeRepository(user), &fakeProcessor{}, "price_pro_monthly")

	_, err := svc.CreateProCheckoutSession(context.Background(), 1, "https://site/success", "https://site/cancel")
	assert.Error(t, err)
}
