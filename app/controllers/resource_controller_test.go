package controllers

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/StageCraftMedia/StageCraft/app/models"
	"github.com/StageCraftMedia/StageCraft/internal/pkg/billing"
	"github.com/StageCraftMedia/StageCraft/internal/pkg/usercontext"
)

// stubEntitlementRepository serves one stored user so the gate tests can pit
// the persisted status against a stale session copy.
type stubEntitlementRepository struct {
	stubBillingRepository
	user models.User
}

func (r stubEntitlementRepository) FindUserByID(userID uint) (*models.User, error) {
	if userID != r.user.ID {
		return nil, gorm.ErrRecordNotFound
	}
	out := r.user
	return &out, nil
}

type stubResourceStore struct {
	exists    bool
	existsErr error
	url       string
}

func (s stubResourceStore) PresignDownload(context.Context, string, string, time.Duration) (string, error) {
	return s.url, nil
}

func (s stubResourceStore) ObjectExists(context.Context, string) (bool, error) {
	return s.exists, s.existsErr
}

func newProGateTestApp(userCtx usercontext.UserContext) *fiber.App {
	app := fiber.New()
	app.Get("/check", func(c *fiber.Ctx) error {
		c.Locals("USER_CONTEXT", userCtx)
		return c.JSON(fiber.Map{"pro": freshProAccess(c)})
	})
	return app
}

func TestProDownloadGateDeniesDowngradedUser(t *testing.T) {
	billingService = billing.NewService(stubEntitlementRepository{user: models.User{
		ID:                 7,
		Role:               models.ROLE_FREE,
		SubscriptionStatus: models.SUB_STATUS_CANCELED,
	}})

	// The session still claims Pro; the stored status must win.
	app := newProGateTestApp(usercontext.UserContext{
		UserID:       7,
		IsLoggedIn:   true,
		HasProAccess: true,
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/check", nil), -1)
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"pro":false`)
}

func TestProDownloadGateAllowsActiveSubscriber(t *testing.T) {
	billingService = billing.NewService(stubEntitlementRepository{user: models.User{
		ID:                 7,
		Role:               models.ROLE_PRO,
		SubscriptionStatus: models.SUB_STATUS_ACTIVE,
	}})

	app := newProGateTestApp(usercontext.UserContext{
		UserID:     7,
		IsLoggedIn: true,
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/check", nil), -1)
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"pro":true`)
}

func TestProDownloadGateDeniesAnonymous(t *testing.T) {
	billingService = billing.NewService(stubBillingRepository{})

	app := newProGateTestApp(usercontext.UserContext{})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/check", nil), -1)
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"pro":false`)
}

func newDeliverTestApp(resource models.Resource) *fiber.App {
	app := fiber.New()
	app.Get("/deliver", func(c *fiber.Ctx) error {
		return deliverResource(c, resource)
	})
	return app
}

func TestDeliverResourceRedirectsToDownloadURL(t *testing.T) {
	resourceStorage = stubResourceStore{exists: true, url: "https://files.example.com/stage-plot.pdf"}
	defer func() { resourceStorage = nil }()

	app := newDeliverTestApp(models.Resource{ID: 3, Slug: "stage-plot", FileKey: "resources/stage-plot.pdf"})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/deliver", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "https://files.example.com/stage-plot.pdf", resp.Header.Get("Location"))
}

func TestDeliverResourceMissingObjectRedirectsBack(t *testing.T) {
	resourceStorage = stubResourceStore{exists: false}
	defer func() { resourceStorage = nil }()

	app := newDeliverTestApp(models.Resource{ID: 3, Slug: "stage-plot", FileKey: "resources/missing.pdf"})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/deliver", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/portal/resources", resp.Header.Get("Location"))
}

func TestDeliverResourceStorageErrorRedirectsBack(t *testing.T) {
	resourceStorage = stubResourceStore{existsErr: errors.New("bucket unreachable")}
	defer func() { resourceStorage = nil }()

	app := newDeliverTestApp(models.Resource{ID: 3, Slug: "stage-plot", FileKey: "resources/stage-plot.pdf"})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/deliver", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/portal/resources", resp.Header.Get("Location"))
}

func TestDeliverResourceWithoutStorageRedirectsBack(t *testing.T) {
	resourceStorage = nil

	app := newDeliverTestApp(models.Resource{ID: 3, Slug: "stage-plot", FileKey: "resources/stage-plot.pdf"})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/deliver", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/portal/resources", resp.Header.Get("Location"))
}
