package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/StageCraftMedia/StageCraft/app/models"
	"github.com/StageCraftMedia/StageCraft/internal/pkg/cache"
	"github.com/StageCraftMedia/StageCraft/internal/pkg/database"
	"github.com/StageCraftMedia/StageCraft/internal/pkg/storage"
	"github.com/StageCraftMedia/StageCraft/internal/pkg/usercontext"
)

const (
	resourceCatalogCacheKey = "resources:catalog"
	resourceCatalogCacheTTL = 5 * time.Minute
	downloadLinkExpiry      = 10 * time.Minute
)

// resourceStore is the slice of the storage client the download path needs,
// narrow so tests can stand in for S3.
type resourceStore interface {
	PresignDownload(ctx context.Context, objectKey, filename string, expiry time.Duration) (string, error)
	ObjectExists(ctx context.Context, objectKey string) (bool, error)
}

var resourceStorage resourceStore

// InitializeResourceController sets up the object storage client used for
// presigned resource downloads. Downloads stay disabled when storage is not
// configured; the catalog pages keep working.
func InitializeResourceController() {
	cfg, err := storage.LoadConfig()
	if err != nil {
		log.Warnf("[Resources] invalid storage configuration: %v", err)
		return
	}
	if !cfg.IsEnabled() {
		log.Infof("[Resources] object storage disabled, downloads unavailable")
		return
	}

	client, err := storage.NewClient(cfg)
	if err != nil {
		log.Errorf("[Resources] failed to initialize storage client: %v", err)
		return
	}
	resourceStorage = client
}

// loadCatalog returns all resources, cached for a few minutes since the
// catalog rarely changes and sits on every portal page.
func loadCatalog() ([]models.Resource, error) {
	var resources []models.Resource
	if err := cache.GetJSON(resourceCatalogCacheKey, &resources); err == nil {
		return resources, nil
	}

	if err := database.GetDB().
		Order("category asc, title asc").
		Find(&resources).Error; err != nil {
		return nil, err
	}

	if err := cache.SetJSON(resourceCatalogCacheKey, resources, resourceCatalogCacheTTL); err != nil {
		log.Warnf("[Resources] failed to cache catalog: %v", err)
	}

	return resources, nil
}

// HandleResourceIndex renders the member library. Pro resources are listed
// for everyone but locked for users without Pro access.
func HandleResourceIndex(c *fiber.Ctx) error {
	data := pageContext(c, "Resource Library")
	data["Flash"] = flash.Get(c)

	resources, err := loadCatalog()
	if err != nil {
		log.Errorf("[Resources] failed to load catalog: %v", err)
		return c.Render("resources", data)
	}

	data["Resources"] = resources
	return c.Render("resources", data)
}

// freshProAccess gates Pro downloads off the persisted subscription status
// rather than the session copy. A cancellation webhook lands between requests,
// and the file must lock on the very next one.
func freshProAccess(c *fiber.Ctx) bool {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn || billingService == nil {
		return false
	}

	ent, err := billingService.Entitlement(context.Background(), userCtx.UserID)
	if err != nil {
		log.Errorf("[Resources] entitlement lookup failed for user %d: %v", userCtx.UserID, err)
		return false
	}
	return ent.HasProAccess
}

// HandleResourceDownload hands out a presigned S3 URL after the access check.
func HandleResourceDownload(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusNotFound).SendString("resource not found")
	}

	var resource models.Resource
	if err := database.GetDB().First(&resource, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).SendString("resource not found")
	}

	if resource.IsPro() && !freshProAccess(c) {
		fm := fiber.Map{
			"type":    "error",
			"message": "This resource is part of the Pro plan",
		}
		return flash.WithError(c, fm).Redirect("/pricing")
	}

	return deliverResource(c, resource)
}

// deliverResource checks the object is actually in the bucket before handing
// out a link; presigning succeeds locally even for keys that were never
// uploaded.
func deliverResource(c *fiber.Ctx, resource models.Resource) error {
	if resourceStorage == nil || resource.FileKey == "" {
		return downloadUnavailable(c)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := resourceStorage.ObjectExists(ctx, resource.FileKey)
	if err != nil {
		log.Errorf("[Resources] failed to check object %s: %v", resource.FileKey, err)
		return downloadUnavailable(c)
	}
	if !exists {
		log.Warnf("[Resources] object %s missing for resource %d", resource.FileKey, resource.ID)
		return downloadUnavailable(c)
	}

	url, err := resourceStorage.PresignDownload(ctx, resource.FileKey, resource.Slug+".pdf", downloadLinkExpiry)
	if err != nil {
		log.Errorf("[Resources] failed to presign %s: %v", resource.FileKey, err)
		return downloadUnavailable(c)
	}

	log.Infof("[Resources] user %d downloads resource %d (%s)", usercontext.GetUserID(c), resource.ID, resource.Slug)
	return c.Redirect(url, fiber.StatusSeeOther)
}

func downloadUnavailable(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type":    "error",
		"message": "Download is currently unavailable, please try again later",
	}
	return flash.WithError(c, fm).Redirect("/portal/resources")
}

// HandleResourceList returns the catalog as JSON for the portal API. Pro
// resources carry a locked flag instead of being hidden.
func HandleResourceList(c *fiber.Ctx) error {
	resources, err := loadCatalog()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "catalog_lookup_failed"})
	}

	hasPro := usercontext.HasProAccess(c)
	type resourceView struct {
		models.Resource
		Locked bool `json:"locked"`
	}
	views := make([]resourceView, 0, len(resources))
	for _, r := range resources {
		views = append(views, resourceView{Resource: r, Locked: r.IsPro() && !hasPro})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"resources": views})
}
