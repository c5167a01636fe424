package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/StageCraftMedia/StageCraft/app/models"
	"github.com/StageCraftMedia/StageCraft/internal/pkg/database"
	"github.com/StageCraftMedia/StageCraft/internal/pkg/entitlements"
	"github.com/StageCraftMedia/StageCraft/internal/pkg/session"
	"github.com/StageCraftMedia/StageCraft/internal/pkg/usercontext"
)

// entitlementCacheTTL bounds how long the session copy of role/status is
// trusted. Webhooks rewrite the stored role between requests, so a
// cancellation must take effect within this window at the latest.
const entitlementCacheTTL = time.Minute

// UserContextMiddleware sets up the complete user context for every request.
// This centralizes user session handling and eliminates code duplication.
func UserContextMiddleware(c *fiber.Ctx) error {
	// Avoid interfering with Goth/Fiber session handling on OAuth routes.
	// Goth uses its own fiber session store and relies on per-request locals.
	// We skip our app session on /auth/* to prevent cross-store collisions.
	if strings.HasPrefix(c.Path(), "/auth/") {
		return c.Next()
	}
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return anonymous(c)
	}

	userID := sess.Get(usercontext.KeyUserID)
	if userID == nil {
		return anonymous(c)
	}

	username := session.GetSessionValue(c, usercontext.KeyUsername)
	isAdmin := sess.Get(usercontext.KeyIsAdmin)

	// Entitlement with session-first strategy: role and status are cached to
	// skip a DB read per request, but only for a short window. Checkout and
	// cancellation webhooks change the stored role between requests, so the
	// cache is re-read when it has no role or when the stamp expired.
	role := session.GetSessionValue(c, "user_role")
	status := session.GetSessionValue(c, "subscription_status")
	if role == "" || entitlementCacheStale(session.GetSessionValue(c, "entitlement_cached_at"), time.Now()) {
		role = string(entitlements.RoleFree)
		status = ""
		if db := database.GetDB(); db != nil {
			var user models.User
			if err := db.First(&user, userID.(uint)).Error; err == nil {
				role = user.Role
				status = user.SubscriptionStatus
			}
		}
		_ = session.SetSessionValue(c, "user_role", role)
		_ = session.SetSessionValue(c, "subscription_status", status)
		_ = session.SetSessionValue(c, "entitlement_cached_at", strconv.FormatInt(time.Now().Unix(), 10))
	}

	userCtx := usercontext.UserContext{
		UserID:       userID.(uint),
		Username:     username,
		IsLoggedIn:   true,
		IsAdmin:      isAdmin != nil && isAdmin.(bool),
		Role:         role,
		HasProAccess: entitlements.HasProAccess(status),
		DisplayTier:  entitlements.DisplayTier(role),
	}
	c.Locals("USER_CONTEXT", userCtx)

	c.Locals(usercontext.KeyFromProtected, true)
	c.Locals(usercontext.KeyUsername, username)
	c.Locals(usercontext.KeyUserID, userID.(uint))
	c.Locals(usercontext.KeyIsAdmin, userCtx.IsAdmin)

	return c.Next()
}

// entitlementCacheStale reports whether the cached role/status pair is too old
// to trust. A missing or unreadable stamp counts as stale.
func entitlementCacheStale(cachedAt string, now time.Time) bool {
	ts, err := strconv.ParseInt(cachedAt, 10, 64)
	if err != nil {
		return true
	}
	return now.Sub(time.Unix(ts, 0)) >= entitlementCacheTTL
}

func anonymous(c *fiber.Ctx) error {
	c.Locals("USER_CONTEXT", usercontext.UserContext{
		IsLoggedIn:  false,
		IsAdmin:     false,
		DisplayTier: "Free",
	})
	c.Locals(usercontext.KeyFromProtected, false)
	c.Locals(usercontext.KeyIsAdmin, false)
	return c.Next()
}
