package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/StageCraftMedia/StageCraft/internal/pkg/usercontext"
)

const (
	FROM_PROTECTED string = usercontext.KeyFromProtected
	AUTH_KEY       string = usercontext.AuthKey
	USER_ID        string = usercontext.KeyUserID
	USER_NAME      string = usercontext.KeyUsername
	USER_IS_ADMIN  string = usercontext.KeyIsAdmin
)

func isLoggedIn(c *fiber.Ctx) bool {
	var fromProtected bool
	if protectedValue := c.Locals(FROM_PROTECTED); protectedValue != nil {
		fromProtected = protectedValue.(bool)
	}

	return fromProtected
}

// pageContext builds the base template data shared by all rendered pages
func pageContext(c *fiber.Ctx, title string) fiber.Map {
	ctx := usercontext.GetUserContext(c)
	data := fiber.Map{
		"Title":        title,
		"IsLoggedIn":   ctx.IsLoggedIn,
		"Username":     ctx.Username,
		"IsAdmin":      ctx.IsAdmin,
		"HasProAccess": ctx.HasProAccess,
		"DisplayTier":  ctx.DisplayTier,
	}
	if token, ok := c.Locals("csrf").(string); ok {
		data["CSRFToken"] = token
	}
	return data
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
