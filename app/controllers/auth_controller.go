package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/StageCraftMedia/StageCraft/app/models"
	"github.com/StageCraftMedia/StageCraft/internal/pkg/database"
	"github.com/StageCraftMedia/StageCraft/internal/pkg/session"
)

func HandleAuthLogin(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		var user models.User
		fm := fiber.Map{
			"type": "error",
		}

		// notice: in production you should not inform the user
		// with detailed messages about login failures
		result := database.GetDB().Where("email = ?", c.FormValue("email")).First(&user)
		if result.Error != nil {
			fm["message"] = "There is a problem with the login process"

			return flash.WithError(c, fm).Redirect("/login")
		}

		if !models.CheckPasswordHash(c.FormValue("password"), user.Password) {
			fm["message"] = "There is a problem with the login process"

			return flash.WithError(c, fm).Redirect("/login")
		}

		if err := createUserSession(c, &user); err != nil {
			fm["message"] = fmt.Sprintf("something went wrong: %s", err)

			return flash.WithError(c, fm).Redirect("/login")
		}

		database.GetDB().Model(&user).Update("last_login_at", time.Now())

		fm = fiber.Map{
			"type":    "success",
			"message": "Welcome back!",
		}

		return flash.WithSuccess(c, fm).Redirect("/portal")
	}

	data := pageContext(c, "Log in")
	data["Flash"] = flash.Get(c)

	return c.Render("auth/login", data)
}

func HandleAuthRegister(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		user, err := models.CreateUser(c.FormValue("name"), c.FormValue("email"), c.FormValue("password"))
		if err != nil {
			fm := fiber.Map{
				"type":    "error",
				"message": fmt.Sprintf("something went wrong: %s", err),
			}

			return flash.WithError(c, fm).Redirect("/register")
		}

		if err := database.GetDB().Create(user).Error; err != nil {
			fm := fiber.Map{
				"type":    "error",
				"message": "An account with this email already exists",
			}

			return flash.WithError(c, fm).Redirect("/register")
		}

		if err := createUserSession(c, user); err != nil {
			fm := fiber.Map{
				"type":    "error",
				"message": fmt.Sprintf("something went wrong: %s", err),
			}

			return flash.WithError(c, fm).Redirect("/login")
		}

		fm := fiber.Map{
			"type":    "success",
			"message": "Welcome to StageCraft Media!",
		}

		return flash.WithSuccess(c, fm).Redirect("/portal")
	}

	data := pageContext(c, "Create account")
	data["Flash"] = flash.Get(c)

	return c.Render("auth/register", data)
}

func HandleAuthLogout(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		fm["message"] = "logged out (no sess)"

		return flash.WithError(c, fm).Redirect("/login")
	}

	if err := sess.Destroy(); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/login")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Bye! See you next time.",
	}

	c.Locals(FROM_PROTECTED, false)

	return flash.WithSuccess(c, fm).Redirect("/login")
}

// createUserSession stores identity and entitlement data in a fresh session.
// Role and status are cached so the user context middleware can skip a DB
// round trip on every request.
func createUserSession(c *fiber.Ctx, user *models.User) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return err
	}

	sess.Set(AUTH_KEY, true)
	sess.Set(USER_ID, user.ID)
	sess.Set(USER_NAME, user.Name)
	sess.Set(USER_IS_ADMIN, user.IsAdmin())

	if err := sess.Save(); err != nil {
		return err
	}

	_ = session.SetSessionValue(c, "user_role", user.Role)
	_ = session.SetSessionValue(c, "subscription_status", user.SubscriptionStatus)
	_ = session.SetSessionValue(c, "entitlement_cached_at", strconv.FormatInt(time.Now().Unix(), 10))

	return nil
}
