package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/StageCraftMedia/StageCraft/app/models"
	"github.com/StageCraftMedia/StageCraft/internal/pkg/database"
)

func HandleBooking(c *fiber.Ctx) error {
	data := pageContext(c, "Book a Service")
	data["Flash"] = flash.Get(c)
	data["ServiceTypes"] = models.ServiceTypes()

	return c.Render("booking", data)
}

func HandleBookingSubmit(c *fiber.Ctx) error {
	var eventDate *time.Time
	if raw := c.FormValue("event_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			fm := fiber.Map{
				"type":    "error",
				"message": "Please enter the event date as YYYY-MM-DD",
			}
			return flash.WithError(c, fm).Redirect("/booking")
		}
		eventDate = &parsed
	}

	booking, err := models.NewBooking(
		c.FormValue("name"),
		c.FormValue("email"),
		c.FormValue("phone"),
		c.FormValue("service_type"),
		c.FormValue("description"),
		eventDate,
	)
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Please check the form: name, email and service type are required",
		}
		return flash.WithError(c, fm).Redirect("/booking")
	}

	if err := database.GetDB().Create(booking).Error; err != nil {
		log.Errorf("[Booking] failed to store booking: %v", err)
		fm := fiber.Map{
			"type":    "error",
			"message": "Something went wrong, please try again later",
		}
		return flash.WithError(c, fm).Redirect("/booking")
	}

	log.Infof("[Booking] new %s request %s from %s", booking.ServiceType, booking.Reference, booking.Email)

	fm := fiber.Map{
		"type":    "success",
		"message": fmt.Sprintf("Thank you! Your request %s has been received, we will be in touch shortly.", booking.Reference),
	}
	return flash.WithSuccess(c, fm).Redirect("/booking")
}

func HandleContact(c *fiber.Ctx) error {
	data := pageContext(c, "Contact")
	data["Flash"] = flash.Get(c)

	return c.Render("contact", data)
}

func HandleContactSubmit(c *fiber.Ctx) error {
	submission := models.ContactSubmission{
		Name:    c.FormValue("name"),
		Email:   c.FormValue("email"),
		Subject: c.FormValue("subject"),
		Message: c.FormValue("message"),
	}
	if err := submission.Validate(); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Please check the form: name, email and message are required",
		}
		return flash.WithError(c, fm).Redirect("/contact")
	}

	if err := database.GetDB().Create(&submission).Error; err != nil {
		log.Errorf("[Contact] failed to store submission: %v", err)
		fm := fiber.Map{
			"type":    "error",
			"message": "Something went wrong, please try again later",
		}
		return flash.WithError(c, fm).Redirect("/contact")
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Thanks for reaching out! We will reply as soon as possible.",
	}
	return flash.WithSuccess(c, fm).Redirect("/contact")
}
