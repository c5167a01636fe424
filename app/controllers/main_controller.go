package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/StageCraftMedia/StageCraft/app/models"
	"github.com/StageCraftMedia/StageCraft/internal/pkg/database"
)

func HandleStart(c *fiber.Ctx) error {
	data := pageContext(c, "StageCraft Media")
	data["Flash"] = flash.Get(c)

	var featured []models.PortfolioProject
	if err := database.GetDB().
		Where("featured = ?", true).
		Order("display_order asc").
		Limit(3).
		Find(&featured).Error; err != nil {
		log.Errorf("[Main] failed to load featured projects: %v", err)
	}
	data["FeaturedProjects"] = featured

	return c.Render("home", data)
}

func HandleServices(c *fiber.Ctx) error {
	data := pageContext(c, "Services")
	data["ServiceTypes"] = models.ServiceTypes()

	return c.Render("services", data)
}

func HandlePricing(c *fiber.Ctx) error {
	data := pageContext(c, "Pricing")
	data["Flash"] = flash.Get(c)

	var products []models.Product
	if err := database.GetDB().
		Where("active = ?", true).
		Order("display_order asc").
		Find(&products).Error; err != nil {
		log.Errorf("[Main] failed to load products: %v", err)
	}
	data["Products"] = products

	return c.Render("pricing", data)
}

func HandlePortfolio(c *fiber.Ctx) error {
	data := pageContext(c, "Portfolio")

	var projects []models.PortfolioProject
	if err := database.GetDB().
		Order("display_order asc, created_at desc").
		Find(&projects).Error; err != nil {
		log.Errorf("[Main] failed to load portfolio: %v", err)
	}
	data["Projects"] = projects

	return c.Render("portfolio", data)
}

func HandleTestimonials(c *fiber.Ctx) error {
	data := pageContext(c, "Testimonials")

	var testimonials []models.Testimonial
	if err := database.GetDB().
		Order("featured desc, created_at desc").
		Find(&testimonials).Error; err != nil {
		log.Errorf("[Main] failed to load testimonials: %v", err)
	}
	data["Testimonials"] = testimonials

	return c.Render("testimonials", data)
}

func HandleAbout(c *fiber.Ctx) error {
	return c.Render("about", pageContext(c, "About"))
}
