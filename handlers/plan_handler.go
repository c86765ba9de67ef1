package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/comeoffice/rank_booking/database"
	"github.com/comeoffice/rank_booking/models"
	"github.com/comeoffice/rank_booking/services"
)

// GetPlans lists active plans for the public site.
func GetPlans(c *fiber.Ctx) error {
	var plans []models.Plan
	if err := database.DB.Where("active = ?", true).Order("price ASC").Find(&plans).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch plans"})
	}
	return c.JSON(plans)
}

// GetPlan fetches a single active plan.
func GetPlan(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid plan id"})
	}

	var plan models.Plan
	if err := database.DB.Where("id = ? AND active = ?", id, true).First(&plan).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Plan not found"})
	}
	return c.JSON(plan)
}

// GetAllPlans lists every plan, including inactive ones, for the admin.
func GetAllPlans(c *fiber.Ctx) error {
	var plans []models.Plan
	if err := database.DB.Order("price ASC").Find(&plans).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch plans"})
	}
	return c.JSON(plans)
}

type planInput struct {
	Name          string   `json:"name" validate:"required,min=2,max=255"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	Period        string   `json:"period"`
	Description   string   `json:"description" validate:"required"`
	Features      []string `json:"features"`
	ImageURL      string   `json:"imageUrl"`
	ImagePublicID string   `json:"imagePublicId"`
	Popular       *bool    `json:"popular"`
	Active        *bool    `json:"active"`
	Discount      *int     `json:"discount"`
	DiscountLabel string   `json:"discountLabel"`
}

func CreatePlan(c *fiber.Ctx) error {
	var input planInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name, price and description are required"})
	}

	plan := models.Plan{
		Name:          input.Name,
		Price:         input.Price,
		Period:        input.Period,
		Description:   input.Description,
		Features:      input.Features,
		ImageURL:      input.ImageURL,
		ImagePublicID: input.ImagePublicID,
		DiscountLabel: input.DiscountLabel,
		Active:        true,
	}
	if input.Popular != nil {
		plan.Popular = *input.Popular
	}
	if input.Active != nil {
		plan.Active = *input.Active
	}
	if input.Discount != nil {
		plan.Discount = *input.Discount
	}

	if err := database.DB.Create(&plan).Error; err != nil {
		log.Printf("🔥 Failed to create plan: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create plan"})
	}
	return c.Status(fiber.StatusCreated).JSON(plan)
}

func UpdatePlan(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid plan id"})
	}

	var plan models.Plan
	if err := database.DB.Where("id = ?", id).First(&plan).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Plan not found"})
	}

	oldImage := plan.ImageURL
	if err := c.BodyParser(&plan); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	plan.ID = id

	if err := database.DB.Save(&plan).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update plan"})
	}

	if oldImage != "" && oldImage != plan.ImageURL {
		go services.DeleteImage(oldImage)
	}
	return c.JSON(plan)
}

func DeletePlan(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid plan id"})
	}

	var plan models.Plan
	if err := database.DB.Where("id = ?", id).First(&plan).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Plan not found"})
	}

	if err := database.DB.Delete(&plan).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete plan"})
	}

	if plan.ImageURL != "" {
		go services.DeleteImage(plan.ImageURL)
	}
	return c.JSON(fiber.Map{"message": "Plan deleted"})
}
