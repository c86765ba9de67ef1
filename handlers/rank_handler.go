package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/comeoffice/rank_booking/database"
	"github.com/comeoffice/rank_booking/models"
)

// GetRanks lists active bookable ranks, best rank first.
func GetRanks(c *fiber.Ctx) error {
	var ranks []models.Rank
	if err := database.DB.Where("active = ?", true).Order("rank_number ASC").Find(&ranks).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch ranks"})
	}
	return c.JSON(ranks)
}

func GetAllRanks(c *fiber.Ctx) error {
	var ranks []models.Rank
	if err := database.DB.Order("rank_number ASC").Find(&ranks).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch ranks"})
	}
	return c.JSON(ranks)
}

type rankInput struct {
	RankNumber      int      `json:"rankNumber" validate:"required,gt=0"`
	Name            string   `json:"name" validate:"required,min=2,max=255"`
	OriginalPrice   float64  `json:"originalPrice" validate:"required,gt=0"`
	DiscountedPrice float64  `json:"discountedPrice" validate:"required,gt=0"`
	BadgeColor      string   `json:"badgeColor"`
	Features        []string `json:"features"`
	Active          *bool    `json:"active"`
}

func CreateRank(c *fiber.Ctx) error {
	var input rankInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Rank number, name and prices are required"})
	}

	rank := models.Rank{
		RankNumber:      input.RankNumber,
		Name:            input.Name,
		OriginalPrice:   input.OriginalPrice,
		DiscountedPrice: input.DiscountedPrice,
		Features:        input.Features,
		Active:          true,
	}
	if input.BadgeColor != "" {
		rank.BadgeColor = input.BadgeColor
	}
	if input.Active != nil {
		rank.Active = *input.Active
	}

	if err := database.DB.Create(&rank).Error; err != nil {
		log.Printf("🔥 Failed to create rank: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create rank"})
	}
	return c.Status(fiber.StatusCreated).JSON(rank)
}

func UpdateRank(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid rank id"})
	}

	var rank models.Rank
	if err := database.DB.Where("id = ?", id).First(&rank).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Rank not found"})
	}

	if err := c.BodyParser(&rank); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	rank.ID = id

	if err := database.DB.Save(&rank).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update rank"})
	}
	return c.JSON(rank)
}

func DeleteRank(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid rank id"})
	}

	if err := database.DB.Delete(&models.Rank{}, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete rank"})
	}
	return c.JSON(fiber.Map{"message": "Rank deleted"})
}
