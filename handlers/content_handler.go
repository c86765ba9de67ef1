package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/comeoffice/rank_booking/database"
	"github.com/comeoffice/rank_booking/models"
	"github.com/comeoffice/rank_booking/services"
)

// GetVideoProofs lists active winning-proof videos for the public site.
func GetVideoProofs(c *fiber.Ctx) error {
	var videos []models.VideoProof
	if err := database.DB.Where("active = ?", true).
		Order("sort_order ASC, created_at DESC").Find(&videos).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch videos"})
	}
	return c.JSON(videos)
}

func GetAllVideoProofs(c *fiber.Ctx) error {
	var videos []models.VideoProof
	if err := database.DB.Order("sort_order ASC, created_at DESC").Find(&videos).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch videos"})
	}
	return c.JSON(videos)
}

type videoProofInput struct {
	Title        string `json:"title" validate:"required,min=2,max=255"`
	Amount       string `json:"amount" validate:"required"`
	YoutubeURL   string `json:"youtubeUrl" validate:"required,url"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Date         string `json:"date" validate:"required"`
	Active       *bool  `json:"active"`
	SortOrder    int    `json:"order"`
}

func CreateVideoProof(c *fiber.Ctx) error {
	var input videoProofInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title, amount, YouTube URL and date are required"})
	}

	video := models.VideoProof{
		Title:        input.Title,
		Amount:       input.Amount,
		YoutubeURL:   input.YoutubeURL,
		ThumbnailURL: input.ThumbnailURL,
		Date:         input.Date,
		SortOrder:    input.SortOrder,
		Active:       true,
	}
	if input.Active != nil {
		video.Active = *input.Active
	}

	if err := database.DB.Create(&video).Error; err != nil {
		log.Printf("🔥 Failed to create video proof: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create video"})
	}
	return c.Status(fiber.StatusCreated).JSON(video)
}

func UpdateVideoProof(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid video id"})
	}

	var video models.VideoProof
	if err := database.DB.Where("id = ?", id).First(&video).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Video not found"})
	}

	if err := c.BodyParser(&video); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	video.ID = id

	if err := database.DB.Save(&video).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update video"})
	}
	return c.JSON(video)
}

func DeleteVideoProof(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid video id"})
	}

	if err := database.DB.Delete(&models.VideoProof{}, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete video"})
	}
	return c.JSON(fiber.Map{"message": "Video deleted"})
}

// GetWinners lists active winner cards, in display order.
func GetWinners(c *fiber.Ctx) error {
	var winners []models.Winner
	if err := database.DB.Where("active = ?", true).
		Order("sort_order ASC, created_at DESC").Find(&winners).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch winners"})
	}
	return c.JSON(winners)
}

func GetAllWinners(c *fiber.Ctx) error {
	var winners []models.Winner
	if err := database.DB.Order("sort_order ASC, created_at DESC").Find(&winners).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch winners"})
	}
	return c.JSON(winners)
}

type winnerInput struct {
	Name          string `json:"name" validate:"required,min=2,max=255"`
	Amount        string `json:"amount" validate:"required"`
	Rank          string `json:"rank"`
	Match         string `json:"match" validate:"required"`
	ImageURL      string `json:"imageUrl"`
	ImagePublicID string `json:"imagePublicId"`
	Active        *bool  `json:"active"`
	SortOrder     int    `json:"order"`
}

func CreateWinner(c *fiber.Ctx) error {
	var input winnerInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name, amount and match are required"})
	}

	winner := models.Winner{
		Name:          input.Name,
		Amount:        input.Amount,
		Match:         input.Match,
		ImageURL:      input.ImageURL,
		ImagePublicID: input.ImagePublicID,
		SortOrder:     input.SortOrder,
		Active:        true,
	}
	if input.Rank != "" {
		winner.Rank = input.Rank
	}
	if input.Active != nil {
		winner.Active = *input.Active
	}

	if err := database.DB.Create(&winner).Error; err != nil {
		log.Printf("🔥 Failed to create winner: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create winner"})
	}
	return c.Status(fiber.StatusCreated).JSON(winner)
}

func UpdateWinner(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid winner id"})
	}

	var winner models.Winner
	if err := database.DB.Where("id = ?", id).First(&winner).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Winner not found"})
	}

	oldImage := winner.ImageURL
	if err := c.BodyParser(&winner); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	winner.ID = id

	if err := database.DB.Save(&winner).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update winner"})
	}

	if oldImage != "" && oldImage != winner.ImageURL {
		go services.DeleteImage(oldImage)
	}
	return c.JSON(winner)
}

func DeleteWinner(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid winner id"})
	}

	var winner models.Winner
	if err := database.DB.Where("id = ?", id).First(&winner).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Winner not found"})
	}

	if err := database.DB.Delete(&winner).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete winner"})
	}

	if winner.ImageURL != "" {
		go services.DeleteImage(winner.ImageURL)
	}
	return c.JSON(fiber.Map{"message": "Winner deleted"})
}
