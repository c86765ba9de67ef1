package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	config "github.com/comeoffice/rank_booking/configs"
	"github.com/comeoffice/rank_booking/database"
	"github.com/comeoffice/rank_booking/models"
)

type loginInput struct {
	AdminID  string `json:"adminId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login exchanges admin credentials for a 24h JWT.
func Login(c *fiber.Ctx) error {
	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Admin ID and password are required"})
	}

	var admin models.Admin
	if err := database.DB.Where("admin_id = ?", input.AdminID).First(&admin).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	claims := jwt.MapClaims{
		"admin_id": admin.AdminID,
		"role":     "admin",
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.Config("JWT_SECRET")))
	if err != nil {
		log.Printf("🔥 Failed to sign admin token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not log in"})
	}

	return c.JSON(fiber.Map{"token": signed, "adminId": admin.AdminID})
}

// VerifyToken lets the dashboard confirm a stored token is still valid.
// The JWT middleware has already done the work by the time we get here.
func VerifyToken(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	return c.JSON(fiber.Map{"valid": true, "adminId": claims["admin_id"]})
}

// GetDashboardStats aggregates the counters shown on the admin home screen.
func GetDashboardStats(c *fiber.Ctx) error {
	var totalOrders, pendingOrders, approvedOrders int64
	database.DB.Model(&models.Order{}).Count(&totalOrders)
	database.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending).Count(&pendingOrders)
	database.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusApproved).Count(&approvedOrders)

	var totalRevenue float64
	database.DB.Model(&models.Order{}).
		Where("status IN ?", []string{models.OrderStatusApproved, models.OrderStatusCompleted}).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalRevenue)

	var recentOrders []models.Order
	database.DB.Order("created_at DESC").Limit(10).Find(&recentOrders)

	return c.JSON(fiber.Map{
		"totalOrders":    totalOrders,
		"pendingOrders":  pendingOrders,
		"approvedOrders": approvedOrders,
		"totalRevenue":   totalRevenue,
		"recentOrders":   recentOrders,
	})
}

func GetSettings(c *fiber.Ctx) error {
	settings, err := models.GetSettings(database.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load settings"})
	}
	return c.JSON(settings)
}

func UpdateSettings(c *fiber.Ctx) error {
	settings, err := models.GetSettings(database.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load settings"})
	}

	if err := c.BodyParser(&settings); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := database.DB.Save(&settings).Error; err != nil {
		log.Printf("🔥 Failed to update settings: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update settings"})
	}
	return c.JSON(settings)
}

// GetFeaturedMatch is the public slice of settings shown on the landing page.
func GetFeaturedMatch(c *fiber.Ctx) error {
	settings, err := models.GetSettings(database.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load settings"})
	}
	return c.JSON(fiber.Map{
		"featuredMatch":     settings.FeaturedMatch,
		"countdownDeadline": settings.CountdownDeadline,
		"upiId":             settings.UpiID,
		"upiName":           settings.UpiName,
		"telegramLink":      settings.TelegramLink,
		"whatsappNumber":    settings.WhatsappNumber,
		"contactNumber":     settings.ContactNumber,
	})
}

func UpdateFeaturedMatch(c *fiber.Ctx) error {
	settings, err := models.GetSettings(database.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load settings"})
	}

	var input struct {
		FeaturedMatch     models.FeaturedMatch `json:"featuredMatch"`
		CountdownDeadline *time.Time           `json:"countdownDeadline"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	settings.FeaturedMatch = input.FeaturedMatch
	settings.CountdownDeadline = input.CountdownDeadline
	if err := database.DB.Save(&settings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update featured match"})
	}
	return c.JSON(settings)
}
