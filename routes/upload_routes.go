package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/comeoffice/rank_booking/handlers"
	"github.com/comeoffice/rank_booking/middleware"
)

func UploadRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/upload/signature", middleware.Protected(), middleware.AdminRequired(), handlers.GenerateUploadSignature)
	api.Post("/upload/image", middleware.Protected(), middleware.AdminRequired(), handlers.UploadImage)
}
