package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/comeoffice/rank_booking/handlers"
	"github.com/comeoffice/rank_booking/middleware"
)

func ContentRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/content/videos", handlers.GetVideoProofs)
	api.Get("/content/winners", handlers.GetWinners)
	api.Get("/admin/featured-match", handlers.GetFeaturedMatch)

	api.Get("/content/videos/all", middleware.Protected(), middleware.AdminRequired(), handlers.GetAllVideoProofs)
	api.Post("/content/videos", middleware.Protected(), middleware.AdminRequired(), handlers.CreateVideoProof)
	api.Put("/content/videos/:id", middleware.Protected(), middleware.AdminRequired(), handlers.UpdateVideoProof)
	api.Delete("/content/videos/:id", middleware.Protected(), middleware.AdminRequired(), handlers.DeleteVideoProof)

	api.Get("/content/winners/all", middleware.Protected(), middleware.AdminRequired(), handlers.GetAllWinners)
	api.Post("/content/winners", middleware.Protected(), middleware.AdminRequired(), handlers.CreateWinner)
	api.Put("/content/winners/:id", middleware.Protected(), middleware.AdminRequired(), handlers.UpdateWinner)
	api.Delete("/content/winners/:id", middleware.Protected(), middleware.AdminRequired(), handlers.DeleteWinner)
}
