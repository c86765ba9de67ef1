package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/comeoffice/rank_booking/handlers"
	"github.com/comeoffice/rank_booking/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Post("/admin/login", handlers.Login)

	api.Get("/admin/verify", middleware.Protected(), middleware.AdminRequired(), handlers.VerifyToken)
	api.Get("/admin/dashboard", middleware.Protected(), middleware.AdminRequired(), handlers.GetDashboardStats)
	api.Get("/admin/settings", middleware.Protected(), middleware.AdminRequired(), handlers.GetSettings)
	api.Put("/admin/settings", middleware.Protected(), middleware.AdminRequired(), handlers.UpdateSettings)
	api.Put("/admin/featured-match", middleware.Protected(), middleware.AdminRequired(), handlers.UpdateFeaturedMatch)
}
