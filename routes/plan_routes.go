package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/comeoffice/rank_booking/handlers"
	"github.com/comeoffice/rank_booking/middleware"
)

func PlanRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/plans", handlers.GetPlans)
	api.Get("/ranks", handlers.GetRanks)

	// /plans/all must be registered before /plans/:id or the param route
	// would swallow it.
	api.Get("/plans/all", middleware.Protected(), middleware.AdminRequired(), handlers.GetAllPlans)
	api.Get("/plans/:id", handlers.GetPlan)
	api.Post("/plans", middleware.Protected(), middleware.AdminRequired(), handlers.CreatePlan)
	api.Put("/plans/:id", middleware.Protected(), middleware.AdminRequired(), handlers.UpdatePlan)
	api.Delete("/plans/:id", middleware.Protected(), middleware.AdminRequired(), handlers.DeletePlan)

	api.Get("/ranks/all", middleware.Protected(), middleware.AdminRequired(), handlers.GetAllRanks)
	api.Post("/ranks", middleware.Protected(), middleware.AdminRequired(), handlers.CreateRank)
	api.Put("/ranks/:id", middleware.Protected(), middleware.AdminRequired(), handlers.UpdateRank)
	api.Delete("/ranks/:id", middleware.Protected(), middleware.AdminRequired(), handlers.DeleteRank)
}
