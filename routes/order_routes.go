package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/comeoffice/rank_booking/handlers"
	"github.com/comeoffice/rank_booking/middleware"
)

func OrderRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Post("/orders", handlers.CreateOrder)
	api.Post("/orders/check", handlers.CheckOrder)

	// Admin side shares the /orders prefix with the public endpoints above,
	// so auth goes per-route rather than on a group.
	api.Get("/orders", middleware.Protected(), middleware.AdminRequired(), handlers.GetOrders)
	api.Get("/orders/:id", middleware.Protected(), middleware.AdminRequired(), handlers.GetOrder)
	api.Put("/orders/:id", middleware.Protected(), middleware.AdminRequired(), handlers.UpdateOrder)
	api.Delete("/orders/:id", middleware.Protected(), middleware.AdminRequired(), handlers.DeleteOrder)
}
