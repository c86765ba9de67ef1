package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/comeoffice/rank_booking/handlers"
	"github.com/comeoffice/rank_booking/middleware"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Post("/cashfree/create-order", handlers.CreateCashfreeOrder)
	api.Post("/cashfree/webhook", handlers.HandleCashfreeWebhook)
	api.Get("/cashfree/verify/:orderId", handlers.VerifyPayment)
	api.Get("/cashfree/verify-link/:linkId", handlers.VerifyPaymentLink)

	api.Post("/cashfree/create-link", middleware.Protected(), middleware.AdminRequired(), handlers.CreatePaymentLink)
}
