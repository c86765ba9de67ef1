package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/comeoffice/rank_booking/middleware"
	"github.com/comeoffice/rank_booking/websocket"
)

func WebsocketRoutes(app *fiber.App) {
	app.Use("/ws", websocket.UpgradeRequired)
	app.Get("/ws/admin", middleware.WsProtected(), middleware.AdminRequired(), websocket.AdminSocketHandler())
}
