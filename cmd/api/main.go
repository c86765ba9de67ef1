package main

import (
	"log"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	config "github.com/comeoffice/rank_booking/configs"
	"github.com/comeoffice/rank_booking/database"
	"github.com/comeoffice/rank_booking/jobs"
	"github.com/comeoffice/rank_booking/notifications"
	"github.com/comeoffice/rank_booking/payments"
	"github.com/comeoffice/rank_booking/routes"
	"github.com/comeoffice/rank_booking/services"
	"github.com/comeoffice/rank_booking/websocket"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	notifications.InitEmailService()
	payments.InitCashfree()
	services.InitApprovalService()

	c := cron.New()
	c.AddFunc("*/5 * * * *", jobs.SweepAwaitingPayments)
	go c.Start()
	log.Println("✅ Payment sweep job scheduled successfully.")

	app := fiber.New(fiber.Config{
		AppName:      "Rank Booking",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Kolkata",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to Rank Booking API",
		})
	})

	routes.AdminRoutes(app)
	routes.OrderRoutes(app)
	routes.PaymentRoutes(app)
	routes.PlanRoutes(app)
	routes.ContentRoutes(app)
	routes.UploadRoutes(app)
	routes.WebsocketRoutes(app)

	go websocket.RunHub()

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	port := config.Config("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("✅ Server is running on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
