package main

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"attendance-backend/config"
	"attendance-backend/internal/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: no .env file found, using system environment variables")
	}

	config.ConnectDB()

	app := fiber.New()

	// Global middleware
	app.Use(cors.New())   // so the web client can call the API cross-origin
	app.Use(logger.New()) // request logs in the terminal

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Server Working")
	})

	routes.SetupAuthRoutes(app, config.DB)
	routes.SetupAttendanceRoutes(app, config.DB)
	routes.SetupDashboardRoutes(app, config.DB)
	routes.SetupManagerRoutes(app, config.DB)

	port := config.GetEnv("APP_PORT", ":5000")
	fmt.Println("Server ready, listening on " + port)
	app.Listen(port)
}
