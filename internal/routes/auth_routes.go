package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	delivery "attendance-backend/internal/delivery/http"
	"attendance-backend/internal/middleware"
	"attendance-backend/internal/repository"
	"attendance-backend/internal/usecase"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	userRepo := repository.NewUserRepository(db)
	userUsecase := usecase.NewUserUsecase(userRepo)
	hdl := delivery.NewUserHandler(userUsecase)

	api := app.Group("/api/auth")

	api.Post("/register", hdl.Register)
	api.Post("/login", hdl.Login)
	api.Get("/me", middleware.Auth, hdl.Me)
}
