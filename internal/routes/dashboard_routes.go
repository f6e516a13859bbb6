package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"attendance-backend/internal/handler"
	"attendance-backend/internal/middleware"
	"attendance-backend/internal/model"
	"attendance-backend/internal/repository"
	"attendance-backend/internal/usecase"
)

func SetupDashboardRoutes(app *fiber.App, db *gorm.DB) {
	attendanceRepo := repository.NewAttendanceRepository(db)
	userRepo := repository.NewUserRepository(db)
	dashboardUsecase := usecase.NewDashboardUsecase(attendanceRepo, userRepo)
	hdl := handler.NewDashboardHandler(dashboardUsecase)

	api := app.Group("/api/dashboard", middleware.Auth)

	api.Get("/employee", hdl.GetEmployeeDashboard)
	api.Get("/manager", middleware.Role(model.RoleManager), hdl.GetManagerDashboard)
}
