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

func SetupManagerRoutes(app *fiber.App, db *gorm.DB) {
	attendanceRepo := repository.NewAttendanceRepository(db)
	userRepo := repository.NewUserRepository(db)
	dashboardUsecase := usecase.NewDashboardUsecase(attendanceRepo, userRepo)
	hdl := handler.NewManagerHandler(attendanceRepo, userRepo, dashboardUsecase)

	// Every route here is protected and manager-only
	api := app.Group("/api/manager/attendance", middleware.Auth, middleware.Role(model.RoleManager))

	api.Get("/all", hdl.GetAllAttendance)
	api.Get("/employee/:id", hdl.GetEmployeeAttendance)
	api.Get("/summary", hdl.GetTeamSummary)
	api.Get("/today-status", hdl.GetTodayTeamStatus)
	api.Get("/export", hdl.ExportAttendance)
}
