package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"attendance-backend/config"
	"attendance-backend/internal/attendance"
	"attendance-backend/internal/handler"
	"attendance-backend/internal/middleware"
	"attendance-backend/internal/repository"
	"attendance-backend/internal/usecase"
)

// rulesFromEnv lets deployments move the cutoffs without a rebuild.
func rulesFromEnv() attendance.Rules {
	rules := attendance.DefaultRules
	rules.LateCutoff.Hour, rules.LateCutoff.Minute = config.GetEnvAsClock(
		"LATE_CUTOFF", rules.LateCutoff.Hour, rules.LateCutoff.Minute)
	rules.HalfDayCutoff.Hour, rules.HalfDayCutoff.Minute = config.GetEnvAsClock(
		"HALF_DAY_CUTOFF", rules.HalfDayCutoff.Hour, rules.HalfDayCutoff.Minute)
	return rules
}

func SetupAttendanceRoutes(app *fiber.App, db *gorm.DB) {
	attendanceRepo := repository.NewAttendanceRepository(db)
	attendanceUsecase := usecase.NewAttendanceUsecase(attendanceRepo, rulesFromEnv())
	hdl := handler.NewAttendanceHandler(attendanceUsecase)

	api := app.Group("/api/attendance", middleware.Auth)

	api.Post("/checkin", hdl.CheckIn)
	api.Post("/checkout", hdl.CheckOut)
	api.Get("/my-history", hdl.GetMyHistory)
	api.Get("/my-summary", hdl.GetMySummary)
	api.Get("/today", hdl.GetTodayStatus)
}
