package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"attendance-backend/internal/usecase"
)

type DashboardHandler struct {
	usecase *usecase.DashboardUsecase
}

func NewDashboardHandler(u *usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{usecase: u}
}

func (h *DashboardHandler) GetEmployeeDashboard(c *fiber.Ctx) error {
	userID := currentUserID(c)

	dash, err := h.usecase.EmployeeDashboard(c.UserContext(), userID, time.Now())
	if err != nil {
		return attendanceError(c, err)
	}
	return c.JSON(dash)
}

func (h *DashboardHandler) GetManagerDashboard(c *fiber.Ctx) error {
	dash, err := h.usecase.ManagerDashboard(c.UserContext(), time.Now())
	if err != nil {
		return attendanceError(c, err)
	}
	return c.JSON(dash)
}
