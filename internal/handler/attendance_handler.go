package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"attendance-backend/internal/attendance"
	"attendance-backend/internal/usecase"
)

type AttendanceHandler struct {
	usecase *usecase.AttendanceUsecase
}

func NewAttendanceHandler(u *usecase.AttendanceUsecase) *AttendanceHandler {
	return &AttendanceHandler{usecase: u}
}

func currentUserID(c *fiber.Ctx) uint {
	return uint(c.Locals("user_id").(float64))
}

// attendanceError maps the lifecycle errors to responses. Storage failures
// get a 503 so clients know to retry; the rest are user mistakes.
func attendanceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Already checked in today"})
	case errors.Is(err, attendance.ErrCheckInNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Check-in not found"})
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Already checked out"})
	case errors.Is(err, attendance.ErrInvalidTimestampOrder):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Check-out time precedes check-in time"})
	case errors.Is(err, attendance.ErrStorageUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "Storage unavailable, please retry"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}

func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	userID := currentUserID(c)

	record, _, err := h.usecase.CheckIn(c.UserContext(), userID, time.Now())
	if err != nil {
		return attendanceError(c, err)
	}

	message := "Checked in successfully"
	if record.Status == attendance.StatusLate {
		message = "Checked in (Late)"
	}

	return c.JSON(fiber.Map{
		"message":    message,
		"attendance": record,
	})
}

func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	userID := currentUserID(c)

	record, err := h.usecase.CheckOut(c.UserContext(), userID, time.Now())
	if err != nil {
		return attendanceError(c, err)
	}

	var message string
	switch record.Status {
	case attendance.StatusHalfDay:
		message = "Checked out - marked as Half Day"
	case attendance.StatusLate:
		message = "Checked out - marked Late"
	default:
		message = "Checked out successfully"
	}

	return c.JSON(fiber.Map{
		"message": message,
		"record":  record,
	})
}

func (h *AttendanceHandler) GetMyHistory(c *fiber.Ctx) error {
	userID := currentUserID(c)

	history, err := h.usecase.History(c.UserContext(), userID)
	if err != nil {
		return attendanceError(c, err)
	}
	return c.JSON(history)
}

func (h *AttendanceHandler) GetMySummary(c *fiber.Ctx) error {
	userID := currentUserID(c)

	now := time.Now()
	year := c.QueryInt("year", now.Year())
	month := time.Month(c.QueryInt("month", int(now.Month())))

	summary, err := h.usecase.MonthlySummary(c.UserContext(), userID, year, month)
	if err != nil {
		return attendanceError(c, err)
	}
	return c.JSON(summary)
}

func (h *AttendanceHandler) GetTodayStatus(c *fiber.Ctx) error {
	userID := currentUserID(c)

	record, err := h.usecase.TodayStatus(c.UserContext(), userID, time.Now())
	if err != nil {
		return attendanceError(c, err)
	}
	if record == nil {
		// No record is a normal state, not an error
		return c.JSON(fiber.Map{"status": attendance.StatusNotMarked})
	}
	return c.JSON(record)
}
