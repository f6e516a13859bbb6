package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"attendance-backend/internal/attendance"
	"attendance-backend/internal/model"
	"attendance-backend/internal/repository"
	"attendance-backend/internal/usecase"
)

// ManagerHandler serves the manager-only views: company-wide listings,
// team summaries and report downloads.
type ManagerHandler struct {
	attendanceRepo repository.AttendanceRepository
	userRepo       repository.UserRepository
	dashboards     *usecase.DashboardUsecase
}

func NewManagerHandler(attendanceRepo repository.AttendanceRepository, userRepo repository.UserRepository, dashboards *usecase.DashboardUsecase) *ManagerHandler {
	return &ManagerHandler{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		dashboards:     dashboards,
	}
}

// reportRow is one attendance record joined with its employee's info.
type reportRow struct {
	Employee     string            `json:"employee"`
	Email        string            `json:"email"`
	EmployeeID   string            `json:"employeeId"`
	Department   string            `json:"department"`
	Date         attendance.Day    `json:"date"`
	CheckInTime  *time.Time        `json:"checkInTime"`
	CheckOutTime *time.Time        `json:"checkOutTime"`
	Status       attendance.Status `json:"status"`
	TotalHours   float64           `json:"totalHours"`
}

// buildRows joins records with employee accounts. Records belonging to a
// manager account are filtered out, matching the manager views.
func (h *ManagerHandler) buildRows(c *fiber.Ctx, records []model.Attendance) ([]reportRow, error) {
	employees, err := h.userRepo.GetEmployees(c.UserContext())
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]model.User, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}

	rows := make([]reportRow, 0, len(records))
	for _, r := range records {
		user, ok := byID[r.UserID]
		if !ok {
			continue
		}
		rows = append(rows, reportRow{
			Employee:     user.Name,
			Email:        user.Email,
			EmployeeID:   user.EmployeeID,
			Department:   user.Department,
			Date:         r.Date,
			CheckInTime:  r.CheckInTime,
			CheckOutTime: r.CheckOutTime,
			Status:       r.Status,
			TotalHours:   r.TotalHours,
		})
	}
	return rows, nil
}

// allRecords loads the full attendance table, newest first.
func (h *ManagerHandler) allRecords(c *fiber.Ctx) ([]model.Attendance, error) {
	// Wide-open range; the table only holds real working days
	return h.attendanceRepo.FindAll(c.UserContext(), attendance.Day("0000-01-01"), attendance.Day("9999-12-31"))
}

func (h *ManagerHandler) GetAllAttendance(c *fiber.Ctx) error {
	records, err := h.allRecords(c)
	if err != nil {
		return attendanceError(c, err)
	}
	rows, err := h.buildRows(c, records)
	if err != nil {
		return attendanceError(c, err)
	}
	return c.JSON(rows)
}

func (h *ManagerHandler) GetEmployeeAttendance(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid employee id"})
	}

	records, err := h.attendanceRepo.FindHistory(c.UserContext(), uint(id))
	if err != nil {
		return attendanceError(c, err)
	}
	return c.JSON(records)
}

func (h *ManagerHandler) GetTeamSummary(c *fiber.Ctx) error {
	summary, err := h.dashboards.TeamSummary(c.UserContext(), time.Now())
	if err != nil {
		return attendanceError(c, err)
	}
	return c.JSON(summary)
}

func (h *ManagerHandler) GetTodayTeamStatus(c *fiber.Ctx) error {
	records, err := h.attendanceRepo.FindAllOn(c.UserContext(), attendance.DayOf(time.Now()))
	if err != nil {
		return attendanceError(c, err)
	}
	rows, err := h.buildRows(c, records)
	if err != nil {
		return attendanceError(c, err)
	}
	return c.JSON(rows)
}

var reportHeader = []string{"Employee", "Email", "Employee ID", "Department", "Date", "Check In", "Check Out", "Status", "Total Hours"}

func formatClock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("15:04:05")
}

func (r reportRow) cells() []string {
	return []string{
		r.Employee,
		r.Email,
		r.EmployeeID,
		r.Department,
		r.Date.String(),
		formatClock(r.CheckInTime),
		formatClock(r.CheckOutTime),
		string(r.Status),
		strconv.FormatFloat(r.TotalHours, 'f', 2, 64),
	}
}

// ExportAttendance streams the full report as CSV (default) or XLSX.
func (h *ManagerHandler) ExportAttendance(c *fiber.Ctx) error {
	records, err := h.allRecords(c)
	if err != nil {
		return attendanceError(c, err)
	}
	rows, err := h.buildRows(c, records)
	if err != nil {
		return attendanceError(c, err)
	}

	switch c.Query("format", "csv") {
	case "xlsx":
		return h.exportXLSX(c, rows)
	case "csv":
		return h.exportCSV(c, rows)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "format must be csv or xlsx"})
	}
}

func (h *ManagerHandler) exportCSV(c *fiber.Ctx, rows []reportRow) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(reportHeader); err != nil {
		return attendanceError(c, err)
	}
	for _, r := range rows {
		if err := w.Write(r.cells()); err != nil {
			return attendanceError(c, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return attendanceError(c, err)
	}

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", `attachment; filename="attendance_report.csv"`)
	return c.Send(buf.Bytes())
}

func (h *ManagerHandler) exportXLSX(c *fiber.Ctx, rows []reportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range reportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for i, r := range rows {
		for col, value := range r.cells() {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return attendanceError(c, fmt.Errorf("build workbook: %w", err))
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="attendance_report.xlsx"`)
	return c.Send(buf.Bytes())
}
