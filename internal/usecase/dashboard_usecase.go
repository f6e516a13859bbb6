package usecase

import (
	"context"
	"time"

	"attendance-backend/internal/attendance"
	"attendance-backend/internal/model"
	"attendance-backend/internal/repository"
)

type DashboardUsecase struct {
	attendanceRepo repository.AttendanceRepository
	userRepo       repository.UserRepository
}

func NewDashboardUsecase(attendanceRepo repository.AttendanceRepository, userRepo repository.UserRepository) *DashboardUsecase {
	return &DashboardUsecase{attendanceRepo: attendanceRepo, userRepo: userRepo}
}

type EmployeeDashboard struct {
	TodayStatus attendance.Status  `json:"todayStatus"`
	TodayRecord *model.Attendance  `json:"todayRecord"`
	Summary     MonthlySummary     `json:"summary"`
	Recent      []model.Attendance `json:"recent"`
}

// EmployeeDashboard assembles today's status, the current-month summary and
// the last 7 records for one user.
func (u *DashboardUsecase) EmployeeDashboard(ctx context.Context, userID uint, now time.Time) (*EmployeeDashboard, error) {
	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	today, err := u.attendanceRepo.FindByUserAndDay(ctx, userID, attendance.DayOf(now))
	if err != nil {
		return nil, err
	}

	from, to := attendance.MonthRange(now.Year(), now.Month())
	monthRecords, err := u.attendanceRepo.FindByUser(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	recent, err := u.attendanceRepo.FindRecent(ctx, userID, 7)
	if err != nil {
		return nil, err
	}

	dash := &EmployeeDashboard{
		TodayStatus: attendance.StatusNotMarked,
		TodayRecord: today,
		Summary:     Summarize(monthRecords),
		Recent:      recent,
	}
	if today != nil {
		dash.TodayStatus = today.Status
	}
	return dash, nil
}

type TrendPoint struct {
	Date    attendance.Day `json:"date"`
	Present int            `json:"present"`
}

type ManagerDashboard struct {
	TotalEmployees int64          `json:"totalEmployees"`
	PresentToday   int64          `json:"presentToday"`
	AbsentToday    int64          `json:"absentToday"`
	WeeklyTrend    []TrendPoint   `json:"weeklyTrend"`
	DepartmentWise map[string]int `json:"departmentWise"`
}

// ManagerDashboard aggregates company-wide stats: headline counts for
// today, a 7-day check-in trend and per-department present counts.
func (u *DashboardUsecase) ManagerDashboard(ctx context.Context, now time.Time) (*ManagerDashboard, error) {
	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	totalEmployees, err := u.userRepo.CountEmployees(ctx)
	if err != nil {
		return nil, err
	}

	today := attendance.DayOf(now)
	presentToday, err := u.attendanceRepo.CountCheckedInOn(ctx, today)
	if err != nil {
		return nil, err
	}

	absentToday := totalEmployees - presentToday
	if absentToday < 0 {
		absentToday = 0
	}

	weekAgo := attendance.DayOf(now.AddDate(0, 0, -6))
	weekRecords, err := u.attendanceRepo.FindAll(ctx, weekAgo, today)
	if err != nil {
		return nil, err
	}

	perDay := make(map[attendance.Day]int)
	for _, r := range weekRecords {
		if r.CheckInTime != nil {
			perDay[r.Date]++
		}
	}
	trend := make([]TrendPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := attendance.DayOf(now.AddDate(0, 0, -i))
		trend = append(trend, TrendPoint{Date: day, Present: perDay[day]})
	}

	employees, err := u.userRepo.GetEmployees(ctx)
	if err != nil {
		return nil, err
	}
	deptByUser := make(map[uint]string, len(employees))
	for _, e := range employees {
		deptByUser[e.ID] = e.Department
	}

	departmentWise := make(map[string]int)
	todayRecords, err := u.attendanceRepo.FindAllOn(ctx, today)
	if err != nil {
		return nil, err
	}
	for _, r := range todayRecords {
		dept, ok := deptByUser[r.UserID]
		if !ok || r.CheckInTime == nil {
			continue
		}
		departmentWise[dept]++
	}

	return &ManagerDashboard{
		TotalEmployees: totalEmployees,
		PresentToday:   presentToday,
		AbsentToday:    absentToday,
		WeeklyTrend:    trend,
		DepartmentWise: departmentWise,
	}, nil
}

type TeamSummary struct {
	TotalEmployees int64 `json:"totalEmployees"`
	PresentToday   int64 `json:"presentToday"`
	LateToday      int64 `json:"lateToday"`
	AbsentToday    int64 `json:"absentToday"`
}

// TeamSummary is the manager's headline view for today: anyone without a
// present or late record counts as absent.
func (u *DashboardUsecase) TeamSummary(ctx context.Context, now time.Time) (*TeamSummary, error) {
	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	totalEmployees, err := u.userRepo.CountEmployees(ctx)
	if err != nil {
		return nil, err
	}

	today := attendance.DayOf(now)
	presentToday, err := u.attendanceRepo.CountByStatusOn(ctx, today, attendance.StatusPresent)
	if err != nil {
		return nil, err
	}
	lateToday, err := u.attendanceRepo.CountByStatusOn(ctx, today, attendance.StatusLate)
	if err != nil {
		return nil, err
	}

	absentToday := totalEmployees - (presentToday + lateToday)
	if absentToday < 0 {
		absentToday = 0
	}

	return &TeamSummary{
		TotalEmployees: totalEmployees,
		PresentToday:   presentToday,
		LateToday:      lateToday,
		AbsentToday:    absentToday,
	}, nil
}
