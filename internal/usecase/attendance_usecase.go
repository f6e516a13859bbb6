package usecase

import (
	"context"
	"time"

	"attendance-backend/internal/attendance"
	"attendance-backend/internal/model"
	"attendance-backend/internal/repository"
)

// storeTimeout bounds every store call so a dead database surfaces as a
// retryable ErrStorageUnavailable instead of a hung request.
const storeTimeout = 5 * time.Second

type AttendanceUsecase struct {
	repo  repository.AttendanceRepository
	rules attendance.Rules
}

func NewAttendanceUsecase(repo repository.AttendanceRepository, rules attendance.Rules) *AttendanceUsecase {
	return &AttendanceUsecase{repo: repo, rules: rules}
}

func withStoreTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, storeTimeout)
}

// CheckIn records the first check-in of the day for the user. The returned
// bool reports whether a fresh record was inserted (vs an existing absent
// row being claimed). Second attempts fail with ErrAlreadyCheckedIn and
// leave the original record untouched.
func (u *AttendanceUsecase) CheckIn(ctx context.Context, userID uint, now time.Time) (*model.Attendance, bool, error) {
	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	day := attendance.DayOf(now)

	// Fast path rejection; the upsert below stays authoritative under
	// concurrent attempts.
	existing, err := u.repo.FindByUserAndDay(ctx, userID, day)
	if err != nil {
		return nil, false, err
	}
	if existing != nil && existing.CheckInTime != nil {
		return nil, false, attendance.ErrAlreadyCheckedIn
	}

	status := u.rules.CheckInStatus(now)
	return u.repo.UpsertOnCheckIn(ctx, userID, day, now, status)
}

// CheckOut closes today's record: computes the final status and worked
// hours, then persists them behind the store's checkout guard.
func (u *AttendanceUsecase) CheckOut(ctx context.Context, userID uint, now time.Time) (*model.Attendance, error) {
	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	rec, err := u.repo.FindByUserAndDay(ctx, userID, attendance.DayOf(now))
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.CheckInTime == nil {
		return nil, attendance.ErrCheckInNotFound
	}
	if rec.CheckOutTime != nil {
		return nil, attendance.ErrAlreadyCheckedOut
	}

	status, hours, err := u.rules.CheckOutOutcome(*rec.CheckInTime, now, rec.Status)
	if err != nil {
		return nil, err
	}

	if err := u.repo.UpdateOnCheckOut(ctx, rec, now, hours, status); err != nil {
		return nil, err
	}
	return rec, nil
}

// TodayStatus returns today's record, or nil when the user has not marked
// attendance yet ("not-marked" is a normal state, not an error).
func (u *AttendanceUsecase) TodayStatus(ctx context.Context, userID uint, now time.Time) (*model.Attendance, error) {
	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	return u.repo.FindByUserAndDay(ctx, userID, attendance.DayOf(now))
}

// History returns all of the user's records, newest first.
func (u *AttendanceUsecase) History(ctx context.Context, userID uint) ([]model.Attendance, error) {
	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	return u.repo.FindHistory(ctx, userID)
}

type MonthlySummary struct {
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Late       int     `json:"late"`
	HalfDay    int     `json:"halfDay"`
	TotalHours float64 `json:"totalHours"`
}

// Summarize folds a record set into status counts and total hours.
func Summarize(records []model.Attendance) MonthlySummary {
	var s MonthlySummary
	for _, r := range records {
		switch r.Status {
		case attendance.StatusPresent:
			s.Present++
		case attendance.StatusAbsent:
			s.Absent++
		case attendance.StatusLate:
			s.Late++
		case attendance.StatusHalfDay:
			s.HalfDay++
		}
		s.TotalHours += r.TotalHours
	}
	return s
}

// MonthlySummary aggregates the user's records for one calendar month.
func (u *AttendanceUsecase) MonthlySummary(ctx context.Context, userID uint, year int, month time.Month) (MonthlySummary, error) {
	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	from, to := attendance.MonthRange(year, month)
	records, err := u.repo.FindByUser(ctx, userID, from, to)
	if err != nil {
		return MonthlySummary{}, err
	}
	return Summarize(records), nil
}
