package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"attendance-backend/internal/attendance"
	"attendance-backend/internal/model"
	"attendance-backend/internal/repository"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Attendance{}))

	return db
}

func newTestUsecase(t *testing.T) *AttendanceUsecase {
	t.Helper()
	return NewAttendanceUsecase(repository.NewAttendanceRepository(testDB(t)), attendance.DefaultRules)
}

func clock(hour, min int) time.Time {
	return time.Date(2025, time.March, 10, hour, min, 0, 0, time.Local)
}

func TestFullDayPresent(t *testing.T) {
	// Check-in 09:15 -> present; check-out 17:45 -> stays present, 8.50h
	u := newTestUsecase(t)
	ctx := context.Background()

	rec, inserted, err := u.CheckIn(ctx, 1, clock(9, 15))
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, attendance.StatusPresent, rec.Status)
	assert.Zero(t, rec.TotalHours, "hours stay 0 until checkout")

	rec, err = u.CheckOut(ctx, 1, clock(17, 45))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, rec.Status)
	assert.Equal(t, 8.5, rec.TotalHours)
}

func TestLateDayStaysLate(t *testing.T) {
	// Check-in 11:30 -> late; check-out 18:00 -> stays late, 6.50h
	u := newTestUsecase(t)
	ctx := context.Background()

	rec, _, err := u.CheckIn(ctx, 1, clock(11, 30))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, rec.Status)

	rec, err = u.CheckOut(ctx, 1, clock(18, 0))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, rec.Status)
	assert.Equal(t, 6.5, rec.TotalHours)
}

func TestEarlyCheckoutBecomesHalfDay(t *testing.T) {
	// Check-in 09:15 -> present; check-out 12:00 -> half-day, 2.75h
	u := newTestUsecase(t)
	ctx := context.Background()

	rec, _, err := u.CheckIn(ctx, 1, clock(9, 15))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, rec.Status)

	rec, err = u.CheckOut(ctx, 1, clock(12, 0))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusHalfDay, rec.Status)
	assert.Equal(t, 2.75, rec.TotalHours)
}

func TestHalfDayOverridesLate(t *testing.T) {
	// Check-in 11:45 -> late; check-out 13:00 -> half-day override, 1.25h
	u := newTestUsecase(t)
	ctx := context.Background()

	rec, _, err := u.CheckIn(ctx, 1, clock(11, 45))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, rec.Status)

	rec, err = u.CheckOut(ctx, 1, clock(13, 0))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusHalfDay, rec.Status)
	assert.Equal(t, 1.25, rec.TotalHours)
}

func TestSecondCheckInFails(t *testing.T) {
	u := newTestUsecase(t)
	ctx := context.Background()

	first, _, err := u.CheckIn(ctx, 1, clock(9, 15))
	require.NoError(t, err)

	_, _, err = u.CheckIn(ctx, 1, clock(10, 0))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	// Original record unchanged
	rec, err := u.TodayStatus(ctx, 1, clock(10, 30))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.CheckInTime.Equal(*first.CheckInTime))
	assert.Equal(t, attendance.StatusPresent, rec.Status)
}

func TestCheckOutWithoutCheckInFails(t *testing.T) {
	u := newTestUsecase(t)

	_, err := u.CheckOut(context.Background(), 1, clock(17, 0))
	assert.ErrorIs(t, err, attendance.ErrCheckInNotFound)
}

func TestSecondCheckOutFails(t *testing.T) {
	u := newTestUsecase(t)
	ctx := context.Background()

	_, _, err := u.CheckIn(ctx, 1, clock(9, 0))
	require.NoError(t, err)
	_, err = u.CheckOut(ctx, 1, clock(17, 0))
	require.NoError(t, err)

	_, err = u.CheckOut(ctx, 1, clock(18, 0))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCheckOutBeforeCheckInRejected(t *testing.T) {
	u := newTestUsecase(t)
	ctx := context.Background()

	_, _, err := u.CheckIn(ctx, 1, clock(9, 0))
	require.NoError(t, err)

	// Checkout timestamp earlier than the stored check-in: rejected, never
	// clamped, and the record keeps no checkout.
	_, err = u.CheckOut(ctx, 1, clock(8, 0))
	assert.ErrorIs(t, err, attendance.ErrInvalidTimestampOrder)

	rec, err := u.TodayStatus(ctx, 1, clock(8, 30))
	require.NoError(t, err)
	assert.Nil(t, rec.CheckOutTime)
	assert.Zero(t, rec.TotalHours)
}

func TestTodayStatusNotMarked(t *testing.T) {
	u := newTestUsecase(t)

	rec, err := u.TodayStatus(context.Background(), 1, clock(12, 0))
	require.NoError(t, err)
	assert.Nil(t, rec, "no record for the day is a normal result")
}

func TestMonthlySummary(t *testing.T) {
	u := newTestUsecase(t)
	ctx := context.Background()

	type day struct {
		in, out  time.Time
		skipsOut bool
	}
	mkTime := func(date string, hour, min int) time.Time {
		d, _ := time.ParseInLocation("2006-01-02", date, time.Local)
		return time.Date(d.Year(), d.Month(), d.Day(), hour, min, 0, 0, time.Local)
	}

	days := []day{
		{in: mkTime("2025-03-03", 9, 0), out: mkTime("2025-03-03", 17, 0)},   // present, 8h
		{in: mkTime("2025-03-04", 11, 30), out: mkTime("2025-03-04", 18, 0)}, // late, 6.5h
		{in: mkTime("2025-03-05", 9, 0), out: mkTime("2025-03-05", 12, 0)},   // half-day, 3h
		{in: mkTime("2025-03-06", 9, 0), skipsOut: true},                     // present, open
	}
	for _, d := range days {
		_, _, err := u.CheckIn(ctx, 1, d.in)
		require.NoError(t, err)
		if !d.skipsOut {
			_, err = u.CheckOut(ctx, 1, d.out)
			require.NoError(t, err)
		}
	}

	summary, err := u.MonthlySummary(ctx, 1, 2025, time.March)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Present)
	assert.Equal(t, 1, summary.Late)
	assert.Equal(t, 1, summary.HalfDay)
	assert.Equal(t, 0, summary.Absent)
	assert.Equal(t, 17.5, summary.TotalHours)
}
