package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"attendance-backend/internal/attendance"
	"attendance-backend/internal/model"
)

type AttendanceRepository interface {
	FindByUserAndDay(ctx context.Context, userID uint, day attendance.Day) (*model.Attendance, error)
	UpsertOnCheckIn(ctx context.Context, userID uint, day attendance.Day, checkInAt time.Time, status attendance.Status) (*model.Attendance, bool, error)
	UpdateOnCheckOut(ctx context.Context, rec *model.Attendance, checkOutAt time.Time, hours float64, status attendance.Status) error
	FindByUser(ctx context.Context, userID uint, from, to attendance.Day) ([]model.Attendance, error)
	FindHistory(ctx context.Context, userID uint) ([]model.Attendance, error)
	FindRecent(ctx context.Context, userID uint, limit int) ([]model.Attendance, error)
	FindAll(ctx context.Context, from, to attendance.Day) ([]model.Attendance, error)
	FindAllOn(ctx context.Context, day attendance.Day) ([]model.Attendance, error)
	CountCheckedInOn(ctx context.Context, day attendance.Day) (int64, error)
	CountByStatusOn(ctx context.Context, day attendance.Day, status attendance.Status) (int64, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db}
}

// storageErr wraps anything that is not a clean result so callers can treat
// it as a retryable store failure via errors.Is.
func storageErr(err error) error {
	return fmt.Errorf("%w: %v", attendance.ErrStorageUnavailable, err)
}

// FindByUserAndDay returns (nil, nil) when no record exists for that day --
// absence is a normal state, not a failure.
func (r *attendanceRepository) FindByUserAndDay(ctx context.Context, userID uint, day attendance.Day) (*model.Attendance, error) {
	var rec model.Attendance
	err := r.db.WithContext(ctx).Where("user_id = ? AND date = ?", userID, day).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr(err)
	}
	return &rec, nil
}

// UpsertOnCheckIn creates today's record with the check-in fields, or fills
// them into an existing record that has no check-in yet. The returned bool
// reports Inserted (true) vs Updated (false).
//
// Both paths are atomic: the INSERT races on the (user_id, date) unique
// index, and the fallback UPDATE is conditional on check_in_time IS NULL.
// Under concurrent attempts exactly one wins; the rest get
// ErrAlreadyCheckedIn.
func (r *attendanceRepository) UpsertOnCheckIn(ctx context.Context, userID uint, day attendance.Day, checkInAt time.Time, status attendance.Status) (*model.Attendance, bool, error) {
	rec := model.Attendance{
		UserID:      userID,
		Date:        day,
		CheckInTime: &checkInAt,
		Status:      status,
	}

	err := r.db.WithContext(ctx).Create(&rec).Error
	if err == nil {
		return &rec, true, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, false, storageErr(err)
	}

	// Row already exists (seeded absent, or a concurrent check-in won the
	// insert). Claim it only if its check-in is still unset.
	res := r.db.WithContext(ctx).Model(&model.Attendance{}).
		Where("user_id = ? AND date = ? AND check_in_time IS NULL", userID, day).
		Updates(map[string]interface{}{"check_in_time": checkInAt, "status": status})
	if res.Error != nil {
		return nil, false, storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, false, attendance.ErrAlreadyCheckedIn
	}

	updated, err := r.FindByUserAndDay(ctx, userID, day)
	if err != nil {
		return nil, false, err
	}
	return updated, false, nil
}

// UpdateOnCheckOut persists the checkout fields, conditional on the record
// not being checked out yet. A concurrent double-checkout loses the
// RowsAffected race and gets ErrAlreadyCheckedOut.
func (r *attendanceRepository) UpdateOnCheckOut(ctx context.Context, rec *model.Attendance, checkOutAt time.Time, hours float64, status attendance.Status) error {
	res := r.db.WithContext(ctx).Model(&model.Attendance{}).
		Where("id = ? AND check_out_time IS NULL", rec.ID).
		Updates(map[string]interface{}{
			"check_out_time": checkOutAt,
			"total_hours":    hours,
			"status":         status,
		})
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return attendance.ErrAlreadyCheckedOut
	}

	rec.CheckOutTime = &checkOutAt
	rec.TotalHours = hours
	rec.Status = status
	return nil
}

func (r *attendanceRepository) FindByUser(ctx context.Context, userID uint, from, to attendance.Day) ([]model.Attendance, error) {
	var list []model.Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Order("date desc").Find(&list).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return list, nil
}

func (r *attendanceRepository) FindHistory(ctx context.Context, userID uint) ([]model.Attendance, error) {
	var list []model.Attendance
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("date desc").Find(&list).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return list, nil
}

func (r *attendanceRepository) FindRecent(ctx context.Context, userID uint, limit int) ([]model.Attendance, error) {
	var list []model.Attendance
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("date desc").Limit(limit).Find(&list).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return list, nil
}

func (r *attendanceRepository) FindAll(ctx context.Context, from, to attendance.Day) ([]model.Attendance, error) {
	var list []model.Attendance
	err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", from, to).
		Order("date desc").Find(&list).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return list, nil
}

func (r *attendanceRepository) FindAllOn(ctx context.Context, day attendance.Day) ([]model.Attendance, error) {
	var list []model.Attendance
	err := r.db.WithContext(ctx).
		Where("date = ?", day).
		Order("check_in_time asc").Find(&list).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return list, nil
}

func (r *attendanceRepository) CountCheckedInOn(ctx context.Context, day attendance.Day) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Attendance{}).
		Where("date = ? AND check_in_time IS NOT NULL", day).
		Count(&count).Error
	if err != nil {
		return 0, storageErr(err)
	}
	return count, nil
}

func (r *attendanceRepository) CountByStatusOn(ctx context.Context, day attendance.Day, status attendance.Status) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Attendance{}).
		Where("date = ? AND status = ?", day, status).
		Count(&count).Error
	if err != nil {
		return 0, storageErr(err)
	}
	return count, nil
}
