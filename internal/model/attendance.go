package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"attendance-backend/internal/attendance"
)

// Attendance is one record per (user, calendar day). The unique index on
// (user_id, date) is what makes concurrent check-in attempts collapse to a
// single winner.
type Attendance struct {
	ID           uuid.UUID         `gorm:"type:char(36);primaryKey" json:"id"`
	UserID       uint              `gorm:"uniqueIndex:idx_user_date;not null" json:"user_id"`
	Date         attendance.Day    `gorm:"type:varchar(10);uniqueIndex:idx_user_date;not null" json:"date"`
	CheckInTime  *time.Time        `json:"check_in_time"`
	CheckOutTime *time.Time        `json:"check_out_time"` // set implies CheckInTime set
	Status       attendance.Status `gorm:"type:varchar(16);default:absent" json:"status"`
	TotalHours   float64           `json:"total_hours"` // 0 until checkout
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

func (a *Attendance) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
