package database

import (
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"attendance-backend/internal/attendance"
	"attendance-backend/internal/model"
)

// SeedAll creates a manager, a handful of employees and ~30 days of
// attendance history. Statuses are always derived through the engine rules
// so seeded data obeys the same policy as live check-ins.
func SeedAll(db *gorm.DB) error {
	password, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []model.User{
		{Name: "Maya Putri", Email: "maya@company.test", Role: model.RoleManager, EmployeeID: "MGR001", Department: "Operations"},
		{Name: "Andi Wijaya", Email: "andi@company.test", Role: model.RoleEmployee, EmployeeID: "EMP001", Department: "Engineering"},
		{Name: "Budi Santoso", Email: "budi@company.test", Role: model.RoleEmployee, EmployeeID: "EMP002", Department: "Engineering"},
		{Name: "Citra Dewi", Email: "citra@company.test", Role: model.RoleEmployee, EmployeeID: "EMP003", Department: "Finance"},
		{Name: "Dina Lestari", Email: "dina@company.test", Role: model.RoleEmployee, EmployeeID: "EMP004", Department: "HR"},
	}

	for i := range users {
		users[i].Password = string(password)
		if err := db.Where("email = ?", users[i].Email).FirstOrCreate(&users[i]).Error; err != nil {
			return err
		}
	}

	rules := attendance.DefaultRules
	rng := rand.New(rand.NewSource(42)) // reproducible seed data

	for _, user := range users {
		if user.Role != model.RoleEmployee {
			continue
		}
		if err := seedHistory(db, rules, rng, user.ID); err != nil {
			return err
		}
	}

	fmt.Println("Seed data ready")
	return nil
}

// seedHistory writes the past 30 working days for one employee.
func seedHistory(db *gorm.DB, rules attendance.Rules, rng *rand.Rand, userID uint) error {
	now := time.Now()

	for offset := 30; offset >= 1; offset-- {
		day := now.AddDate(0, 0, -offset)
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}

		// Roughly one day in ten stays absent (no check-in at all)
		if rng.Intn(10) == 0 {
			rec := model.Attendance{
				UserID: userID,
				Date:   attendance.DayOf(day),
				Status: attendance.StatusAbsent,
			}
			if err := db.Where("user_id = ? AND date = ?", userID, rec.Date).FirstOrCreate(&rec).Error; err != nil {
				return err
			}
			continue
		}

		// Check-in between 08:00 and 11:59, checkout 3-10 hours later
		checkIn := time.Date(day.Year(), day.Month(), day.Day(), 8+rng.Intn(4), rng.Intn(60), 0, 0, time.Local)
		checkOut := checkIn.Add(time.Duration(3+rng.Intn(8)) * time.Hour).Add(time.Duration(rng.Intn(60)) * time.Minute)

		status := rules.CheckInStatus(checkIn)
		finalStatus, hours, err := rules.CheckOutOutcome(checkIn, checkOut, status)
		if err != nil {
			return err
		}

		rec := model.Attendance{
			UserID:       userID,
			Date:         attendance.DayOf(checkIn),
			CheckInTime:  &checkIn,
			CheckOutTime: &checkOut,
			Status:       finalStatus,
			TotalHours:   hours,
		}
		if err := db.Where("user_id = ? AND date = ?", userID, rec.Date).FirstOrCreate(&rec).Error; err != nil {
			return err
		}
	}
	return nil
}
