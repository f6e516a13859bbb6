package model

import "gorm.io/gorm"

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
)

type User struct {
	gorm.Model
	Name       string `json:"name"`
	Email      string `json:"email" gorm:"unique;not null"`
	Password   string `json:"-"`
	Role       string `json:"role" gorm:"default:employee"` // employee / manager
	EmployeeID string `json:"employee_id" gorm:"column:employee_id;unique"`
	Department string `json:"department"`
}
