package config

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"attendance-backend/internal/model"
)

var DB *gorm.DB

func ConnectDB() {
	// Format: user:password@tcp(127.0.0.1:3306)/dbname?charset=utf8mb4&parseTime=True&loc=Local
	dsn := GetEnv("DB_DSN", "root:@tcp(127.0.0.1:3306)/attendance_db?charset=utf8mb4&parseTime=True&loc=Local")

	// TranslateError so a duplicate-key race surfaces as gorm.ErrDuplicatedKey,
	// which the attendance repository relies on for its check-in guard.
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		panic("failed to connect to database: " + err.Error())
	}

	fmt.Println("Database connected!")

	// Auto Migration: creates tables from the structs in internal/model
	db.AutoMigrate(&model.User{})
	db.AutoMigrate(&model.Attendance{})

	DB = db
}
