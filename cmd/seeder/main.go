package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"attendance-backend/config"
	"attendance-backend/internal/database"
)

func main() {
	fmt.Println("Starting database seeding...")

	// Load .env manually since this is a standalone script
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file found, using system environment variables")
	}

	config.ConnectDB()

	if err := database.SeedAll(config.DB); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	fmt.Println("Seeding done!")
}
