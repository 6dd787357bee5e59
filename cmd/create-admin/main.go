package main

import (
	"log"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/pkg/database"

	"github.com/joho/godotenv"
)

// Seeds the default admin user. Nothing in the API authenticates against it
// yet; this only mirrors the bootstrap the deployment scripts expect.
func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.User{})

	userRepo := repository.NewUserRepo(db)

	// 3. Skip if the admin already exists
	email := "admin@example.com"
	if _, err := userRepo.FindByEmail(email); err == nil {
		log.Printf("Admin user %s already exists, nothing to do", email)
		return
	}

	// 4. Create with hashed password
	admin := &model.User{
		Email:    email,
		FullName: "Administrator",
		Role:     "admin",
	}
	if err := admin.SetPassword("admin123"); err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	if err := userRepo.Create(admin); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	log.Printf("Admin user created: %s / admin123", email)
}
