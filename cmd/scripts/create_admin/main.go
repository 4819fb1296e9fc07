package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/lottopantera/draw-engine/internal/config"
	mongorepo "github.com/lottopantera/draw-engine/internal/repositories/mongodb"
	"github.com/lottopantera/draw-engine/internal/services"
	"github.com/lottopantera/draw-engine/pkg/mongodb"
)

// Seeds the first admin user. Usage:
//
//	go run ./cmd/scripts/create_admin <name> <email> <password> [role]
func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI environment variable is required")
	}

	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "draw-engine"
	}

	if len(os.Args) < 4 {
		log.Fatal("Usage: create_admin <name> <email> <password> [role]")
	}
	name := os.Args[1]
	email := os.Args[2]
	password := os.Args[3]
	role := "admin"
	if len(os.Args) > 4 {
		role = os.Args[4]
	}

	client, err := mongodb.NewClient(context.Background(), mongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(dbName)

	adminRepo := mongorepo.NewAdminUserRepository(db)
	authService := services.NewAuthService(adminRepo, &config.Config{})

	admin, err := authService.CreateAdmin(context.Background(), name, email, password, role)
	if err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	log.Printf("Created admin %s (%s) with role %s", admin.Name, admin.Email, admin.Role)
}
