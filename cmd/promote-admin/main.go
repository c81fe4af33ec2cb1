package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/cyusa/shopstream-api/internal/config"
	"github.com/cyusa/shopstream-api/internal/database"
	"github.com/cyusa/shopstream-api/internal/services"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Println("Usage: promote-admin <email>")
		os.Exit(1)
	}

	email := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	userService := services.NewUserService(db)

	if err := userService.PromoteToAdmin(ctx, email); err != nil {
		log.Fatalf("Failed to promote user: %v", err)
	}

	fmt.Printf("Successfully promoted %s to admin\n", email)
}
