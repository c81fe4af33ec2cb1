package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cyusa/shopstream-api/internal/config"
	"github.com/cyusa/shopstream-api/internal/database"
	"github.com/cyusa/shopstream-api/internal/handlers"
	authmw "github.com/cyusa/shopstream-api/internal/middleware"
	"github.com/cyusa/shopstream-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
)

func main() {
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

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	userService := services.NewUserService(db)
	companyService := services.NewCompanyService(db)
	productService := services.NewProductService(db)
	orderService := services.NewOrderService(db)

	authHandler := handlers.NewAuthHandler(cfg, userService, jwtService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	app.Get("/", func(c *drift.Context) {
		_ = c.JSON(200, map[string]any{"ok": true, "message": "ShopStream API"})
	})

	app.Post("/auth/register", authHandler.Register)
	app.Post("/auth/login", authHandler.Login)
	app.Get("/auth/google", authHandler.GoogleConsent)
	app.Get("/auth/google/callback", authHandler.GoogleCallback)
	app.Get("/auth/failure", authHandler.Failure)

	app.Get("/companies", companyHandler.List)
	app.Get("/companies/:id", companyHandler.Get)
	app.Get("/products", productHandler.List)
	app.Get("/products/:id", productHandler.Get)

	protected := app.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Post("/orders", orderHandler.Create)
	// static route registered before the :id route
	protected.Get("/orders/my", orderHandler.ListMine)
	protected.Get("/orders/:id", orderHandler.Get)

	admin := app.Group("")
	admin.Use(authmw.Auth(jwtService))
	admin.Use(authmw.AdminOnly())

	admin.Post("/companies", companyHandler.Create)
	admin.Put("/companies/:id", companyHandler.Update)
	admin.Delete("/companies/:id", companyHandler.Delete)

	admin.Post("/products", productHandler.Create)
	admin.Put("/products/:id", productHandler.Update)
	admin.Delete("/products/:id", productHandler.Delete)

	admin.Get("/orders", orderHandler.ListAll)
	admin.Put("/orders/:id", orderHandler.Update)
	admin.Delete("/orders/:id", orderHandler.Delete)

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}
