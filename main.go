package main

import (
	"log"
	"os"
	"time"

	"hungerhub/catalog"
	"hungerhub/config"
	"hungerhub/db"
	"hungerhub/fallback"
	"hungerhub/repository"
	"hungerhub/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/session"
)

func main() {
	cfg := config.Load()

	// Open database
	gdb, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close(gdb)

	// Create uploads directory if it doesn't exist
	if _, err := os.Stat("uploads"); os.IsNotExist(err) {
		os.Mkdir("uploads", 0755)
	}

	menuRepo := repository.NewMenuRepository(gdb)
	fb := fallback.NewStore(cfg.FallbackPath)
	service := catalog.NewService(menuRepo, fb)

	sessions := session.New(session.Config{
		Expiration:     14 * 24 * time.Hour,
		CookieHTTPOnly: true,
	})

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Serve static files
	app.Static("/", "./public")
	app.Static("/uploads", "./uploads")

	// Setup routes
	routes.SetupRoutes(app, &routes.Handler{
		Service:  service,
		Users:    repository.NewUserRepository(gdb),
		Feedback: repository.NewFeedbackRepository(gdb),
		Sessions: sessions,
		Hub:      routes.NewHub(),
	})

	// Start server
	log.Fatal(app.Listen(":" + cfg.Port))
}
