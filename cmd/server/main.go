// main.go
//
// Freedom wall note-board service, a Go replacement for the original
// Express/Sequelize backend.

package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"
	"github.com/google/uuid"

	"github.com/freewall/freewall/internal/config"
	"github.com/freewall/freewall/internal/database"
	"github.com/freewall/freewall/internal/handlers"
	"github.com/freewall/freewall/internal/middleware"
	"github.com/freewall/freewall/internal/services"
	"github.com/freewall/freewall/internal/types"

	_ "github.com/freewall/freewall/docs/api" // Swagger docs
)

// @title Freedom Wall API
// @version 1.0.0
// @description Note-board backend with role-based access control
// @host localhost:6411
// @BasePath /api
// @schemes http https

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the baseline RBAC catalog (idempotent)
	if cfg.SeedOnStart {
		if err := services.Seed(db, services.DefaultSeedPolicy()); err != nil {
			log.Fatalf("Failed to seed roles and permissions: %v", err)
		}
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("freewall")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health probe
	healthHandler := &handlers.HealthHandler{Cfg: cfg, DB: db}
	app.Get("/health", healthHandler.Health)

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())
	api.Use(middleware.Identity())

	notesHandler := &handlers.NotesHandler{DB: db}
	usersHandler := &handlers.UsersHandler{DB: db}
	rolesHandler := &handlers.RolesHandler{DB: db}

	// Notes routes, gated per operation
	notes := api.Group("/notes")
	notes.Get("/", middleware.RequirePermission(db, services.PermReadNote), notesHandler.ListNotes)
	notes.Post("/", middleware.RequirePermission(db, services.PermCreateNote), notesHandler.CreateNote)
	notes.Put("/:id", middleware.RequirePermission(db, services.PermUpdateNote), notesHandler.UpdateNote)
	notes.Delete("/:id", middleware.RequirePermission(db, services.PermDeleteNote), notesHandler.DeleteNote)

	// User administration routes
	users := api.Group("/users", middleware.RequirePermission(db, services.PermManageUsers))
	users.Get("/", usersHandler.ListUsers)
	users.Post("/", usersHandler.CreateUser)
	users.Put("/:id", usersHandler.UpdateUser)
	users.Delete("/:id", usersHandler.DeleteUser)

	// Role administration routes
	roles := api.Group("/roles", middleware.RequirePermission(db, services.PermManageRoles))
	roles.Get("/", rolesHandler.ListRoles)
	roles.Get("/permissions", rolesHandler.ListPermissions)
	roles.Get("/:id/permissions", rolesHandler.GetRolePermissions)
	roles.Put("/:id/permissions", rolesHandler.ReplaceRolePermissions)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var customErr *types.CustomError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &customErr):
		code = customErr.Code
		message = customErr.Message
		errorType = customErr.Type
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
