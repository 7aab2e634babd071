package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prasad217/Electric-Billing-system/internal/adapters/http/middleware"
	"github.com/prasad217/Electric-Billing-system/internal/adapters/http/routes"
	"github.com/prasad217/Electric-Billing-system/internal/adapters/persistence/models"
	"github.com/prasad217/Electric-Billing-system/internal/adapters/persistence/repositories"
	"github.com/prasad217/Electric-Billing-system/internal/config"
	"github.com/prasad217/Electric-Billing-system/internal/core/services"
	"github.com/prasad217/Electric-Billing-system/internal/core/sessions"
	"github.com/prasad217/Electric-Billing-system/internal/pkg/mailer"

	"github.com/gofiber/fiber/v2"

	_ "github.com/prasad217/Electric-Billing-system/docs" // Swagger docs
)

// @title Electricity Billing API
// @version 1.0
// @description Billing administration backend for an electricity-payment service.

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:3001
// @BasePath /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Connect to the session store
	rdb, err := config.ConnectRedis(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to redis: %v", err)
	}
	sessionStore := sessions.NewStore(rdb, cfg.Session.TTL)

	// Outbound mail + notification dispatcher
	smtpMailer := mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		Timeout:  cfg.SMTP.Timeout,
	})

	outboxRepo := repositories.NewOutboxRepository(db)
	notifier := services.NewNotificationService(outboxRepo, smtpMailer)
	notifier.Start()
	defer notifier.Stop()

	// Daily payment reminders
	reminderService := services.NewReminderService(
		repositories.NewBillRepository(db),
		repositories.NewUserRepository(db),
		outboxRepo,
		notifier,
	)
	reminderService.Start()
	defer reminderService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Electricity Billing API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, db, sessionStore, notifier, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
