package routes

import (
	"github.com/prasad217/Electric-Billing-system/internal/adapters/http/handlers"
	"github.com/prasad217/Electric-Billing-system/internal/adapters/http/middleware"
	"github.com/prasad217/Electric-Billing-system/internal/adapters/persistence/repositories"
	"github.com/prasad217/Electric-Billing-system/internal/config"
	"github.com/prasad217/Electric-Billing-system/internal/core/services"
	"github.com/prasad217/Electric-Billing-system/internal/core/sessions"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(
	app *fiber.App,
	db *gorm.DB,
	sessionStore *sessions.Store,
	notifier *services.NotificationService,
	cfg *config.Config,
) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	adminRepo := repositories.NewAdminRepository(db)
	billRepo := repositories.NewBillRepository(db)
	outboxRepo := repositories.NewOutboxRepository(db)

	// Initialize services
	accountService := services.NewAccountService(userRepo, adminRepo, sessionStore)
	billService := services.NewBillService(db, userRepo, billRepo, outboxRepo, notifier)
	paymentService := services.NewPaymentService(billRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	accountHandler := handlers.NewAccountHandler(accountService, cfg)
	billHandler := handlers.NewBillHandler(billService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	// Health & docs
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// User routes
	app.Post("/user/register", accountHandler.RegisterUser)
	app.Post("/user/login", accountHandler.LoginUser)
	app.Get("/user/:userId/bill", billHandler.GetLatestBill)
	app.Post("/user/pay", paymentHandler.PayBill)

	// Admin routes. Only the listing is gated behind the admin session.
	app.Post("/admin/register", accountHandler.RegisterAdmin)
	app.Post("/admin/login", accountHandler.LoginAdmin)
	app.Get("/admin/users", middleware.AdminRequired(sessionStore), accountHandler.ListUsers)
	app.Post("/admin/generate-bill", billHandler.GenerateBill)
}
