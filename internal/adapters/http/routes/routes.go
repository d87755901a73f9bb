package routes

import (
	"assochub/internal/adapters/export"
	"assochub/internal/adapters/http/handlers"
	"assochub/internal/adapters/http/middleware"
	"assochub/internal/adapters/persistence/repositories"
	"assochub/internal/config"
	"assochub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	memberRepo := repositories.NewMemberRepository(db)
	reportRepo := repositories.NewReportRepository(db)
	taskRepo := repositories.NewTaskRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	memberService := services.NewMemberService(memberRepo)
	reportService := services.NewReportService(reportRepo)
	taskService := services.NewTaskService(taskRepo)

	// Exporter
	exporter := export.NewExcelExporter(memberRepo, reportRepo, taskRepo)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	memberHandler := handlers.NewMemberHandler(memberService)
	reportHandler := handlers.NewReportHandler(reportService)
	taskHandler := handlers.NewTaskHandler(taskService)
	exportHandler := handlers.NewExportHandler(exporter)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	memberRoutes := apiV1.Group("/members")
	memberRoutes.Use(middleware.AuthMiddleware(cfg))
	setupMemberRoutes(memberRoutes, memberHandler)

	reportRoutes := apiV1.Group("/reports")
	reportRoutes.Use(middleware.AuthMiddleware(cfg))
	setupReportRoutes(reportRoutes, reportHandler)

	taskRoutes := apiV1.Group("/tasks")
	taskRoutes.Use(middleware.AuthMiddleware(cfg))
	setupTaskRoutes(taskRoutes, taskHandler)

	exportRoutes := apiV1.Group("/export")
	exportRoutes.Use(middleware.AuthMiddleware(cfg))
	setupExportRoutes(exportRoutes, exportHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, h *handlers.AuthHandler, cfg *config.Config) {
	router.Use(middleware.NoCacheHeaders())

	// Public, with the stricter limiter against brute force
	router.Post("/login", middleware.AuthRateLimiter(), h.Login)
	router.Post("/refresh", h.RefreshToken)
	router.Post("/logout", h.Logout)

	// Authenticated
	router.Get("/me", middleware.AuthMiddleware(cfg), h.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), h.LogoutAll)

	// Admin creates staff accounts
	router.Post("/register", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), h.Register)
}

// setupMemberRoutes configures member routes
func setupMemberRoutes(router fiber.Router, h *handlers.MemberHandler) {
	router.Get("/", h.List)
	router.Post("/", h.Create)
	router.Get("/statistics", middleware.StatisticsCache(), h.Statistics)
	router.Post("/bulk-status", h.BulkUpdateStatus)
	router.Get("/code/:code", h.GetByCode)
	router.Get("/:id", h.Get)
	router.Put("/:id", h.Update)
	router.Delete("/:id", middleware.AdminOnly(), h.Delete)
	router.Post("/:id/deactivate", h.Deactivate)
	router.Post("/:id/activate", h.Activate)
}

// setupReportRoutes configures report routes
func setupReportRoutes(router fiber.Router, h *handlers.ReportHandler) {
	router.Get("/", h.List)
	router.Post("/", h.Create)
	router.Get("/statistics", middleware.StatisticsCache(), h.Statistics)
	router.Get("/:id", h.Get)
	router.Put("/:id", h.Update)
	router.Delete("/:id", h.Delete)
	router.Post("/:id/submit", h.Submit)

	// Approval decisions are admin-only
	router.Post("/:id/approve", middleware.AdminOnly(), h.Approve)
	router.Post("/:id/reject", middleware.AdminOnly(), h.Reject)
}

// setupTaskRoutes configures task routes
func setupTaskRoutes(router fiber.Router, h *handlers.TaskHandler) {
	router.Get("/", h.List)
	router.Post("/", h.Create)
	router.Get("/statistics", middleware.StatisticsCache(), h.Statistics)
	router.Get("/my-overview", h.MyOverview)
	router.Get("/:id", h.Get)
	router.Put("/:id", h.Update)
	router.Delete("/:id", middleware.AdminOnly(), h.Delete)
	router.Post("/:id/start", h.Start)
	router.Post("/:id/complete", h.Complete)
	router.Post("/:id/cancel", h.Cancel)
	router.Post("/:id/hold", h.Hold)
	router.Post("/:id/resume", h.Resume)
	router.Patch("/:id/progress", h.UpdateProgress)
	router.Post("/:id/assign", h.Assign)
}

// setupExportRoutes configures Excel export routes
func setupExportRoutes(router fiber.Router, h *handlers.ExportHandler) {
	router.Get("/members", h.Members)
	router.Get("/reports", h.Reports)
	router.Get("/tasks", h.Tasks)
}
