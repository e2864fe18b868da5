package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/simplepro/simplepro-api/internal/application/auth"
	"github.com/simplepro/simplepro-api/internal/application/crm"
	"github.com/simplepro/simplepro-api/internal/application/scheduling"
	"github.com/simplepro/simplepro-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SessionUC  *auth.SessionUseCase
	AdminUC    *auth.AdminUseCase
	CustomerUC *crm.Service
	QuoteUC    *scheduling.QuoteUseCase
	JobUC      *scheduling.JobUseCase
	BusinessUC *usecase.BusinessUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.SessionUC, deps.CustomerUC, deps.QuoteUC, deps.JobUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	// Admin (login y validaciones públicas; el resto exige token admin)
	adminGroup := api.Group("/admin")
	adminHandler := NewAdminHandler(deps.AdminUC)
	adminGroup.Post("/login", adminHandler.Login)
	adminGroup.Post("/validate-credentials", adminHandler.ValidateCredentials)
	adminGroup.Post("/validate-session", adminHandler.ValidateSession)

	adminProtected := adminGroup.Group("/", AuthMiddleware(deps.JWTSecret), AdminOnly())
	adminProtected.Get("/config", adminHandler.Config)
	adminProtected.Post("/change-password", adminHandler.ChangePassword)
	adminProtected.Post("/test-user", adminHandler.CreateTestUser)
	adminProtected.Get("/test-user", adminHandler.GetTestUser)
	adminProtected.Delete("/test-user", adminHandler.DeleteTestUser)
	adminProtected.Get("/stats", adminHandler.SystemStats)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Sesión (protegido)
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Post("/auth/verify-email", authHandler.VerifyEmail)
	protected.Post("/auth/refresh", authHandler.Refresh)
	protected.Get("/auth/me", authHandler.Me)
	protected.Get("/auth/subscription/usage", authHandler.Usage)
	protected.Post("/auth/subscription/upgrade", authHandler.Upgrade)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	campaignHandler := NewCampaignHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/metrics", customerHandler.Metrics)
	customers.Get("/segments/:segment", customerHandler.BySegment)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)
	customers.Post("/:id/campaigns", campaignHandler.Add)
	customers.Delete("/:id/campaigns/:campaignId", campaignHandler.Remove)

	// Campaigns (protegido)
	campaigns := protected.Group("/campaigns")
	campaigns.Post("/bulk", campaignHandler.Bulk)
	campaigns.Post("/run-automatic", campaignHandler.RunAutomatic)
	campaigns.Get("/buckets", campaignHandler.Buckets)
	campaigns.Get("/statistics", campaignHandler.Statistics)
	campaigns.Get("/:type/customers", campaignHandler.CustomersByType)

	// Quotes (protegido)
	quotes := protected.Group("/quotes")
	quoteHandler := NewQuoteHandler(deps.QuoteUC, deps.JobUC)
	quotes.Post("/", quoteHandler.Create)
	quotes.Get("/", quoteHandler.List)
	quotes.Get("/:id", quoteHandler.GetByID)
	quotes.Put("/:id", quoteHandler.Update)
	quotes.Delete("/:id", quoteHandler.Delete)
	quotes.Post("/:id/convert", quoteHandler.Convert)
	quotes.Get("/:id/job", quoteHandler.Job)

	// Jobs (protegido)
	jobs := protected.Group("/jobs")
	jobHandler := NewJobHandler(deps.JobUC)
	jobs.Post("/", jobHandler.Create)
	jobs.Get("/", jobHandler.List)
	jobs.Get("/:id", jobHandler.GetByID)
	jobs.Put("/:id", jobHandler.Update)
	jobs.Patch("/:id/status", jobHandler.UpdateStatus)
	jobs.Delete("/:id", jobHandler.Delete)

	// Business profile (protegido)
	business := protected.Group("/business")
	businessHandler := NewBusinessHandler(deps.BusinessUC)
	business.Get("/profile", businessHandler.Get)
	business.Put("/profile", businessHandler.Update)
}
