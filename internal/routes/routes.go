package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/medatlas/medatlas-backend/internal/config"
	"github.com/medatlas/medatlas-backend/internal/handlers"
	"github.com/medatlas/medatlas-backend/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	callbackHandler *handlers.CallbackHandler,
	directoryHandler *handlers.DirectoryHandler,
	doctorHandler *handlers.DoctorHandler,
	patientHandler *handlers.PatientHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
) {
	// Browser-facing auth redirects live outside /api.
	app.Get("/auth/oauth/google", callbackHandler.GoogleRedirect)
	app.Get("/auth/callback", callbackHandler.Callback)

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Public directory
	api.Get("/directory/doctors", directoryHandler.ListDoctors)
	api.Get("/directory/doctors/:slug", directoryHandler.GetDoctor)

	// Auth routes are public but carry a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/login/link", authHandler.RequestLoginLink)
	auth.Post("/password/reset", authHandler.RequestPasswordReset)
	auth.Put("/password", authHandler.UpdatePassword)

	// Protected auth routes
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Get("/auth/me", middleware.JWTProtected(cfg), authHandler.Me)

	// Doctor self-service. Reads only need the role row; writes additionally
	// need an approved status.
	doctor := api.Group("/doctor", middleware.JWTProtected(cfg), middleware.RequireDoctor(db))
	doctor.Get("/me", doctorHandler.Me)
	doctor.Get("/articles", doctorHandler.ListArticles)
	doctor.Get("/locations", doctorHandler.ListLocations)

	approved := doctor.Group("", middleware.RequireApprovedDoctor())
	approved.Put("/profile", doctorHandler.UpdateProfile)
	approved.Post("/profile/image", doctorHandler.UploadProfileImage)
	approved.Post("/articles", doctorHandler.CreateArticle)
	approved.Put("/articles/:id", doctorHandler.UpdateArticle)
	approved.Delete("/articles/:id", doctorHandler.DeleteArticle)
	approved.Post("/locations", doctorHandler.CreateLocation)
	approved.Put("/locations/:id", doctorHandler.UpdateLocation)
	approved.Delete("/locations/:id", doctorHandler.DeleteLocation)

	// Patient self-service
	patient := api.Group("/patient", middleware.JWTProtected(cfg), middleware.RequirePatient(db))
	patient.Get("/me", patientHandler.Me)
	patient.Put("/profile", patientHandler.UpdateProfile)

	// Admin moderation panel
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.RequireAdmin(db, cfg))
	admin.Get("/doctors", adminHandler.ListDoctors)
	admin.Put("/doctors/:id/status", adminHandler.SetDoctorStatus)
	admin.Put("/doctors/:id/tier", adminHandler.SetDoctorTier)
	admin.Get("/stats", adminHandler.Stats)
}
