package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ecotriz/cee-visits/internal/api/handler"
	"github.com/ecotriz/cee-visits/internal/api/middleware"
	"github.com/ecotriz/cee-visits/internal/core/domain"
	"github.com/ecotriz/cee-visits/internal/core/ports"
	"github.com/ecotriz/cee-visits/internal/core/service"
	"github.com/ecotriz/cee-visits/internal/infrastructure/config"
	mongostore "github.com/ecotriz/cee-visits/internal/infrastructure/db/mongo"
	redisstore "github.com/ecotriz/cee-visits/internal/infrastructure/db/redis"
	"github.com/ecotriz/cee-visits/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *goredis.Client, notifier ports.Notifier, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, !cfg.IsProduction())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("cee"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	clientRepo := mongostore.NewClientRepository(db)
	visitRepo := mongostore.NewVisitRepository(db)
	denylist := redisstore.NewTokenDenylist(rdb)

	authService := service.NewAuthService(userRepo, clientRepo, notifier, denylist, cfg.JWTSecret, cfg.TokenTTL, log)
	userService := service.NewUserService(userRepo, clientRepo, log)
	clientService := service.NewClientService(clientRepo, log)
	visitService := service.NewVisitService(visitRepo, clientRepo, cfg.CEERate, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	clientHandler := handler.NewClientHandler(clientService)
	visitHandler := handler.NewVisitHandler(visitService)
	calculatorHandler := handler.NewCalculatorHandler(cfg.CEERate)

	authn := middleware.Auth(cfg.JWTSecret, userRepo, denylist)
	anyRole := middleware.RBAC(domain.RoleAdmin, domain.RoleClientAdmin, domain.RoleTechnician)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	adminOrClientAdmin := middleware.RBAC(domain.RoleAdmin, domain.RoleClientAdmin)

	// --- Auth routes ---
	auth := e.Group("/v1/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)
	auth.POST("/logout", authHandler.Logout, authn)

	// --- User administration ---
	users := e.Group("/v1/users", authn, adminOrClientAdmin)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	// --- Self-service profile ---
	profile := e.Group("/v1/profile", authn, anyRole)
	profile.GET("", userHandler.Profile)
	profile.PUT("", userHandler.UpdateProfile)
	profile.PUT("/password", authHandler.ChangePassword)

	// --- Clients ---
	clients := e.Group("/v1/clients", authn)
	clients.POST("", clientHandler.Create, adminOnly)
	clients.GET("", clientHandler.List, adminOrClientAdmin)
	clients.GET("/:clientId", clientHandler.Get, adminOrClientAdmin)
	clients.PUT("/:clientId", clientHandler.Update, adminOnly)
	clients.DELETE("/:clientId", clientHandler.Delete, adminOnly)

	// --- Visits ---
	visits := e.Group("/v1/visits", authn, anyRole)
	visits.POST("", visitHandler.Create, adminOrClientAdmin)
	visits.GET("", visitHandler.List)
	visits.GET("/:id", visitHandler.Get)
	visits.PUT("/:id", visitHandler.Update)
	visits.PATCH("/:id/status", visitHandler.UpdateStatus)
	visits.DELETE("/:id", visitHandler.Delete, adminOnly)

	// --- Reports ---
	e.GET("/v1/reports/summary", visitHandler.ReportSummary, authn, adminOrClientAdmin)

	// --- Calculator ---
	calculator := e.Group("/v1/calculator", authn, anyRole)
	calculator.GET("/operations", calculatorHandler.Operations)
	calculator.POST("/estimate", calculatorHandler.Estimate)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
