package main

import (
	"github.com/gin-gonic/gin"
	"obra-connect.backend/internal/domain/policy"
	"obra-connect.backend/internal/interfaces/http/handlers"
	"obra-connect.backend/internal/interfaces/http/middleware"
	"obra-connect.backend/pkg/metrics"
	"obra-connect.backend/pkg/ratelimit"
)

type routeDeps struct {
	authHandler         *handlers.AuthHandler
	professionalHandler *handlers.ProfessionalHandler
	companyHandler      *handlers.CompanyHandler
	portfolioHandler    *handlers.PortfolioHandler
	indicationHandler   *handlers.IndicationHandler
	taxonomyHandler     *handlers.TaxonomyHandler
	uploadHandler       *handlers.UploadHandler
	adminHandler        *handlers.AdminHandler
	healthHandler       *handlers.HealthHandler

	authMiddleware     gin.HandlerFunc
	optionalMiddleware gin.HandlerFunc

	// nil disables the stage
	antiScraping gin.HandlerFunc
	limiter      ratelimit.Store

	metrics        *metrics.Metrics
	allowedOrigins []string
}

func newRouter(d routeDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware(d.metrics))
	r.Use(middleware.CORSMiddleware(d.allowedOrigins))

	registerHealthRoutes(r, d)
	registerAPIV1Routes(r, d)
	return r
}

func registerHealthRoutes(r *gin.Engine, d routeDeps) {
	r.GET("/health", d.healthHandler.Check)
	if d.metrics != nil {
		r.GET("/metrics", gin.WrapH(d.metrics.Handler()))
	}
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	if d.antiScraping != nil {
		v1.Use(d.antiScraping)
	}
	if d.limiter != nil {
		v1.Use(middleware.RateLimitMiddleware(d.limiter, d.metrics))
	}

	// Auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", d.authHandler.Register)
		auth.POST("/login", d.authHandler.Login)
		auth.POST("/forgot-password", d.authHandler.ForgotPassword)
		auth.POST("/reset-password", d.authHandler.ResetPassword)
		auth.GET("/profile", d.authMiddleware, d.authHandler.Profile)
		auth.PUT("/profile", d.authMiddleware, d.authHandler.UpdateProfile)
	}

	// Professional routes; reads are public with gated contact fields
	professionals := v1.Group("/professionals")
	{
		professionals.GET("", d.optionalMiddleware, d.professionalHandler.List)
		professionals.GET("/:id", d.optionalMiddleware, d.professionalHandler.Get)
		professionals.PUT("/:id", d.authMiddleware,
			middleware.RequireCapability(policy.ActionProfessionalUpdate), d.professionalHandler.Update)

		professionals.GET("/:id/portfolio", d.portfolioHandler.List)
		professionals.POST("/:id/portfolio", d.authMiddleware,
			middleware.RequireCapability(policy.ActionPortfolioManage),
			middleware.IdempotencyMiddleware(), d.portfolioHandler.Create)
		professionals.PUT("/:id/portfolio/:itemId", d.authMiddleware,
			middleware.RequireCapability(policy.ActionPortfolioManage), d.portfolioHandler.Update)
		professionals.DELETE("/:id/portfolio/:itemId", d.authMiddleware,
			middleware.RequireCapability(policy.ActionPortfolioManage), d.portfolioHandler.Delete)

		professionals.GET("/:id/indications", d.optionalMiddleware, d.indicationHandler.List)
		professionals.POST("/:id/indications", d.authMiddleware,
			middleware.RequireCapability(policy.ActionIndicationCreate), d.indicationHandler.Create)
	}

	companies := v1.Group("/companies")
	{
		companies.GET("", d.optionalMiddleware, d.companyHandler.List)
		companies.GET("/:id", d.optionalMiddleware, d.companyHandler.Get)
		companies.PUT("/:id", d.authMiddleware,
			middleware.RequireCapability(policy.ActionCompanyUpdate), d.companyHandler.Update)
	}

	// Reference data
	v1.GET("/categories", d.taxonomyHandler.ListCategories)
	v1.GET("/categories/:id/subcategories", d.taxonomyHandler.ListSubcategories)
	v1.GET("/cities", d.taxonomyHandler.ListCities)

	v1.POST("/uploads/images", d.authMiddleware,
		middleware.RequireCapability(policy.ActionImageUpload), d.uploadHandler.UploadImage)

	// Admin routes
	admin := v1.Group("/admin")
	admin.Use(d.authMiddleware)
	{
		admin.GET("/users", middleware.RequireCapability(policy.ActionUsersManage), d.adminHandler.ListUsers)
		admin.DELETE("/users/:id", middleware.RequireCapability(policy.ActionUsersManage), d.adminHandler.DeleteUser)
		admin.PATCH("/users/:id/toggle-status", middleware.RequireCapability(policy.ActionUsersManage), d.adminHandler.ToggleStatus)
		admin.GET("/stats", middleware.RequireCapability(policy.ActionStatsView), d.adminHandler.Stats)
	}
}
