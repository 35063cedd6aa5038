package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"obra-connect.backend/internal/config"
	"obra-connect.backend/internal/infrastructure/cache"
	"obra-connect.backend/internal/infrastructure/datasources/postgres"
	"obra-connect.backend/internal/infrastructure/mail"
	"obra-connect.backend/internal/infrastructure/models"
	"obra-connect.backend/internal/infrastructure/repositories"
	"obra-connect.backend/internal/infrastructure/storage"
	"obra-connect.backend/internal/interfaces/http/handlers"
	"obra-connect.backend/internal/interfaces/http/middleware"
	"obra-connect.backend/internal/interfaces/http/response"
	"obra-connect.backend/internal/usecases"
	"obra-connect.backend/pkg/jwt"
	"obra-connect.backend/pkg/logger"
	"obra-connect.backend/pkg/metrics"
	"obra-connect.backend/pkg/ratelimit"
	"obra-connect.backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(cfg config.DatabaseConfig) (*gorm.DB, *sql.DB, error) {
		sqlDB, err := postgres.NewConnection(cfg)
		if err != nil {
			return nil, nil, err
		}
		db, err := postgres.OpenGorm(sqlDB)
		if err != nil {
			_ = sqlDB.Close()
			return nil, nil, err
		}
		return db, sqlDB, nil
	}
	newImageHost = func(ctx context.Context, cfg config.StorageConfig) (usecases.ImageHost, func() error, error) {
		host, err := storage.NewGCSImageHost(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return host, host.Close, nil
	}
	runServer = func(ctx context.Context, srv *http.Server) error {
		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe() }()
		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	}
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(ctx, "Redis initialized")

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	response.SetDebug(!cfg.Server.IsProduction())

	db, sqlDB, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer sqlDB.Close()
	logger.Info(ctx, "Connected to PostgreSQL")

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(models.All()...); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info(ctx, "Database schema migrated")
	}

	app, err := buildApp(ctx, cfg, db, sqlDB)
	if err != nil {
		return err
	}
	defer app.close()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Obra Connect backend starting",
		zap.String("port", cfg.Server.Port),
		zap.Int("routes", len(app.router.Routes())),
	)
	if err := runServer(sigCtx, srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	logger.Info(ctx, "Server stopped")
	return nil
}

type application struct {
	router  *gin.Engine
	closers []func() error
}

func (a *application) close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			logger.Warn(context.Background(), "Shutdown step failed", zap.Error(err))
		}
	}
}

// buildApp wires repositories, usecases and handlers around an open database
func buildApp(ctx context.Context, cfg *config.Config, db *gorm.DB, sqlDB *sql.DB) (*application, error) {
	app := &application{}
	m := metrics.New()

	userRepo := repositories.NewUserRepository(db)
	professionalRepo := repositories.NewProfessionalRepository(db)
	companyRepo := repositories.NewCompanyRepository(db)
	portfolioRepo := repositories.NewPortfolioRepository(db)
	indicationRepo := repositories.NewIndicationRepository(db)
	taxonomyRepo := repositories.NewTaxonomyRepository(db)
	uow := repositories.NewUnitOfWork(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)

	var images usecases.ImageHost = storage.UnavailableImageHost{}
	host, closeHost, err := newImageHost(ctx, cfg.Storage)
	switch {
	case err == nil:
		images = host
		app.closers = append(app.closers, closeHost)
	case errors.Is(err, storage.ErrNotConfigured):
		logger.Warn(ctx, "Image hosting not configured, uploads are disabled")
	default:
		return nil, fmt.Errorf("failed to initialize image host: %w", err)
	}

	var mailer usecases.Mailer = mail.LogMailer{}
	if cfg.Mail.SendGridAPIKey != "" {
		mailer = mail.NewSendGridMailer(cfg.Mail)
	} else {
		logger.Warn(ctx, "SendGrid not configured, emails are only logged")
	}

	var limiter ratelimit.Store
	if cfg.RateLimit.Enabled {
		limit := ratelimit.Limit{Requests: cfg.RateLimit.Requests, Window: cfg.RateLimit.Window}
		if cfg.RateLimit.Backend == "redis" {
			limiter = ratelimit.NewRedisStore(redis.GetClient(), limit)
		} else {
			mem := ratelimit.NewMemoryStore(limit, 0)
			app.closers = append(app.closers, func() error { mem.Stop(); return nil })
			limiter = mem
		}
	}

	guard := usecases.NewOwnershipGuard(professionalRepo, companyRepo)
	authUsecase := usecases.NewAuthUsecase(userRepo, professionalRepo, companyRepo, taxonomyRepo, uow, jwtService)
	resetUsecase := usecases.NewPasswordResetUsecase(userRepo, cache.NewResetCodeStore(), mailer, cfg.PasswordReset.CodeTTL, cfg.PasswordReset.MaxAttempts)
	professionalUsecase := usecases.NewProfessionalUsecase(professionalRepo, taxonomyRepo, uow, guard)
	companyUsecase := usecases.NewCompanyUsecase(companyRepo, guard)
	portfolioUsecase := usecases.NewPortfolioUsecase(portfolioRepo, professionalRepo, guard, images)
	indicationUsecase := usecases.NewIndicationUsecase(indicationRepo, professionalRepo)
	taxonomyUsecase := usecases.NewTaxonomyUsecase(taxonomyRepo)
	adminUsecase := usecases.NewAdminUsecase(userRepo, professionalRepo, companyRepo, portfolioRepo, indicationRepo)
	uploadUsecase := usecases.NewUploadUsecase(images, cfg.Storage.MaxUploadBytes)

	d := routeDeps{
		authHandler:         handlers.NewAuthHandler(authUsecase, resetUsecase),
		professionalHandler: handlers.NewProfessionalHandler(professionalUsecase),
		companyHandler:      handlers.NewCompanyHandler(companyUsecase),
		portfolioHandler:    handlers.NewPortfolioHandler(portfolioUsecase),
		indicationHandler:   handlers.NewIndicationHandler(indicationUsecase),
		taxonomyHandler:     handlers.NewTaxonomyHandler(taxonomyUsecase),
		uploadHandler:       handlers.NewUploadHandler(uploadUsecase),
		adminHandler:        handlers.NewAdminHandler(adminUsecase),
		healthHandler:       handlers.NewHealthHandler(sqlDB),
		authMiddleware:      middleware.AuthMiddleware(jwtService, userRepo, m),
		optionalMiddleware:  middleware.OptionalAuthMiddleware(jwtService, userRepo),
		limiter:             limiter,
		metrics:             m,
		allowedOrigins:      cfg.Server.AllowedOrigins,
	}
	if cfg.AntiScraping.Enabled {
		d.antiScraping = middleware.AntiScrapingMiddleware(cfg.AntiScraping.BlockedAgents, cfg.Server.AllowedOrigins, m)
	}

	app.router = newRouter(d)
	return app, nil
}
