package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"obra-connect.backend/internal/config"
	"obra-connect.backend/internal/domain/entities"
	"obra-connect.backend/internal/infrastructure/models"
	"obra-connect.backend/internal/infrastructure/storage"
	"obra-connect.backend/internal/usecases"
	"obra-connect.backend/pkg/logger"
	"obra-connect.backend/pkg/redis"
)

const browserUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_4) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15"

func baseTestConfig() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Port: "0", Env: "test", AllowedOrigins: []string{"http://localhost:5173"}},
		Database: config.DatabaseConfig{AutoMigrate: true},
		JWT:      config.JWTConfig{Secret: "e2e-secret", Expiry: time.Hour},
		RateLimit: config.RateLimitConfig{
			Enabled: true, Backend: "memory", Requests: 1000, Window: time.Minute,
		},
		AntiScraping: config.AntiScrapingConfig{
			Enabled:       true,
			BlockedAgents: []string{"curl", "wget", "python-requests", "scrapy"},
		},
		Storage:       config.StorageConfig{MaxUploadBytes: 1 << 20},
		PasswordReset: config.PasswordResetConfig{CodeTTL: 15 * time.Minute, MaxAttempts: 5},
	}
}

func newTestDB(t *testing.T) (*gorm.DB, *sql.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db, sqlDB
}

func startRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	srv := miniredis.RunT(t)
	cli := redisv9.NewClient(&redisv9.Options{Addr: srv.Addr()})
	redis.SetClient(cli)
	t.Cleanup(func() { _ = cli.Close() })
	return srv
}

type memoryImageHost struct {
	uploads map[string][]byte
	deleted []string
}

func (h *memoryImageHost) Upload(_ context.Context, r io.Reader, folder, filename, _ string) (*entities.UploadedImage, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	id := folder + "/" + filename
	h.uploads[id] = b
	return &entities.UploadedImage{URL: "https://img.test/" + id, ID: id}, nil
}

func (h *memoryImageHost) Delete(_ context.Context, id string) error {
	h.deleted = append(h.deleted, id)
	return nil
}

func withMainHooks(t *testing.T) {
	t.Helper()
	origDotenv, origCfg, origLog, origRedis := loadDotenv, loadCfg, initLog, initRedis
	origOpen, origImages, origRun := openDB, newImageHost, runServer
	t.Cleanup(func() {
		loadDotenv, loadCfg, initLog, initRedis = origDotenv, origCfg, origLog, origRedis
		openDB, newImageHost, runServer = origOpen, origImages, origRun
	})
	loadDotenv = func(...string) error { return nil }
	initLog = logger.Init
}

func withImageHost(t *testing.T, host usecases.ImageHost) {
	t.Helper()
	orig := newImageHost
	t.Cleanup(func() { newImageHost = orig })
	newImageHost = func(context.Context, config.StorageConfig) (usecases.ImageHost, func() error, error) {
		if host == nil {
			return nil, nil, storage.ErrNotConfigured
		}
		return host, func() error { return nil }, nil
	}
}

func migrate(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.AutoMigrate(models.All()...))
}
