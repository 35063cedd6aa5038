package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"obra-connect.backend/internal/config"
	"obra-connect.backend/internal/usecases"
)

func TestRunMainProcess_RedisFailure(t *testing.T) {
	withMainHooks(t)
	loadCfg = baseTestConfig
	initRedis = func(string, string) error { return errors.New("dial tcp: refused") }

	err := runMainProcess()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize redis")
}

func TestRunMainProcess_DatabaseFailure(t *testing.T) {
	withMainHooks(t)
	loadCfg = baseTestConfig
	initRedis = func(string, string) error { startRedis(t); return nil }
	openDB = func(config.DatabaseConfig) (*gorm.DB, *sql.DB, error) { return nil, nil, errors.New("no route to host") }

	err := runMainProcess()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to database")
}

func TestRunMainProcess_ImageHostFailure(t *testing.T) {
	withMainHooks(t)
	loadCfg = baseTestConfig
	initRedis = func(string, string) error { startRedis(t); return nil }
	openDB = func(config.DatabaseConfig) (*gorm.DB, *sql.DB, error) {
		db, sqlDB := newTestDB(t)
		return db, sqlDB, nil
	}
	newImageHost = func(context.Context, config.StorageConfig) (usecases.ImageHost, func() error, error) {
		return nil, nil, errors.New("invalid credentials file")
	}

	err := runMainProcess()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize image host")
}

func TestRunMainProcess_ServesUntilStopped(t *testing.T) {
	withMainHooks(t)
	withImageHost(t, nil)
	loadCfg = baseTestConfig
	initRedis = func(string, string) error { startRedis(t); return nil }
	openDB = func(config.DatabaseConfig) (*gorm.DB, *sql.DB, error) {
		db, sqlDB := newTestDB(t)
		return db, sqlDB, nil
	}

	var served *http.Server
	runServer = func(_ context.Context, srv *http.Server) error {
		served = srv
		return http.ErrServerClosed
	}

	require.NoError(t, runMainProcess())
	require.NotNil(t, served)
	assert.Equal(t, ":0", served.Addr)
	assert.NotNil(t, served.Handler)
}

func TestRunMainProcess_ServerError(t *testing.T) {
	withMainHooks(t)
	withImageHost(t, nil)
	loadCfg = baseTestConfig
	initRedis = func(string, string) error { startRedis(t); return nil }
	openDB = func(config.DatabaseConfig) (*gorm.DB, *sql.DB, error) {
		db, sqlDB := newTestDB(t)
		return db, sqlDB, nil
	}
	runServer = func(context.Context, *http.Server) error { return errors.New("address already in use") }

	err := runMainProcess()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "address already in use")
}
