package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"obra-connect.backend/internal/domain/entities"
	"obra-connect.backend/internal/infrastructure/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err, "open sqlite")
	require.NoError(t, db.AutoMigrate(models.All()...), "migrate")
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func seedTaxonomy(t *testing.T, db *gorm.DB) {
	t.Helper()
	repo := NewTaxonomyRepository(db)
	require.NoError(t, repo.UpsertCategories(context.Background(), []*entities.Category{
		{ID: "cat-1", Name: "Construção", Subcategories: []entities.Subcategory{
			{ID: "sub-1", Name: "Alvenaria"},
			{ID: "sub-2", Name: "Acabamento"},
		}},
		{ID: "cat-2", Name: "Elétrica", Subcategories: []entities.Subcategory{
			{ID: "sub-3", Name: "Instalações"},
		}},
	}))
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role entities.UserRole, active bool) *entities.User {
	t.Helper()
	now := time.Now()
	u := &entities.User{
		ID:           uuid.New(),
		Name:         "User " + email,
		Email:        email,
		PasswordHash: "hash",
		Role:         role,
		Active:       active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func createTestProfessional(t *testing.T, db *gorm.DB, owner *entities.User, city string) *entities.Professional {
	t.Helper()
	now := time.Now()
	p := &entities.Professional{
		ID:          uuid.New(),
		Name:        "Pro",
		CategoryID:  "cat-1",
		City:        city,
		State:       "GO",
		Description: "pedreiro experiente",
		Experience:  "10 anos",
		Education:   "técnico",
		Phone:       null.StringFrom("62999990000"),
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if owner != nil {
		p.UserID = uuid.NullUUID{UUID: owner.ID, Valid: true}
		p.Name = owner.Name
	}
	require.NoError(t, NewProfessionalRepository(db).Create(context.Background(), p))
	return p
}
