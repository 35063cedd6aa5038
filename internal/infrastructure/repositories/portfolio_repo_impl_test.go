package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"obra-connect.backend/internal/domain/entities"
	domainerrors "obra-connect.backend/internal/domain/errors"
)

func TestPortfolioRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	seedTaxonomy(t, db)
	repo := NewPortfolioRepository(db)
	ctx := context.Background()

	pro := createTestProfessional(t, db, nil, "Goiânia")
	item := &entities.PortfolioItem{
		ID:             uuid.New(),
		ProfessionalID: pro.ID,
		Title:          "Casa térrea",
		Description:    "obra completa",
		Images:         []entities.PortfolioImage{{URL: "https://cdn/a.jpg", ID: "portfolio/a"}},
		ProjectType:    "residencial",
		ProjectArea:    "120m²",
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	require.NoError(t, repo.Create(ctx, item))

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.Images, got.Images)
	assert.Equal(t, "120m²", got.ProjectArea)

	got.Title = "Casa térrea reformada"
	got.Images = append(got.Images, entities.PortfolioImage{URL: "https://cdn/b.jpg", ID: "portfolio/b"})
	require.NoError(t, repo.Update(ctx, got))

	list, err := repo.ListByProfessional(ctx, pro.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Casa térrea reformada", list[0].Title)
	assert.Len(t, list[0].Images, 2)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.Delete(ctx, item.ID))
	_, err = repo.GetByID(ctx, item.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, item.ID), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.Update(ctx, item), domainerrors.ErrNotFound)
}
