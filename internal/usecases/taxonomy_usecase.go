package usecases

import (
	"context"
	"errors"
	"strings"

	"obra-connect.backend/internal/domain/entities"
	domainerrors "obra-connect.backend/internal/domain/errors"
	"obra-connect.backend/internal/domain/repositories"
)

// TaxonomyUsecase serves categories, subcategories and cities
type TaxonomyUsecase struct {
	taxonomyRepo repositories.TaxonomyRepository
}

// NewTaxonomyUsecase creates a new taxonomy usecase
func NewTaxonomyUsecase(taxonomyRepo repositories.TaxonomyRepository) *TaxonomyUsecase {
	return &TaxonomyUsecase{taxonomyRepo: taxonomyRepo}
}

func (u *TaxonomyUsecase) ListCategories(ctx context.Context) ([]*entities.Category, error) {
	return u.taxonomyRepo.ListCategories(ctx)
}

func (u *TaxonomyUsecase) ListSubcategories(ctx context.Context, categoryID string) ([]*entities.Subcategory, error) {
	if _, err := u.taxonomyRepo.GetCategory(ctx, categoryID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("category not found")
		}
		return nil, err
	}
	return u.taxonomyRepo.ListSubcategories(ctx, categoryID)
}

func (u *TaxonomyUsecase) ListCities(ctx context.Context, state string) ([]*entities.City, error) {
	return u.taxonomyRepo.ListCities(ctx, strings.TrimSpace(state))
}

// Seed upserts reference data; running it twice changes nothing
func (u *TaxonomyUsecase) Seed(ctx context.Context, categories []*entities.Category, cities []*entities.City) error {
	if err := u.taxonomyRepo.UpsertCategories(ctx, categories); err != nil {
		return err
	}
	return u.taxonomyRepo.UpsertCities(ctx, cities)
}
