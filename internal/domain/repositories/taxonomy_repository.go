package repositories

import (
	"context"

	"obra-connect.backend/internal/domain/entities"
)

// TaxonomyRepository serves the static categories and cities
type TaxonomyRepository interface {
	ListCategories(ctx context.Context) ([]*entities.Category, error)
	GetCategory(ctx context.Context, id string) (*entities.Category, error)
	ListSubcategories(ctx context.Context, categoryID string) ([]*entities.Subcategory, error)
	GetSubcategoriesByIDs(ctx context.Context, ids []string) ([]*entities.Subcategory, error)
	ListCities(ctx context.Context, state string) ([]*entities.City, error)

	UpsertCategories(ctx context.Context, categories []*entities.Category) error
	UpsertCities(ctx context.Context, cities []*entities.City) error
}
