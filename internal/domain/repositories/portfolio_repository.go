package repositories

import (
	"context"

	"github.com/google/uuid"
	"obra-connect.backend/internal/domain/entities"
)

// PortfolioRepository defines portfolio item operations
type PortfolioRepository interface {
	Create(ctx context.Context, item *entities.PortfolioItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.PortfolioItem, error)
	ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*entities.PortfolioItem, error)
	Update(ctx context.Context, item *entities.PortfolioItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
