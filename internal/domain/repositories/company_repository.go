package repositories

import (
	"context"

	"github.com/google/uuid"
	"obra-connect.backend/internal/domain/entities"
)

// CompanyRepository defines company profile operations
type CompanyRepository interface {
	Create(ctx context.Context, c *entities.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Company, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Company, error)
	GetOwnerUserID(ctx context.Context, id uuid.UUID) (uuid.NullUUID, error)
	ExistsByCNPJ(ctx context.Context, cnpj string) (bool, error)
	List(ctx context.Context, filter entities.CompanyFilter) ([]*entities.Company, int64, error)
	Update(ctx context.Context, c *entities.Company) error
	Count(ctx context.Context) (int64, error)
}
