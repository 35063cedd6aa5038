package repositories

import (
	"context"

	"github.com/google/uuid"
	"obra-connect.backend/internal/domain/entities"
)

// ProfessionalRepository defines professional profile operations
type ProfessionalRepository interface {
	Create(ctx context.Context, p *entities.Professional) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Professional, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Professional, error)
	// GetOwnerUserID resolves the user owning a professional record
	GetOwnerUserID(ctx context.Context, id uuid.UUID) (uuid.NullUUID, error)
	ExistsByCPF(ctx context.Context, cpf string) (bool, error)
	List(ctx context.Context, filter entities.ProfessionalFilter) ([]*entities.Professional, int64, error)
	Update(ctx context.Context, p *entities.Professional) error
	ReplaceSubcategories(ctx context.Context, id uuid.UUID, subcategoryIDs []string) error
	Count(ctx context.Context) (int64, error)
}
