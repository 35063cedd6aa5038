package repositories

import (
	"context"

	"github.com/google/uuid"
	"obra-connect.backend/internal/domain/entities"
)

// IndicationRepository defines referral operations
type IndicationRepository interface {
	Create(ctx context.Context, ind *entities.Indication) error
	Exists(ctx context.Context, fromID, toID uuid.UUID) (bool, error)
	// ListByTarget returns indications received, with the referrer loaded
	ListByTarget(ctx context.Context, toID uuid.UUID) ([]*entities.Indication, error)
	Count(ctx context.Context) (int64, error)
}
