package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"obra-connect.backend/internal/domain/entities"
	"obra-connect.backend/internal/infrastructure/models"
)

// IndicationRepository implements referral operations
type IndicationRepository struct {
	db *gorm.DB
}

// NewIndicationRepository creates a new indication repository
func NewIndicationRepository(db *gorm.DB) *IndicationRepository {
	return &IndicationRepository{db: db}
}

// Create records a referral; a repeated (from, to) pair yields ErrAlreadyExists
func (r *IndicationRepository) Create(ctx context.Context, ind *entities.Indication) error {
	m := &models.Indication{
		ID:                 ind.ID,
		FromProfessionalID: ind.FromProfessionalID,
		ToProfessionalID:   ind.ToProfessionalID,
		Message:            ind.Message,
		CreatedAt:          ind.CreatedAt,
	}
	return translateError(GetDB(ctx, r.db).Create(m).Error)
}

// Exists reports whether from already indicated to
func (r *IndicationRepository) Exists(ctx context.Context, fromID, toID uuid.UUID) (bool, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&models.Indication{}).
		Where("from_professional_id = ? AND to_professional_id = ?", fromID, toID).
		Count(&total).Error
	return total > 0, err
}

// ListByTarget returns indications received by toID whose referrer is still visible
func (r *IndicationRepository) ListByTarget(ctx context.Context, toID uuid.UUID) ([]*entities.Indication, error) {
	db := GetDB(ctx, r.db)

	var rows []models.Indication
	if err := db.Where("to_professional_id = ?", toID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []*entities.Indication{}, nil
	}

	fromIDs := make([]uuid.UUID, 0, len(rows))
	for _, m := range rows {
		fromIDs = append(fromIDs, m.FromProfessionalID)
	}
	var referrers []models.Professional
	if err := db.Scopes(visibleProfessionals).Where("professionals.id IN ?", fromIDs).Find(&referrers).Error; err != nil {
		return nil, err
	}
	hydrated, err := hydrateProfessionals(db, referrers)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*entities.Professional, len(hydrated))
	for _, p := range hydrated {
		byID[p.ID] = p
	}

	out := make([]*entities.Indication, 0, len(rows))
	for _, m := range rows {
		from, ok := byID[m.FromProfessionalID]
		if !ok {
			continue
		}
		out = append(out, &entities.Indication{
			ID:                 m.ID,
			FromProfessionalID: m.FromProfessionalID,
			ToProfessionalID:   m.ToProfessionalID,
			Message:            m.Message,
			From:               from,
			CreatedAt:          m.CreatedAt,
		})
	}
	return out, nil
}

// Count returns the number of indications
func (r *IndicationRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&models.Indication{}).Count(&total).Error
	return total, err
}
