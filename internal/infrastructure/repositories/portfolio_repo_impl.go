package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"obra-connect.backend/internal/domain/entities"
	domainerrors "obra-connect.backend/internal/domain/errors"
	"obra-connect.backend/internal/infrastructure/models"
)

// PortfolioRepository implements portfolio item operations
type PortfolioRepository struct {
	db *gorm.DB
}

// NewPortfolioRepository creates a new portfolio repository
func NewPortfolioRepository(db *gorm.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// Create creates a new portfolio item
func (r *PortfolioRepository) Create(ctx context.Context, item *entities.PortfolioItem) error {
	return translateError(GetDB(ctx, r.db).Create(toPortfolioModel(item)).Error)
}

// GetByID gets a portfolio item by ID
func (r *PortfolioRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.PortfolioItem, error) {
	var m models.PortfolioItem
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return toPortfolioEntity(&m), nil
}

// ListByProfessional returns a professional's items, newest first
func (r *PortfolioRepository) ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*entities.PortfolioItem, error) {
	var rows []models.PortfolioItem
	err := GetDB(ctx, r.db).
		Where("professional_id = ?", professionalID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*entities.PortfolioItem, 0, len(rows))
	for i := range rows {
		out = append(out, toPortfolioEntity(&rows[i]))
	}
	return out, nil
}

// Update writes every mutable item column
func (r *PortfolioRepository) Update(ctx context.Context, item *entities.PortfolioItem) error {
	updates := map[string]interface{}{
		"title":            item.Title,
		"description":      item.Description,
		"images":           toPortfolioImages(item.Images),
		"project_type":     item.ProjectType,
		"project_area":     item.ProjectArea,
		"project_duration": item.ProjectDuration,
		"updated_at":       time.Now(),
	}
	result := GetDB(ctx, r.db).Model(&models.PortfolioItem{}).Where("id = ?", item.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete hard deletes an item
func (r *PortfolioRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Delete(&models.PortfolioItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Count returns the number of portfolio items
func (r *PortfolioRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&models.PortfolioItem{}).Count(&total).Error
	return total, err
}

func toPortfolioImages(images []entities.PortfolioImage) models.PortfolioImages {
	out := make(models.PortfolioImages, 0, len(images))
	for _, img := range images {
		out = append(out, models.PortfolioImage{URL: img.URL, ID: img.ID})
	}
	return out
}

func toPortfolioModel(item *entities.PortfolioItem) *models.PortfolioItem {
	return &models.PortfolioItem{
		ID:              item.ID,
		ProfessionalID:  item.ProfessionalID,
		Title:           item.Title,
		Description:     item.Description,
		Images:          toPortfolioImages(item.Images),
		ProjectType:     item.ProjectType,
		ProjectArea:     item.ProjectArea,
		ProjectDuration: item.ProjectDuration,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}

func toPortfolioEntity(m *models.PortfolioItem) *entities.PortfolioItem {
	images := make([]entities.PortfolioImage, 0, len(m.Images))
	for _, img := range m.Images {
		images = append(images, entities.PortfolioImage{URL: img.URL, ID: img.ID})
	}
	return &entities.PortfolioItem{
		ID:              m.ID,
		ProfessionalID:  m.ProfessionalID,
		Title:           m.Title,
		Description:     m.Description,
		Images:          images,
		ProjectType:     m.ProjectType,
		ProjectArea:     m.ProjectArea,
		ProjectDuration: m.ProjectDuration,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
