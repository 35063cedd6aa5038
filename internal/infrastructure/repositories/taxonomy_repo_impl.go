package repositories

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"obra-connect.backend/internal/domain/entities"
	"obra-connect.backend/internal/infrastructure/models"
)

// TaxonomyRepository serves categories, subcategories and cities
type TaxonomyRepository struct {
	db *gorm.DB
}

// NewTaxonomyRepository creates a new taxonomy repository
func NewTaxonomyRepository(db *gorm.DB) *TaxonomyRepository {
	return &TaxonomyRepository{db: db}
}

// ListCategories returns every category with its subcategories, by name
func (r *TaxonomyRepository) ListCategories(ctx context.Context) ([]*entities.Category, error) {
	var rows []models.Category
	err := GetDB(ctx, r.db).
		Preload("Subcategories", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		Order("name").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*entities.Category, 0, len(rows))
	for i := range rows {
		c := toCategoryEntity(&rows[i])
		out = append(out, &c)
	}
	return out, nil
}

// GetCategory returns one category with its subcategories
func (r *TaxonomyRepository) GetCategory(ctx context.Context, id string) (*entities.Category, error) {
	var m models.Category
	err := GetDB(ctx, r.db).
		Preload("Subcategories", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, translateError(err)
	}
	c := toCategoryEntity(&m)
	return &c, nil
}

// ListSubcategories returns the subcategories of a category
func (r *TaxonomyRepository) ListSubcategories(ctx context.Context, categoryID string) ([]*entities.Subcategory, error) {
	var rows []models.Subcategory
	if err := GetDB(ctx, r.db).Where("category_id = ?", categoryID).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toSubcategoryEntities(rows), nil
}

// GetSubcategoriesByIDs returns the subcategories found among ids
func (r *TaxonomyRepository) GetSubcategoriesByIDs(ctx context.Context, ids []string) ([]*entities.Subcategory, error) {
	if len(ids) == 0 {
		return []*entities.Subcategory{}, nil
	}
	var rows []models.Subcategory
	if err := GetDB(ctx, r.db).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toSubcategoryEntities(rows), nil
}

// ListCities returns cities, optionally restricted to one state
func (r *TaxonomyRepository) ListCities(ctx context.Context, state string) ([]*entities.City, error) {
	query := GetDB(ctx, r.db).Model(&models.City{})
	if state != "" {
		query = query.Where("state = ?", strings.ToUpper(strings.TrimSpace(state)))
	}

	var rows []models.City
	if err := query.Order("state, name").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*entities.City, 0, len(rows))
	for _, m := range rows {
		out = append(out, &entities.City{ID: m.ID, Name: m.Name, State: m.State})
	}
	return out, nil
}

// UpsertCategories inserts or refreshes categories and their subcategories
func (r *TaxonomyRepository) UpsertCategories(ctx context.Context, categories []*entities.Category) error {
	if len(categories) == 0 {
		return nil
	}
	now := time.Now()
	cats := make([]models.Category, 0, len(categories))
	var subs []models.Subcategory
	for _, c := range categories {
		cats = append(cats, models.Category{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Icon:        c.Icon,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		for _, s := range c.Subcategories {
			subs = append(subs, models.Subcategory{
				ID:         s.ID,
				CategoryID: c.ID,
				Name:       s.Name,
				CreatedAt:  now,
				UpdatedAt:  now,
			})
		}
	}

	db := GetDB(ctx, r.db)
	upsert := clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "icon", "updated_at"}),
	}
	if err := db.Omit(clause.Associations).Clauses(upsert).Create(&cats).Error; err != nil {
		return err
	}
	if len(subs) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"category_id", "name", "updated_at"}),
	}).Create(&subs).Error
}

// UpsertCities inserts or refreshes cities
func (r *TaxonomyRepository) UpsertCities(ctx context.Context, cities []*entities.City) error {
	if len(cities) == 0 {
		return nil
	}
	now := time.Now()
	rows := make([]models.City, 0, len(cities))
	for _, c := range cities {
		rows = append(rows, models.City{ID: c.ID, Name: c.Name, State: strings.ToUpper(c.State), CreatedAt: now, UpdatedAt: now})
	}
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "state", "updated_at"}),
	}).Create(&rows).Error
}

func toCategoryEntity(m *models.Category) entities.Category {
	c := entities.Category{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Icon:        m.Icon,
	}
	for i := range m.Subcategories {
		c.Subcategories = append(c.Subcategories, toSubcategoryEntity(&m.Subcategories[i]))
	}
	return c
}

func toSubcategoryEntity(m *models.Subcategory) entities.Subcategory {
	return entities.Subcategory{ID: m.ID, CategoryID: m.CategoryID, Name: m.Name}
}

func toSubcategoryEntities(rows []models.Subcategory) []*entities.Subcategory {
	out := make([]*entities.Subcategory, 0, len(rows))
	for i := range rows {
		s := toSubcategoryEntity(&rows[i])
		out = append(out, &s)
	}
	return out
}
