package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"obra-connect.backend/internal/domain/entities"
	domainerrors "obra-connect.backend/internal/domain/errors"
	"obra-connect.backend/internal/infrastructure/models"
)

// CompanyRepository implements company profile operations
type CompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func visibleCompanies(db *gorm.DB) *gorm.DB {
	activeUsers := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.User{}).
		Select("id").
		Where("active = ?", true)
	return db.Where("companies.active = ?", true).
		Where("(companies.user_id IS NULL OR companies.user_id IN (?))", activeUsers)
}

// Create creates a new company
func (r *CompanyRepository) Create(ctx context.Context, c *entities.Company) error {
	return translateError(GetDB(ctx, r.db).Create(toCompanyModel(c)).Error)
}

// GetByID returns a visible company
func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Company, error) {
	db := GetDB(ctx, r.db)
	var m models.Company
	if err := db.Scopes(visibleCompanies).Where("companies.id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	out, err := hydrateCompanies(db, []models.Company{m})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// GetByUserID returns the company owned by userID
func (r *CompanyRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Company, error) {
	db := GetDB(ctx, r.db)
	var m models.Company
	if err := db.Where("user_id = ?", userID).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	out, err := hydrateCompanies(db, []models.Company{m})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// GetOwnerUserID resolves the owning user of a company record
func (r *CompanyRepository) GetOwnerUserID(ctx context.Context, id uuid.UUID) (uuid.NullUUID, error) {
	var m models.Company
	if err := GetDB(ctx, r.db).Select("id", "user_id").Where("id = ?", id).First(&m).Error; err != nil {
		return uuid.NullUUID{}, translateError(err)
	}
	return m.UserID, nil
}

// ExistsByCNPJ reports whether the CNPJ is already registered
func (r *CompanyRepository) ExistsByCNPJ(ctx context.Context, cnpj string) (bool, error) {
	var total int64
	err := GetDB(ctx, r.db).Unscoped().Model(&models.Company{}).Where("cnpj = ?", cnpj).Count(&total).Error
	return total > 0, err
}

// List returns visible companies matching filter
func (r *CompanyRepository) List(ctx context.Context, filter entities.CompanyFilter) ([]*entities.Company, int64, error) {
	db := GetDB(ctx, r.db)
	query := db.Model(&models.Company{}).Scopes(visibleCompanies)

	if filter.City != "" {
		query = query.Where("LOWER(companies.city) = ?", strings.ToLower(strings.TrimSpace(filter.City)))
	}
	if filter.State != "" {
		query = query.Where("UPPER(companies.state) = ?", strings.ToUpper(strings.TrimSpace(filter.State)))
	}
	if filter.Search != "" {
		term := likePattern(filter.Search)
		query = query.Where("(LOWER(companies.company_name) LIKE ? OR LOWER(companies.description) LIKE ?)", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset((max(filter.Page, 1) - 1) * filter.Limit)
	}

	var rows []models.Company
	if err := query.Order("companies.created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out, err := hydrateCompanies(db, rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Update writes every mutable company column
func (r *CompanyRepository) Update(ctx context.Context, c *entities.Company) error {
	updates := map[string]interface{}{
		"company_name":   c.CompanyName,
		"business_areas": models.StringList(c.BusinessAreas),
		"description":    c.Description,
		"city":           c.City,
		"state":          c.State,
		"photo_url":      c.PhotoURL,
		"phone":          c.Phone,
		"whatsapp":       c.Whatsapp,
		"address":        c.Address,
		"map_link":       c.MapLink,
		"updated_at":     time.Now(),
	}
	if !c.UserID.Valid {
		updates["contact_email"] = c.Email
	}

	result := GetDB(ctx, r.db).Model(&models.Company{}).Where("id = ?", c.ID).Updates(updates)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Count returns the number of visible companies
func (r *CompanyRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&models.Company{}).Scopes(visibleCompanies).Count(&total).Error
	return total, err
}

func hydrateCompanies(db *gorm.DB, rows []models.Company) ([]*entities.Company, error) {
	var userIDs []uuid.UUID
	for _, m := range rows {
		if m.UserID.Valid {
			userIDs = append(userIDs, m.UserID.UUID)
		}
	}

	emails := map[uuid.UUID]string{}
	if len(userIDs) > 0 {
		var found []models.User
		if err := db.Unscoped().Select("id", "email").Where("id IN ?", userIDs).Find(&found).Error; err != nil {
			return nil, err
		}
		for _, u := range found {
			emails[u.ID] = u.Email
		}
	}

	out := make([]*entities.Company, 0, len(rows))
	for i := range rows {
		c := toCompanyEntity(&rows[i])
		if rows[i].UserID.Valid {
			if email, ok := emails[rows[i].UserID.UUID]; ok {
				c.Email = null.StringFrom(email)
			}
		}
		out = append(out, c)
	}
	return out, nil
}

func toCompanyModel(c *entities.Company) *models.Company {
	m := &models.Company{
		ID:            c.ID,
		UserID:        c.UserID,
		CompanyName:   c.CompanyName,
		BusinessAreas: models.StringList(c.BusinessAreas),
		Description:   c.Description,
		City:          c.City,
		State:         c.State,
		PhotoURL:      c.PhotoURL,
		Phone:         c.Phone,
		Whatsapp:      c.Whatsapp,
		Address:       c.Address,
		MapLink:       c.MapLink,
		Active:        c.Active,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
	if c.CNPJ != "" {
		m.CNPJ = null.StringFrom(c.CNPJ)
	}
	if !c.UserID.Valid {
		m.ContactEmail = c.Email
	}
	return m
}

func toCompanyEntity(m *models.Company) *entities.Company {
	return &entities.Company{
		ID:            m.ID,
		UserID:        m.UserID,
		CompanyName:   m.CompanyName,
		CNPJ:          m.CNPJ.String,
		BusinessAreas: []string(m.BusinessAreas),
		Description:   m.Description,
		City:          m.City,
		State:         m.State,
		PhotoURL:      m.PhotoURL,
		Email:         m.ContactEmail,
		Phone:         m.Phone,
		Whatsapp:      m.Whatsapp,
		Address:       m.Address,
		MapLink:       m.MapLink,
		Active:        m.Active,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
