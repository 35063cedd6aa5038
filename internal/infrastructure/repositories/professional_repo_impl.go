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

// ProfessionalRepository implements professional profile operations
type ProfessionalRepository struct {
	db *gorm.DB
}

// NewProfessionalRepository creates a new professional repository
func NewProfessionalRepository(db *gorm.DB) *ProfessionalRepository {
	return &ProfessionalRepository{db: db}
}

// visibleProfessionals keeps active profiles whose owning account, if any, is active
func visibleProfessionals(db *gorm.DB) *gorm.DB {
	activeUsers := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.User{}).
		Select("id").
		Where("active = ?", true)
	return db.Where("professionals.active = ?", true).
		Where("(professionals.user_id IS NULL OR professionals.user_id IN (?))", activeUsers)
}

// Create inserts the profile and its subcategory links
func (r *ProfessionalRepository) Create(ctx context.Context, p *entities.Professional) error {
	db := GetDB(ctx, r.db)
	m := toProfessionalModel(p)
	if err := db.Create(m).Error; err != nil {
		return translateError(err)
	}
	return r.insertSubcategoryLinks(db, p.ID, subcategoryIDs(p.Subcategories))
}

// GetByID returns a visible professional with user, category and subcategories loaded
func (r *ProfessionalRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Professional, error) {
	db := GetDB(ctx, r.db)
	var m models.Professional
	if err := db.Scopes(visibleProfessionals).Where("professionals.id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	out, err := hydrateProfessionals(db, []models.Professional{m})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// GetByUserID returns the profile owned by userID
func (r *ProfessionalRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Professional, error) {
	db := GetDB(ctx, r.db)
	var m models.Professional
	if err := db.Where("user_id = ?", userID).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	out, err := hydrateProfessionals(db, []models.Professional{m})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// GetOwnerUserID resolves the owning user of a professional record
func (r *ProfessionalRepository) GetOwnerUserID(ctx context.Context, id uuid.UUID) (uuid.NullUUID, error) {
	var m models.Professional
	err := GetDB(ctx, r.db).Select("id", "user_id").Where("id = ?", id).First(&m).Error
	if err != nil {
		return uuid.NullUUID{}, translateError(err)
	}
	return m.UserID, nil
}

// ExistsByCPF reports whether the CPF is already registered
func (r *ProfessionalRepository) ExistsByCPF(ctx context.Context, cpf string) (bool, error) {
	var total int64
	err := GetDB(ctx, r.db).Unscoped().Model(&models.Professional{}).Where("cpf = ?", cpf).Count(&total).Error
	return total > 0, err
}

// List returns visible professionals matching filter, newest first
func (r *ProfessionalRepository) List(ctx context.Context, filter entities.ProfessionalFilter) ([]*entities.Professional, int64, error) {
	db := GetDB(ctx, r.db)
	query := db.Model(&models.Professional{}).Scopes(visibleProfessionals)

	if filter.CategoryID != "" {
		query = query.Where("professionals.category_id = ?", filter.CategoryID)
	}
	if filter.SubcategoryID != "" {
		links := db.Session(&gorm.Session{NewDB: true}).
			Model(&models.ProfessionalSubcategory{}).
			Select("professional_id").
			Where("subcategory_id = ?", filter.SubcategoryID)
		query = query.Where("professionals.id IN (?)", links)
	}
	if filter.City != "" {
		query = query.Where("LOWER(professionals.city) = ?", strings.ToLower(strings.TrimSpace(filter.City)))
	}
	if filter.State != "" {
		query = query.Where("UPPER(professionals.state) = ?", strings.ToUpper(strings.TrimSpace(filter.State)))
	}
	if filter.Search != "" {
		// owned profiles match on the current account name
		term := likePattern(filter.Search)
		namedUsers := db.Session(&gorm.Session{NewDB: true}).
			Model(&models.User{}).
			Select("id").
			Where("LOWER(name) LIKE ?", term)
		query = query.Where(
			"(LOWER(professionals.description) LIKE ? OR (professionals.user_id IS NULL AND LOWER(professionals.name) LIKE ?) OR professionals.user_id IN (?))",
			term, term, namedUsers,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset((max(filter.Page, 1) - 1) * filter.Limit)
	}

	var rows []models.Professional
	if err := query.Order("professionals.created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out, err := hydrateProfessionals(db, rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Update writes every mutable profile column
func (r *ProfessionalRepository) Update(ctx context.Context, p *entities.Professional) error {
	updates := map[string]interface{}{
		"name":        p.Name,
		"photo_url":   p.PhotoURL,
		"category_id": p.CategoryID,
		"city":        p.City,
		"state":       p.State,
		"description": p.Description,
		"experience":  p.Experience,
		"education":   p.Education,
		"phone":       p.Phone,
		"whatsapp":    p.Whatsapp,
		"address":     p.Address,
		"map_link":    p.MapLink,
		"updated_at":  time.Now(),
	}
	if !p.UserID.Valid {
		updates["contact_email"] = p.Email
	}

	result := GetDB(ctx, r.db).Model(&models.Professional{}).Where("id = ?", p.ID).Updates(updates)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ReplaceSubcategories swaps the subcategory links of a professional
func (r *ProfessionalRepository) ReplaceSubcategories(ctx context.Context, id uuid.UUID, ids []string) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("professional_id = ?", id).Delete(&models.ProfessionalSubcategory{}).Error; err != nil {
		return err
	}
	return r.insertSubcategoryLinks(db, id, ids)
}

// Count returns the number of visible professionals
func (r *ProfessionalRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&models.Professional{}).Scopes(visibleProfessionals).Count(&total).Error
	return total, err
}

func (r *ProfessionalRepository) insertSubcategoryLinks(db *gorm.DB, id uuid.UUID, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	now := time.Now()
	links := make([]models.ProfessionalSubcategory, 0, len(ids))
	for _, sid := range ids {
		links = append(links, models.ProfessionalSubcategory{ProfessionalID: id, SubcategoryID: sid, CreatedAt: now})
	}
	return translateError(db.Create(&links).Error)
}

// hydrateProfessionals loads owners, categories and subcategories in batches
func hydrateProfessionals(db *gorm.DB, rows []models.Professional) ([]*entities.Professional, error) {
	out := make([]*entities.Professional, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	var userIDs []uuid.UUID
	var categoryIDs []string
	for _, m := range rows {
		ids = append(ids, m.ID)
		if m.UserID.Valid {
			userIDs = append(userIDs, m.UserID.UUID)
		}
		categoryIDs = append(categoryIDs, m.CategoryID)
	}

	users := map[uuid.UUID]models.User{}
	if len(userIDs) > 0 {
		var found []models.User
		if err := db.Unscoped().Where("id IN ?", userIDs).Find(&found).Error; err != nil {
			return nil, err
		}
		for _, u := range found {
			users[u.ID] = u
		}
	}

	var categories []models.Category
	if err := db.Where("id IN ?", categoryIDs).Find(&categories).Error; err != nil {
		return nil, err
	}
	categoryByID := make(map[string]models.Category, len(categories))
	for _, c := range categories {
		categoryByID[c.ID] = c
	}

	var links []models.ProfessionalSubcategory
	if err := db.Where("professional_id IN ?", ids).Find(&links).Error; err != nil {
		return nil, err
	}
	subsByProfessional := map[uuid.UUID][]entities.Subcategory{}
	if len(links) > 0 {
		subIDs := make([]string, 0, len(links))
		for _, l := range links {
			subIDs = append(subIDs, l.SubcategoryID)
		}
		var subs []models.Subcategory
		if err := db.Where("id IN ?", subIDs).Order("name").Find(&subs).Error; err != nil {
			return nil, err
		}
		subByID := make(map[string]models.Subcategory, len(subs))
		for _, s := range subs {
			subByID[s.ID] = s
		}
		for _, l := range links {
			if s, ok := subByID[l.SubcategoryID]; ok {
				subsByProfessional[l.ProfessionalID] = append(subsByProfessional[l.ProfessionalID], toSubcategoryEntity(&s))
			}
		}
	}

	for i := range rows {
		m := &rows[i]
		p := toProfessionalEntity(m)
		if m.UserID.Valid {
			if u, ok := users[m.UserID.UUID]; ok {
				p.Name = u.Name
				p.Email = null.StringFrom(u.Email)
				if !p.PhotoURL.Valid {
					p.PhotoURL = u.PhotoURL
				}
			}
		}
		if c, ok := categoryByID[m.CategoryID]; ok {
			cat := toCategoryEntity(&c)
			p.Category = &cat
		}
		p.Subcategories = subsByProfessional[m.ID]
		out = append(out, p)
	}
	return out, nil
}

func toProfessionalModel(p *entities.Professional) *models.Professional {
	m := &models.Professional{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		PhotoURL:    p.PhotoURL,
		CategoryID:  p.CategoryID,
		City:        p.City,
		State:       p.State,
		Description: p.Description,
		Experience:  p.Experience,
		Education:   p.Education,
		Phone:       p.Phone,
		Whatsapp:    p.Whatsapp,
		Address:     p.Address,
		MapLink:     p.MapLink,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.CPF != "" {
		m.CPF = null.StringFrom(p.CPF)
	}
	if !p.UserID.Valid {
		m.ContactEmail = p.Email
	}
	return m
}

func toProfessionalEntity(m *models.Professional) *entities.Professional {
	return &entities.Professional{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		PhotoURL:    m.PhotoURL,
		CategoryID:  m.CategoryID,
		City:        m.City,
		State:       m.State,
		Description: m.Description,
		Experience:  m.Experience,
		Education:   m.Education,
		CPF:         m.CPF.String,
		Email:       m.ContactEmail,
		Phone:       m.Phone,
		Whatsapp:    m.Whatsapp,
		Address:     m.Address,
		MapLink:     m.MapLink,
		Active:      m.Active,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func subcategoryIDs(subs []entities.Subcategory) []string {
	ids := make([]string, 0, len(subs))
	for _, s := range subs {
		ids = append(ids, s.ID)
	}
	return ids
}
