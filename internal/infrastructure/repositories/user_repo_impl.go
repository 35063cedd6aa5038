package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"obra-connect.backend/internal/domain/entities"
	domainerrors "obra-connect.backend/internal/domain/errors"
	"obra-connect.backend/internal/infrastructure/models"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := &models.User{
		ID:           user.ID,
		Email:        strings.ToLower(user.Email),
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		Active:       user.Active,
		PhotoURL:     user.PhotoURL,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	return translateError(GetDB(ctx, r.db).Create(m).Error)
}

// GetByID gets a user by ID. Soft-deleted accounts are still returned,
// inactive, so callers can answer with the account disabled error.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Unscoped().Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return toUserEntity(&m), nil
}

// GetByEmail gets a user by email, case-insensitively, including soft-deleted accounts
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	err := GetDB(ctx, r.db).Unscoped().
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m).Error
	if err != nil {
		return nil, translateError(err)
	}
	return toUserEntity(&m), nil
}

// Update writes the profile fields; email, role and active are not touched
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	updates := map[string]interface{}{
		"name":       user.Name,
		"photo_url":  user.PhotoURL,
		"updated_at": time.Now(),
	}
	return r.updateColumns(ctx, user.ID, updates)
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"password_hash": passwordHash,
		"updated_at":    time.Now(),
	})
}

// SetActive flips the account active flag
func (r *UserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"active":     active,
		"updated_at": time.Now(),
	})
}

// SoftDelete deactivates and soft deletes a user in one statement
func (r *UserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	return r.updateColumns(ctx, id, map[string]interface{}{
		"active":     false,
		"deleted_at": now,
		"updated_at": now,
	})
}

func (r *UserRepository) updateColumns(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := GetDB(ctx, r.db).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists users with optional search and role filters
func (r *UserRepository) List(ctx context.Context, filter entities.AdminUserFilter) ([]*entities.User, int64, error) {
	query := GetDB(ctx, r.db).Model(&models.User{})

	if filter.Search != "" {
		term := likePattern(filter.Search)
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(email) LIKE ?)", term, term)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", string(filter.Role))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset((max(filter.Page, 1) - 1) * filter.Limit)
	}

	var userModels []models.User
	if err := query.Order("created_at DESC").Find(&userModels).Error; err != nil {
		return nil, 0, err
	}

	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, toUserEntity(&userModels[i]))
	}
	return users, total, nil
}

// CountByRole returns the number of users per role
func (r *UserRepository) CountByRole(ctx context.Context) (map[entities.UserRole]int64, error) {
	var rows []struct {
		Role  string
		Total int64
	}
	err := GetDB(ctx, r.db).Model(&models.User{}).
		Select("role, COUNT(*) AS total").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[entities.UserRole]int64, len(rows))
	for _, row := range rows {
		out[entities.UserRole(row.Role)] = row.Total
	}
	return out, nil
}

// CountActive returns the number of active users
func (r *UserRepository) CountActive(ctx context.Context) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&models.User{}).Where("active = ?", true).Count(&total).Error
	return total, err
}

func toUserEntity(m *models.User) *entities.User {
	u := &entities.User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		Role:         entities.UserRole(m.Role),
		Active:       m.Active,
		PhotoURL:     m.PhotoURL,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.DeletedAt.Valid {
		t := m.DeletedAt.Time
		u.DeletedAt = &t
	}
	return u
}
