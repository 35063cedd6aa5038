package repositories

import (
	"context"

	"github.com/google/uuid"
	"obra-connect.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter entities.AdminUserFilter) ([]*entities.User, int64, error)
	CountByRole(ctx context.Context) (map[entities.UserRole]int64, error)
	CountActive(ctx context.Context) (int64, error)
}
