package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"obra-connect.backend/internal/domain/entities"
	domainerrors "obra-connect.backend/internal/domain/errors"
	"obra-connect.backend/internal/domain/repositories"
	"obra-connect.backend/pkg/logger"
	"obra-connect.backend/pkg/utils"
)

// AdminUsecase backs the admin dashboard
type AdminUsecase struct {
	userRepo         repositories.UserRepository
	professionalRepo repositories.ProfessionalRepository
	companyRepo      repositories.CompanyRepository
	portfolioRepo    repositories.PortfolioRepository
	indicationRepo   repositories.IndicationRepository
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	userRepo repositories.UserRepository,
	professionalRepo repositories.ProfessionalRepository,
	companyRepo repositories.CompanyRepository,
	portfolioRepo repositories.PortfolioRepository,
	indicationRepo repositories.IndicationRepository,
) *AdminUsecase {
	return &AdminUsecase{
		userRepo:         userRepo,
		professionalRepo: professionalRepo,
		companyRepo:      companyRepo,
		portfolioRepo:    portfolioRepo,
		indicationRepo:   indicationRepo,
	}
}

// ListUsers returns one page of users, active or not
func (u *AdminUsecase) ListUsers(ctx context.Context, filter entities.AdminUserFilter) ([]*entities.User, utils.PaginationMeta, error) {
	if filter.Role != "" && !filter.Role.Valid() {
		return nil, utils.PaginationMeta{}, domainerrors.FieldError("role", "unknown role")
	}
	pagination := utils.GetPaginationParams(filter.Page, filter.Limit)
	filter.Page, filter.Limit = pagination.Page, pagination.Limit
	filter.Search = strings.TrimSpace(filter.Search)

	users, total, err := u.userRepo.List(ctx, filter)
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return users, utils.CalculateMeta(total, pagination.Page, pagination.Limit), nil
}

// DeleteUser soft-deactivates an account; admins cannot remove themselves
func (u *AdminUsecase) DeleteUser(ctx context.Context, requester *entities.User, id uuid.UUID) error {
	if requester == nil {
		return domainerrors.Unauthenticated()
	}
	if requester.ID == id {
		return domainerrors.Forbidden("you cannot delete your own account")
	}
	if err := u.userRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("user not found")
		}
		return err
	}
	logger.Info(ctx, "User deactivated by admin", zap.String("user_id", id.String()), zap.String("admin_id", requester.ID.String()))
	return nil
}

// ToggleStatus flips the active flag and returns the updated user
func (u *AdminUsecase) ToggleStatus(ctx context.Context, requester *entities.User, id uuid.UUID) (*entities.User, error) {
	if requester == nil {
		return nil, domainerrors.Unauthenticated()
	}
	if requester.ID == id {
		return nil, domainerrors.Forbidden("you cannot change your own status")
	}
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, err
	}
	if user.DeletedAt != nil {
		return nil, domainerrors.NotFound("user not found")
	}
	user.Active = !user.Active
	if err := u.userRepo.SetActive(ctx, id, user.Active); err != nil {
		return nil, err
	}
	logger.Info(ctx, "User status changed by admin", zap.String("user_id", id.String()), zap.Bool("active", user.Active))
	return user, nil
}

// Stats summarizes the marketplace
func (u *AdminUsecase) Stats(ctx context.Context) (*entities.Stats, error) {
	byRole, err := u.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	stats := &entities.Stats{UsersByRole: map[entities.UserRole]int64{}}
	for _, role := range []entities.UserRole{
		entities.UserRoleAdmin, entities.UserRoleProfessional, entities.UserRoleCompany, entities.UserRoleClient,
	} {
		stats.UsersByRole[role] = byRole[role]
		stats.TotalUsers += byRole[role]
	}

	if stats.ActiveUsers, err = u.userRepo.CountActive(ctx); err != nil {
		return nil, err
	}
	if stats.Professionals, err = u.professionalRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Companies, err = u.companyRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.PortfolioItems, err = u.portfolioRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Indications, err = u.indicationRepo.Count(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}
