package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"obra-connect.backend/internal/domain/entities"
	domainerrors "obra-connect.backend/internal/domain/errors"
	"obra-connect.backend/internal/domain/policy"
	"obra-connect.backend/internal/domain/repositories"
	"obra-connect.backend/pkg/utils"
)

// CompanyUsecase serves company listings and profile edits
type CompanyUsecase struct {
	companyRepo repositories.CompanyRepository
	guard       *OwnershipGuard
}

// NewCompanyUsecase creates a new company usecase
func NewCompanyUsecase(companyRepo repositories.CompanyRepository, guard *OwnershipGuard) *CompanyUsecase {
	return &CompanyUsecase{companyRepo: companyRepo, guard: guard}
}

// List returns one page of visible companies
func (u *CompanyUsecase) List(ctx context.Context, filter entities.CompanyFilter) ([]*entities.Company, utils.PaginationMeta, error) {
	pagination := utils.GetPaginationParams(filter.Page, filter.Limit)
	filter.Page, filter.Limit = pagination.Page, pagination.Limit
	filter.Search = strings.TrimSpace(filter.Search)

	items, total, err := u.companyRepo.List(ctx, filter)
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return items, utils.CalculateMeta(total, pagination.Page, pagination.Limit), nil
}

// GetByID returns a visible company
func (u *CompanyUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.Company, error) {
	c, err := u.companyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("company not found")
		}
		return nil, err
	}
	return c, nil
}

// Update applies a partial company update after the ownership check
func (u *CompanyUsecase) Update(ctx context.Context, requester *entities.User, id uuid.UUID, input *entities.UpdateCompanyInput) (*entities.Company, error) {
	if err := u.guard.AuthorizeCompany(ctx, requester, id, policy.ActionCompanyUpdate); err != nil {
		return nil, err
	}

	c, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyString(&c.CompanyName, input.CompanyName)
	if input.BusinessAreas != nil {
		c.BusinessAreas = uniqueStrings(*input.BusinessAreas)
	}
	applyString(&c.Description, input.Description)
	applyString(&c.City, input.City)
	applyString(&c.State, input.State)
	c.State = strings.ToUpper(c.State)
	applyOptional(&c.PhotoURL, input.PhotoURL)
	applyOptional(&c.Phone, input.Phone)
	applyOptional(&c.Whatsapp, input.Whatsapp)
	applyOptional(&c.Address, input.Address)
	applyOptional(&c.MapLink, input.MapLink)

	if strings.TrimSpace(c.CompanyName) == "" {
		return nil, requiredFieldsError([]string{"companyName"})
	}

	if err := u.companyRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return u.GetByID(ctx, id)
}
