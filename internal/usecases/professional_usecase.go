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

// ProfessionalUsecase serves professional listings and profile edits
type ProfessionalUsecase struct {
	professionalRepo repositories.ProfessionalRepository
	taxonomyRepo     repositories.TaxonomyRepository
	uow              repositories.UnitOfWork
	guard            *OwnershipGuard
}

// NewProfessionalUsecase creates a new professional usecase
func NewProfessionalUsecase(
	professionalRepo repositories.ProfessionalRepository,
	taxonomyRepo repositories.TaxonomyRepository,
	uow repositories.UnitOfWork,
	guard *OwnershipGuard,
) *ProfessionalUsecase {
	return &ProfessionalUsecase{
		professionalRepo: professionalRepo,
		taxonomyRepo:     taxonomyRepo,
		uow:              uow,
		guard:            guard,
	}
}

// List returns one page of visible professionals
func (u *ProfessionalUsecase) List(ctx context.Context, filter entities.ProfessionalFilter) ([]*entities.Professional, utils.PaginationMeta, error) {
	pagination := utils.GetPaginationParams(filter.Page, filter.Limit)
	filter.Page, filter.Limit = pagination.Page, pagination.Limit
	filter.Search = strings.TrimSpace(filter.Search)

	items, total, err := u.professionalRepo.List(ctx, filter)
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return items, utils.CalculateMeta(total, pagination.Page, pagination.Limit), nil
}

// GetByID returns a visible professional
func (u *ProfessionalUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.Professional, error) {
	p, err := u.professionalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("professional not found")
		}
		return nil, err
	}
	return p, nil
}

// Update applies a partial profile update after the ownership check
func (u *ProfessionalUsecase) Update(ctx context.Context, requester *entities.User, id uuid.UUID, input *entities.UpdateProfessionalInput) (*entities.Professional, error) {
	if err := u.guard.AuthorizeProfessional(ctx, requester, id, policy.ActionProfessionalUpdate); err != nil {
		return nil, err
	}

	p, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	categoryChanged := input.CategoryID != nil && strings.TrimSpace(*input.CategoryID) != p.CategoryID
	applyString(&p.CategoryID, input.CategoryID)
	applyString(&p.City, input.City)
	applyString(&p.State, input.State)
	p.State = strings.ToUpper(p.State)
	applyString(&p.Description, input.Description)
	applyString(&p.Experience, input.Experience)
	applyString(&p.Education, input.Education)
	applyOptional(&p.PhotoURL, input.PhotoURL)
	applyOptional(&p.Phone, input.Phone)
	applyOptional(&p.Whatsapp, input.Whatsapp)
	applyOptional(&p.Address, input.Address)
	applyOptional(&p.MapLink, input.MapLink)

	if missing := missingFields(
		[2]string{"category_id", p.CategoryID},
		[2]string{"city", p.City},
		[2]string{"state", p.State},
	); len(missing) > 0 {
		return nil, requiredFieldsError(missing)
	}

	var subIDs []string
	replaceSubs := input.SubcategoryIDs != nil || categoryChanged
	if replaceSubs {
		// a new category drops links that are not resubmitted
		var wanted []string
		if input.SubcategoryIDs != nil {
			wanted = *input.SubcategoryIDs
		}
		subIDs, err = validateCategory(ctx, u.taxonomyRepo, p.CategoryID, wanted)
		if err != nil {
			return nil, err
		}
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.professionalRepo.Update(txCtx, p); err != nil {
			return err
		}
		if replaceSubs {
			return u.professionalRepo.ReplaceSubcategories(txCtx, p.ID, subIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return u.GetByID(ctx, id)
}
