package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"obra-connect.backend/internal/domain/entities"
	domainerrors "obra-connect.backend/internal/domain/errors"
	"obra-connect.backend/internal/domain/policy"
	"obra-connect.backend/internal/domain/repositories"
	"obra-connect.backend/pkg/utils"
)

// IndicationUsecase records peer referrals between professionals
type IndicationUsecase struct {
	indicationRepo   repositories.IndicationRepository
	professionalRepo repositories.ProfessionalRepository
}

// NewIndicationUsecase creates a new indication usecase
func NewIndicationUsecase(indicationRepo repositories.IndicationRepository, professionalRepo repositories.ProfessionalRepository) *IndicationUsecase {
	return &IndicationUsecase{indicationRepo: indicationRepo, professionalRepo: professionalRepo}
}

// Create records that the requester's professional profile indicates toID
func (u *IndicationUsecase) Create(ctx context.Context, requester *entities.User, toID uuid.UUID, input *entities.CreateIndicationInput) (*entities.Indication, error) {
	if requester == nil {
		return nil, domainerrors.Unauthenticated()
	}
	if !policy.Allows(requester.Role, policy.ActionIndicationCreate) {
		return nil, domainerrors.Forbidden("only professionals can indicate colleagues")
	}

	from, err := u.professionalRepo.GetByUserID(ctx, requester.ID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Forbidden("a professional profile is required to indicate colleagues")
		}
		return nil, err
	}

	if _, err := u.professionalRepo.GetByID(ctx, toID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("professional not found")
		}
		return nil, err
	}
	if from.ID == toID {
		return nil, domainerrors.FieldError("professionalId", "cannot indicate yourself")
	}

	exists, err := u.indicationRepo.Exists(ctx, from.ID, toID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainerrors.DuplicateIndication()
	}

	ind := &entities.Indication{
		ID:                 utils.GenerateUUIDv7(),
		FromProfessionalID: from.ID,
		ToProfessionalID:   toID,
		Message:            strings.TrimSpace(input.Message),
		From:               from,
		CreatedAt:          time.Now(),
	}
	if err := u.indicationRepo.Create(ctx, ind); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.DuplicateIndication()
		}
		return nil, err
	}
	return ind, nil
}

// ListReceived returns the referrals a visible professional received
func (u *IndicationUsecase) ListReceived(ctx context.Context, toID uuid.UUID) ([]*entities.Indication, error) {
	if _, err := u.professionalRepo.GetByID(ctx, toID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("professional not found")
		}
		return nil, err
	}
	return u.indicationRepo.ListByTarget(ctx, toID)
}
