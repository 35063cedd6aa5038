package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"obra-connect.backend/internal/domain/entities"
	domainerrors "obra-connect.backend/internal/domain/errors"
	"obra-connect.backend/internal/domain/policy"
	"obra-connect.backend/internal/domain/repositories"
	"obra-connect.backend/pkg/logger"
)

// OwnershipGuard authorizes mutations on professional and company records.
// Path ids name the record; authorization is keyed on the owning user, so
// every check resolves record -> user_id before consulting the policy.
type OwnershipGuard struct {
	professionalRepo repositories.ProfessionalRepository
	companyRepo      repositories.CompanyRepository
}

// NewOwnershipGuard creates a new ownership guard
func NewOwnershipGuard(professionalRepo repositories.ProfessionalRepository, companyRepo repositories.CompanyRepository) *OwnershipGuard {
	return &OwnershipGuard{professionalRepo: professionalRepo, companyRepo: companyRepo}
}

// AuthorizeProfessional checks requester may perform action on the professional
func (g *OwnershipGuard) AuthorizeProfessional(ctx context.Context, requester *entities.User, professionalID uuid.UUID, action policy.Action) error {
	if requester == nil {
		return domainerrors.Unauthenticated()
	}
	owner, err := g.professionalRepo.GetOwnerUserID(ctx, professionalID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("professional not found")
		}
		return err
	}
	return authorize(ctx, requester, action, owner, "professional", professionalID)
}

// AuthorizeCompany checks requester may perform action on the company
func (g *OwnershipGuard) AuthorizeCompany(ctx context.Context, requester *entities.User, companyID uuid.UUID, action policy.Action) error {
	if requester == nil {
		return domainerrors.Unauthenticated()
	}
	owner, err := g.companyRepo.GetOwnerUserID(ctx, companyID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("company not found")
		}
		return err
	}
	return authorize(ctx, requester, action, owner, "company", companyID)
}

func authorize(ctx context.Context, requester *entities.User, action policy.Action, owner uuid.NullUUID, kind string, id uuid.UUID) error {
	if policy.CanActOn(requester, action, owner) {
		return nil
	}
	logger.Warn(ctx, "Forbidden mutation attempt",
		zap.String("user_id", requester.ID.String()),
		zap.String("role", string(requester.Role)),
		zap.String("action", string(action)),
		zap.String("resource", kind),
		zap.String("resource_id", id.String()),
	)
	return domainerrors.Forbidden("you are not allowed to modify this " + kind)
}
